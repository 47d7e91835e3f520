package ports

import (
	"context"
	"io"
)

// FileStore persists attachment blobs. Implementations must not interpret
// the stored name beyond using it as a collision-free key.
type FileStore interface {
	// Path returns the stored path for name without touching the store. The
	// submission row is inserted with this path before the blob is written,
	// so a duplicate-date rejection never leaves an orphaned file.
	Path(name string) string
	Save(ctx context.Context, name string, r io.Reader) error
	Remove(ctx context.Context, path string) error
}
