package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps attachment blobs as plain files under a single uploads
// directory. Stored names are opaque collision-free keys chosen by the
// caller; the original filename never reaches the filesystem.
type LocalStore struct {
	dir string
}

// NewLocalStore ensures dir exists and returns a store rooted there.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Path returns the stored path for name without touching disk.
func (l *LocalStore) Path(name string) string {
	return filepath.Join(l.dir, filepath.Base(name))
}

// Save writes the blob under name. The file is created exclusively: a name
// collision fails instead of silently overwriting another upload.
func (l *LocalStore) Save(ctx context.Context, name string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := l.Path(name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create attachment: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write attachment: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close attachment: %w", err)
	}
	return nil
}

// Remove unlinks a stored blob. Paths outside the uploads directory are
// refused; a missing file is not an error.
func (l *LocalStore) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	clean := filepath.Clean(path)
	if !strings.HasPrefix(clean, filepath.Clean(l.dir)+string(filepath.Separator)) {
		return fmt.Errorf("path %q is outside the uploads dir", path)
	}

	if err := os.Remove(clean); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove attachment: %w", err)
	}
	return nil
}
