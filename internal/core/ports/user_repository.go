package ports

import (
	"context"

	"github.com/iramedia/work-reports/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Email uniqueness is enforced by the storage layer; Create and Update
// surface a violation as domain.ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete removes the user and all of their submissions atomically and
	// returns the stored attachment paths of the removed submissions so the
	// caller can unlink the blobs.
	Delete(ctx context.Context, id string) ([]string, error)
	// List returns all users ordered by name.
	List(ctx context.Context) ([]*domain.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}
