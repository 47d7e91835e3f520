package ports

import (
	"context"

	"github.com/iramedia/work-reports/internal/core/domain"
)

// CreateUserInput carries all data needed to create a user account.
type CreateUserInput struct {
	Name           string
	Email          string
	Password       string
	Role           string
	EmploymentType string
}

// UpdateUserInput carries an admin edit. An empty Password means the stored
// hash is left unchanged.
type UpdateUserInput struct {
	Name           string
	Email          string
	Password       string
	EmploymentType string
}

// IdentityService manages user accounts. Role enforcement is the access
// gate's responsibility; the service trusts its callers.
type IdentityService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	// Delete removes the user, all of their submissions, and their stored
	// attachment blobs.
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// UpdateProfile lets a user change their own name and, optionally, password.
	UpdateProfile(ctx context.Context, id, name, password string) (*domain.User, error)
}
