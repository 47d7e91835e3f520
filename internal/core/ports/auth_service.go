package ports

import (
	"context"

	"github.com/iramedia/work-reports/internal/core/domain"
)

// AuthService authenticates users and manages their server-side sessions.
type AuthService interface {
	// Login verifies the credentials and establishes a new session. Unknown
	// email and wrong password both fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
}
