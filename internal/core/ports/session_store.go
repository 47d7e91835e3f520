package ports

import "context"

// Session is the server-side identity record bound to an opaque token.
type Session struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// SessionStore holds sessions server-side so that logout revokes access
// immediately. Get returns domain.ErrSessionNotFound for unknown or expired
// tokens.
type SessionStore interface {
	// Create stores the session under a freshly generated opaque token and
	// returns the token.
	Create(ctx context.Context, s Session) (string, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
