package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iramedia/work-reports/internal/core/domain"
	"github.com/iramedia/work-reports/internal/core/ports"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "wr_session"

// Auth resolves the session cookie against the server-side session store and
// injects the caller's identity into the request context. It short-circuits
// before the handler runs: browser clients are routed to the login surface,
// API clients get 401.
func Auth(sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return unauthenticated(c)
			}

			sess, err := sessions.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return unauthenticated(c)
				}
				return err
			}

			c.Set("user_id", sess.UserID)
			c.Set("user_name", sess.Name)
			c.Set("role", sess.Role)
			c.Set("session_token", cookie.Value)

			return next(c)
		}
	}
}

func unauthenticated(c echo.Context) error {
	if wantsHTML(c.Request()) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
