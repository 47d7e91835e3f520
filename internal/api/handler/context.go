package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iramedia/work-reports/internal/core/ports"
)

// ctxCaller extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: both fields must be
// non-empty, their presence proves the middleware ran.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return ports.Caller{UserID: userID, Role: role}, nil
}
