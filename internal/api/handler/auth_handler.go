package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iramedia/work-reports/internal/api/metrics"
	"github.com/iramedia/work-reports/internal/api/middleware"
	"github.com/iramedia/work-reports/internal/core/domain"
	"github.com/iramedia/work-reports/internal/core/ports"
)

// AuthHandler handles login, logout, and the caller's own profile.
type AuthHandler struct {
	auth         ports.AuthService
	identity     ports.IdentityService
	cookieSecure bool
	sessionTTL   time.Duration
}

func NewAuthHandler(auth ports.AuthService, identity ports.IdentityService, cookieSecure bool, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		identity:     identity,
		cookieSecure: cookieSecure,
		sessionTTL:   sessionTTL,
	}
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginResponse struct {
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect"`
}

type profileRequest struct {
	Name            string `json:"name"             form:"name"             validate:"required"`
	Password        string `json:"password"         form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// Login authenticates a user and establishes a session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(h.sessionCookie(token, h.sessionTTL))

	redirect := "/dashboard"
	if user.Role == domain.RoleAdmin {
		redirect = "/admin"
	}
	return c.JSON(http.StatusOK, loginResponse{User: user, Redirect: redirect})
}

// Logout revokes the server-side session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("session_token").(string)
	if err := h.auth.Logout(c.Request().Context(), token); err != nil {
		return err
	}

	expired := h.sessionCookie("", -time.Hour)
	c.SetCookie(expired)

	if strings.Contains(c.Request().Header.Get("Accept"), "text/html") {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.NoContent(http.StatusNoContent)
}

// Profile returns the caller's own account.
//
// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Router       /profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	user, err := h.identity.Get(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile changes the caller's name and, optionally, password.
//
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      422   {object}  errorResponse
// @Router       /profile [post]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if req.Password != "" && req.Password != req.ConfirmPassword {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "passwords do not match")
	}

	user, err := h.identity.UpdateProfile(c.Request().Context(), caller.UserID, req.Name, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
