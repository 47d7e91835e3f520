package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iramedia/work-reports/internal/core/domain"
)

func assertErrorCode(t *testing.T, err error, wantCode int) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)

	if rec.Code != wantCode {
		t.Fatalf("error %v: expected %d, got %d", err, wantCode, rec.Code)
	}
	var resp map[string]string
	if jsonErr := json.Unmarshal(rec.Body.Bytes(), &resp); jsonErr != nil {
		t.Fatalf("invalid error envelope: %v", jsonErr)
	}
	if resp["error"] == "" {
		t.Fatalf("expected error message in envelope")
	}
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	assertErrorCode(t, domain.ErrInvalidCredentials, http.StatusUnauthorized)
	assertErrorCode(t, domain.ErrForbidden, http.StatusForbidden)
	assertErrorCode(t, domain.ErrUserNotFound, http.StatusNotFound)
	assertErrorCode(t, domain.ErrSubmissionNotFound, http.StatusNotFound)
	assertErrorCode(t, domain.ErrEmailTaken, http.StatusConflict)
	assertErrorCode(t, domain.ErrDuplicateSubmission, http.StatusConflict)
	assertErrorCode(t, domain.ErrEmptyWorkText, http.StatusUnprocessableEntity)
	assertErrorCode(t, domain.ErrFileRejected, http.StatusUnprocessableEntity)
	assertErrorCode(t, domain.ErrInvalidInput, http.StatusUnprocessableEntity)
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrDuplicateSubmission)
	assertErrorCode(t, wrapped, http.StatusConflict)
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	assertErrorCode(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot)
}

func TestHTTPErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(errors.New("mongo: socket closed"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error envelope: %v", err)
	}
	if resp["error"] != "internal server error" {
		t.Fatalf("internal detail leaked: %q", resp["error"])
	}
}
