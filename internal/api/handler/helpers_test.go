package handler

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/brightsmile/booking-api/internal/api/middleware"
	"github.com/brightsmile/booking-api/internal/core/domain"
)

var (
	dentistID = domain.Identity{UserID: 100, Role: domain.RoleDentist, Name: "Dr. Ana"}
	patientID = domain.Identity{UserID: 200, Role: domain.RolePatient, Name: "Pat"}
)

// newContext builds an echo context with the validator installed and, when
// id is non-nil, the caller identity already set by Auth.
func newContext(method, target, body string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(middleware.IdentityKey, *id)
	}
	return c, rec
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
}
