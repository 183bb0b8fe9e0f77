package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/brightsmile/booking-api/internal/core/domain"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub":   "42",
		"role":  "admin",
		"name":  "Dr. Ana",
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		id, ok := IdentityFrom(c)
		if !ok {
			t.Fatalf("identity not set")
		}
		if id.UserID != 42 || id.Role != domain.RoleDentist || id.Email != "ana@example.com" {
			t.Fatalf("unexpected identity: %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec, called := runAuth(t, "")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without calling next, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	rec, called := runAuth(t, "Token abc")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	rec, called := runAuth(t, "Bearer not-a-token")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub":  "42",
		"role": "patient",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	rec, called := runAuth(t, "Bearer "+signed)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	signed := signToken(t, "other", jwt.MapClaims{"sub": "42", "role": "patient"})
	rec, called := runAuth(t, "Bearer "+signed)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingIdentityClaims(t *testing.T) {
	cases := map[string]jwt.MapClaims{
		"no sub":       {"role": "patient"},
		"bad sub":      {"sub": "abc", "role": "patient"},
		"unknown role": {"sub": "42", "role": "client"},
	}
	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			rec, called := runAuth(t, "Bearer "+signToken(t, "secret", claims))
			if called || rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
