package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/brightsmile/booking-api/internal/core/domain"
	"github.com/brightsmile/booking-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error)
	currentFn  func(ctx context.Context, id domain.Identity) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password, role)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, id domain.Identity) (*domain.User, error) {
	return s.currentFn(ctx, id)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Name != "Alice" || in.Role != domain.RolePatient || in.Email != "a@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: 1, Name: in.Name, Email: in.Email, Role: in.Role}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"a@example.com","password":"secret1","role":"patient"}`, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["name"] != "Alice" || user["role"] != "patient" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("password hash must not be serialised")
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, _ := newContext(http.MethodPost, "/auth/register",
		`{"name":"Bob","email":"b@example.com","password":"secret1","role":"admin"}`, nil)

	if err := NewAuthHandler(stub).Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	cases := map[string]string{
		"not json":      "not-json",
		"bad role":      `{"name":"Bob","email":"b@example.com","password":"secret1","role":"client"}`,
		"short pass":    `{"name":"Bob","email":"b@example.com","password":"123","role":"patient"}`,
		"invalid email": `{"name":"Bob","email":"nope","password":"secret1","role":"patient"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/auth/register", body, nil)
			expectHTTPError(t, h.Register(c), http.StatusBadRequest)
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string, role domain.Role) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret" || role != domain.RoleDentist {
				t.Fatalf("unexpected args: %s %s %s", email, password, role)
			}
			return "token123", &domain.User{ID: 1, Name: "Alice", Role: domain.RoleDentist}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret","role":"admin"}`, nil)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string, domain.Role) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := newContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"bad"}`, nil)

	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string, domain.Role) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	c, _ := newContext(http.MethodPost, "/auth/login", "{", nil)

	expectHTTPError(t, NewAuthHandler(stub).Login(c), http.StatusBadRequest)
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		currentFn: func(_ context.Context, id domain.Identity) (*domain.User, error) {
			return &domain.User{ID: id.UserID, Name: id.Name, Role: id.Role}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(http.MethodGet, "/v1/me", "", &patientID)
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	c, _ = newContext(http.MethodGet, "/v1/me", "", nil)
	expectHTTPError(t, h.Me(c), http.StatusUnauthorized)
}
