package ports

import (
	"context"

	"github.com/brightsmile/booking-api/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login checks the credentials against an account with the given role.
	Login(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error)
	CurrentUser(ctx context.Context, id domain.Identity) (*domain.User, error)
}
