package ports

import (
	"context"

	"github.com/brightsmile/booking-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Create inserts user and returns ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
