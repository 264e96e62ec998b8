package ports

import (
	"context"

	"github.com/divyandj/pdfchat-api/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	// Create inserts a new user with an empty chat collection. Returns
	// domain.ErrEmailExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail looks up a user by exact, case-sensitive email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
