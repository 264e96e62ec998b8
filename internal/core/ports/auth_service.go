package ports

import (
	"context"

	"github.com/divyandj/pdfchat-api/internal/core/domain"
)

// AuthService defines use-case operations for account management.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token. The
	// error for an unknown email and for a wrong password is the same
	// domain.ErrInvalidCredentials, with matching timing.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
