package ports

import (
	"context"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
)

// RegisterInput carries the registration payload.
type RegisterInput struct {
	ID       int64
	Username string
	Email    string
	Password string
	Roles    []string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// TokenIssuer signs access tokens for an authenticated user.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier decodes and validates a bearer token.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}
