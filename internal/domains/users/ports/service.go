package ports

import (
	"context"

	"github.com/Apurer/plant-nursery-api/internal/domains/users/domain"
)

// RegisterInput carries a sign-up request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult is returned after successful authentication.
type LoginResult struct {
	Token string
	User  *domain.User
}

// Service exposes user use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, userID string) error
	Authenticate(ctx context.Context, token string) (*Claims, error)
	EnsureAdmin(ctx context.Context, email, password string) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
