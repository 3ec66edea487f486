package usecase

import (
	"context"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
)

// CreateUserRequest represents a new back-office user
type CreateUserRequest struct {
	Name   string `validate:"required,max=100"`
	Email  string `validate:"required,email"`
	Role   string `validate:"required"`
	Agency string `validate:"max=100"`
}

// UserUseCase defines the user directory operations
type UserUseCase interface {
	// CreateUser adds a user to the directory
	CreateUser(ctx context.Context, actor *entity.User, req CreateUserRequest) (*entity.User, error)

	// GetUser returns a user by id
	GetUser(ctx context.Context, actor *entity.User, id string) (*entity.User, error)

	// ListUsers returns the directory, optionally restricted to one role
	ListUsers(ctx context.Context, actor *entity.User, role string) ([]*entity.User, error)

	// ResolveActor loads the identity behind an authenticated request, bypassing any cache.
	// Unknown and inactive users resolve to ErrUnauthorized.
	ResolveActor(ctx context.Context, id string) (*entity.User, error)

	// EnsureBootstrapAdmin creates the initial super_admin when no user holds its email
	EnsureBootstrapAdmin(ctx context.Context, name, email string) (*entity.User, error)
}
