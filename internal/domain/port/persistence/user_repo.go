package persistence

import (
	"context"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
)

// UserRepository defines the operations of the user directory
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByEmail retrieves a user by its login email
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create stores a new user
	//
	// Possible errors:
	// - ErrDuplicateUser: If a user with the same email already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// ListByRole returns the users holding role ordered by name then id.
	// With activeOnly set, inactive users are skipped.
	ListByRole(ctx context.Context, role entity.Role, activeOnly bool) ([]*entity.User, error)

	// List returns every user ordered by name then id
	List(ctx context.Context) ([]*entity.User, error)
}
