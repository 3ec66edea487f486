package persistence

import (
	"context"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
)

// TransactionFilter narrows a transaction listing. Zero values mean "any".
type TransactionFilter struct {
	Status     entity.TransactionStatus
	Type       entity.TransactionType
	Agency     string
	ExecutorID string
	Limit      int
	Offset     int
}

// TransactionRepository defines the storage operations of the transaction workflow
type TransactionRepository interface {
	// Create saves a new transaction
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction by its identifier
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)

	// List returns transactions matching filter, newest first
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// UpdateIfStatus persists transaction only if the stored status still equals expected.
	// This is the compare-and-set every transition relies on.
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the row no longer exists
	// - ErrStateConflict: If the stored status differs from expected
	// - ErrDatabaseConnection: If database connection fails
	UpdateIfStatus(ctx context.Context, transaction *entity.Transaction, expected entity.TransactionStatus) error

	// DeleteIfStatus removes the row only if its stored status equals expected
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the row no longer exists
	// - ErrStateConflict: If the stored status differs from expected
	// - ErrDatabaseConnection: If database connection fails
	DeleteIfStatus(ctx context.Context, id string, expected entity.TransactionStatus) error
}
