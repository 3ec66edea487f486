package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
)

// CreateTransactionRequest represents an incoming transaction creation
type CreateTransactionRequest struct {
	Type        string         `validate:"required,oneof=transfer reception exchange"`
	Amount      int64          `validate:"gt=0"`
	Currency    string         `validate:"required,len=3,alpha"`
	Description string         `validate:"max=500"`
	Agency      string         `validate:"max=100"`
	Details     map[string]any `validate:"-"`
}

// ExecuteRequest carries the executor's proof of fulfilment
type ExecuteRequest struct {
	ReceiptURL string `validate:"required,max=2048"`
	Comment    string `validate:"max=1000"`
}

// DeleteResult confirms an approved deletion
type DeleteResult struct {
	TransactionID string
	ApprovedBy    string
	ApprovedAt    time.Time
}

// TransactionUseCase defines the transaction workflow operations.
// Every operation checks the actor's permission before anything else.
type TransactionUseCase interface {
	// Create records a new pending transaction
	Create(ctx context.Context, actor *entity.User, req CreateTransactionRequest) (*entity.Transaction, error)

	// SubmitRealAmount evaluates the commission and validates or rejects a pending transaction
	SubmitRealAmount(ctx context.Context, actor *entity.User, id string, realAmountEUR int64) (*entity.Transaction, error)

	// Execute records the receipt uploaded by the bound executor
	Execute(ctx context.Context, actor *entity.User, id string, req ExecuteRequest) (*entity.Transaction, error)

	// Close completes an executed transaction
	Close(ctx context.Context, actor *entity.User, id string) (*entity.Transaction, error)

	// RequestDelete asks for the removal of a completed transaction
	RequestDelete(ctx context.Context, actor *entity.User, id string) (*entity.Transaction, error)

	// ApproveDelete confirms a deletion request and removes the transaction
	ApproveDelete(ctx context.Context, actor *entity.User, id string) (*DeleteResult, error)

	// Get returns a single transaction
	Get(ctx context.Context, actor *entity.User, id string) (*entity.Transaction, error)

	// List returns transactions matching filter
	List(ctx context.Context, actor *entity.User, filter persistence.TransactionFilter) ([]*entity.Transaction, error)

	// History returns the audit trail of a transaction, including deleted ones
	History(ctx context.Context, actor *entity.User, id string) ([]*entity.TransactionEvent, error)
}
