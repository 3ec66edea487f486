package persistence

import (
	"context"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
)

// EventRepository stores the transaction audit trail
type EventRepository interface {
	// Append adds an event to the trail
	Append(ctx context.Context, event *entity.TransactionEvent) error

	// ListByTransaction returns the events of a transaction, oldest first
	ListByTransaction(ctx context.Context, transactionID string) ([]*entity.TransactionEvent, error)
}
