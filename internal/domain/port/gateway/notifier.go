package gateway

import "context"

// Notification events
const (
	EventTransactionCreated   = "transaction_created"
	EventTransactionValidated = "transaction_validated"
	EventTransactionRejected  = "transaction_rejected"
	EventTransactionExecuted  = "transaction_executed"
	EventTransactionCompleted = "transaction_completed"
	EventDeleteRequested      = "transaction_delete_requested"
	EventTransactionDeleted   = "transaction_deleted"
	EventExecutorUnassigned   = "executor_unassigned"
)

// Notification is a message about a committed transaction change
type Notification struct {
	Event         string
	TransactionID string
	RecipientID   string // optional, empty means broadcast to the audience of Event
	Fields        map[string]any
}

// Notifier delivers notifications. Delivery is best-effort.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}
