package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event actions recorded in the audit trail
const (
	ActionCreated         = "created"
	ActionValidated       = "validated"
	ActionRejected        = "rejected"
	ActionExecuted        = "executed"
	ActionCompleted       = "completed"
	ActionDeleteRequested = "delete_requested"
	ActionDeleted         = "deleted"
)

// TransactionEvent is one entry of a transaction's audit trail.
// Events outlive the transaction they describe.
type TransactionEvent struct {
	ID            string
	TransactionID string
	Action        string
	FromStatus    TransactionStatus // empty for creation
	ToStatus      TransactionStatus // empty for deletion
	ActorID       string
	ActorName     string
	Note          string
	CreatedAt     time.Time
}

// NewTransactionEvent records actor moving txn from one status to another
func NewTransactionEvent(txn *Transaction, action string, from, to TransactionStatus, actor *User, note string, at time.Time) *TransactionEvent {
	return &TransactionEvent{
		ID:            uuid.NewString(),
		TransactionID: txn.ID,
		Action:        action,
		FromStatus:    from,
		ToStatus:      to,
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Note:          note,
		CreatedAt:     at,
	}
}
