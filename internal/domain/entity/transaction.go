package entity

import (
	"fmt"
	"maps"
	"regexp"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	tport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/google/uuid"
)

// TransactionType represents the kind of money movement
type TransactionType string

// Transaction types
const (
	TypeTransfer  TransactionType = "transfer"
	TypeReception TransactionType = "reception"
	TypeExchange  TransactionType = "exchange"
)

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// TransactionStatus constants. A deleted transaction has no status: the row is removed.
const (
	StatusPending       TransactionStatus = "pending"
	StatusValidated     TransactionStatus = "validated"
	StatusRejected      TransactionStatus = "rejected"
	StatusExecuted      TransactionStatus = "executed"
	StatusCompleted     TransactionStatus = "completed"
	StatusPendingDelete TransactionStatus = "pending_delete"
)

// transitions lists, for each status, the statuses it may move to
var transitions = map[TransactionStatus][]TransactionStatus{
	StatusPending:   {StatusValidated, StatusRejected},
	StatusValidated: {StatusExecuted},
	StatusExecuted:  {StatusCompleted},
	StatusCompleted: {StatusPendingDelete},
}

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// CanTransition reports whether a transaction may move from one status to another
func CanTransition(from, to TransactionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transaction is a money-movement record going through the validation workflow
type Transaction struct {
	ID                string
	Type              TransactionType
	Status            TransactionStatus
	Description       string
	Amount            int64  // Declared amount in minor units of Currency
	Currency          string // Settlement currency, ISO 4217 code
	CreatedBy         string // Display name of the creator
	CreatedByID       string
	Agency            string
	Details           map[string]any // Opaque payload (sender, beneficiary...)
	RejectionReason   *string
	RealAmountEUR     *int64
	CommissionAmount  *int64
	ExecutorID        *string
	ExecutedAt        *time.Time
	ReceiptURL        *string
	ExecutorComment   *string
	DeleteValidatedBy *string
	DeleteValidatedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewTransactionParams holds the caller supplied fields of a new transaction
type NewTransactionParams struct {
	Type        string
	Amount      int64
	Currency    string
	Description string
	Agency      string
	Details     map[string]any
}

// NewTransaction creates a pending transaction owned by creator
func NewTransaction(params NewTransactionParams, creator *User, timeProvider tport.TimeProvider) (*Transaction, error) {
	if !IsValidTransactionType(params.Type) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidTransactionType, params.Type)
	}
	if params.Amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	currency := strings.ToUpper(strings.TrimSpace(params.Currency))
	if !currencyPattern.MatchString(currency) {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidCurrency, params.Currency)
	}

	agency := strings.TrimSpace(params.Agency)
	if agency == "" {
		agency = creator.Agency
	}

	now := timeProvider.Now()
	return &Transaction{
		ID:          GenerateTransactionID(now),
		Type:        TransactionType(params.Type),
		Status:      StatusPending,
		Description: strings.TrimSpace(params.Description),
		Amount:      params.Amount,
		Currency:    currency,
		CreatedBy:   creator.Name,
		CreatedByID: creator.ID,
		Agency:      agency,
		Details:     maps.Clone(params.Details),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GenerateTransactionID builds an identifier of the form TRX-<timestamp>-<suffix>
func GenerateTransactionID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TRX-%s-%s", now.UTC().Format("20060102150405"), suffix)
}

// ApplyEvaluation records the auditor's real amount and the resulting decision.
// It can only run once, on a pending transaction.
func (t *Transaction) ApplyEvaluation(realAmountEUR, commission int64, validated bool, reason string, timeProvider tport.TimeProvider) error {
	if t.Status != StatusPending || t.RealAmountEUR != nil {
		return t.conflict("submit real amount", StatusPending)
	}
	if realAmountEUR <= 0 {
		return errs.ErrInvalidRealAmount
	}

	t.RealAmountEUR = &realAmountEUR
	t.CommissionAmount = &commission
	if validated {
		t.Status = StatusValidated
	} else {
		t.Status = StatusRejected
		t.RejectionReason = &reason
	}
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// AssignExecutor binds the executor that will fulfil a validated transaction
func (t *Transaction) AssignExecutor(executorID string) error {
	if t.Status != StatusValidated {
		return t.conflict("assign executor", StatusValidated)
	}
	if t.ExecutorID != nil {
		return errs.NewStateConflictError(t.ID, "assign executor", "already assigned", "unassigned")
	}
	t.ExecutorID = &executorID
	return nil
}

// MarkExecuted records the receipt uploaded by the bound executor
func (t *Transaction) MarkExecuted(actor *User, receiptURL, comment string, timeProvider tport.TimeProvider) error {
	if t.Status != StatusValidated {
		return t.conflict("execute", StatusValidated)
	}
	if t.ExecutorID == nil {
		return errs.NewAuthorizationError(actor.ID, string(actor.Role), "", "no executor is bound to this transaction")
	}
	if *t.ExecutorID != actor.ID {
		return errs.NewAuthorizationError(actor.ID, string(actor.Role), "", "only the bound executor can execute this transaction")
	}
	receiptURL = strings.TrimSpace(receiptURL)
	if receiptURL == "" {
		return fmt.Errorf("%w: receipt is required", errs.ErrValidation)
	}

	now := timeProvider.Now()
	t.Status = StatusExecuted
	t.ExecutedAt = &now
	t.ReceiptURL = &receiptURL
	t.ExecutorComment = &comment
	t.UpdatedAt = now
	return nil
}

// MarkCompleted closes an executed transaction. Only the creator may close it.
func (t *Transaction) MarkCompleted(actor *User, timeProvider tport.TimeProvider) error {
	if t.Status != StatusExecuted {
		return t.conflict("close", StatusExecuted)
	}
	if err := t.requireCreator(actor); err != nil {
		return err
	}
	t.Status = StatusCompleted
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// MarkPendingDelete records the creator's deletion request on a completed transaction
func (t *Transaction) MarkPendingDelete(actor *User, timeProvider tport.TimeProvider) error {
	if t.Status != StatusCompleted {
		return t.conflict("request delete", StatusCompleted)
	}
	if err := t.requireCreator(actor); err != nil {
		return err
	}
	t.Status = StatusPendingDelete
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// MarkDeleteValidated records the second-party approval of a deletion request
func (t *Transaction) MarkDeleteValidated(approver *User, timeProvider tport.TimeProvider) error {
	if t.Status != StatusPendingDelete {
		return t.conflict("approve delete", StatusPendingDelete)
	}
	if t.DeleteValidatedBy != nil {
		return errs.NewStateConflictError(t.ID, "approve delete", "delete already validated", string(StatusPendingDelete))
	}
	now := timeProvider.Now()
	name := approver.Name
	t.DeleteValidatedBy = &name
	t.DeleteValidatedAt = &now
	t.UpdatedAt = now
	return nil
}

// requireCreator matches the actor against the creator by display name.
// Records only carry the creator's name in the source system; ids are not compared.
func (t *Transaction) requireCreator(actor *User) error {
	if actor.Name != t.CreatedBy {
		return errs.NewAuthorizationError(actor.ID, string(actor.Role), "", "only the creator of the transaction can do this")
	}
	return nil
}

// RequireStatus returns a state conflict unless the transaction is in the required status
func (t *Transaction) RequireStatus(action string, required TransactionStatus) error {
	if t.Status != required {
		return t.conflict(action, required)
	}
	return nil
}

func (t *Transaction) conflict(action string, required TransactionStatus) error {
	return errs.NewStateConflictError(t.ID, action, string(t.Status), string(required))
}

// Clone returns a deep copy of the transaction
func (t *Transaction) Clone() *Transaction {
	c := *t
	c.Details = maps.Clone(t.Details)
	c.RejectionReason = clonePtr(t.RejectionReason)
	c.RealAmountEUR = clonePtr(t.RealAmountEUR)
	c.CommissionAmount = clonePtr(t.CommissionAmount)
	c.ExecutorID = clonePtr(t.ExecutorID)
	c.ExecutedAt = clonePtr(t.ExecutedAt)
	c.ReceiptURL = clonePtr(t.ReceiptURL)
	c.ExecutorComment = clonePtr(t.ExecutorComment)
	c.DeleteValidatedBy = clonePtr(t.DeleteValidatedBy)
	c.DeleteValidatedAt = clonePtr(t.DeleteValidatedAt)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// IsValidTransactionType validates if the transaction type is allowed
func IsValidTransactionType(transactionType string) bool {
	return transactionType == string(TypeTransfer) ||
		transactionType == string(TypeReception) ||
		transactionType == string(TypeExchange)
}

// IsValidStatus validates if the status is one of the workflow statuses
func IsValidStatus(status string) bool {
	switch TransactionStatus(status) {
	case StatusPending, StatusValidated, StatusRejected, StatusExecuted, StatusCompleted, StatusPendingDelete:
		return true
	}
	return false
}
