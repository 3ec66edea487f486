package dto

import (
	"time"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
)

// CreateTransactionRequest represents the API request for recording a transaction
type CreateTransactionRequest struct {
	Type        string         `json:"type" binding:"required"`
	Amount      int64          `json:"amount"`
	Currency    string         `json:"currency" binding:"required"`
	Description string         `json:"description"`
	Agency      string         `json:"agency"`
	Details     map[string]any `json:"details"`
}

// RealAmountRequest carries the auditor's counted amount, in EUR cents
type RealAmountRequest struct {
	RealAmountEUR int64 `json:"realAmountEur"`
}

// ExecuteRequest carries the executor's receipt reference
type ExecuteRequest struct {
	ReceiptURL string `json:"receiptUrl" binding:"required"`
	Comment    string `json:"comment"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID                string         `json:"id"`
	Type              string         `json:"type"`
	Status            string         `json:"status"`
	Description       string         `json:"description,omitempty"`
	Amount            int64          `json:"amount"`
	Currency          string         `json:"currency"`
	CreatedBy         string         `json:"createdBy"`
	CreatedByID       string         `json:"createdById"`
	Agency            string         `json:"agency,omitempty"`
	Details           map[string]any `json:"details,omitempty"`
	RejectionReason   *string        `json:"rejectionReason,omitempty"`
	RealAmountEUR     *int64         `json:"realAmountEur,omitempty"`
	CommissionAmount  *int64         `json:"commissionAmount,omitempty"`
	ExecutorID        *string        `json:"executorId,omitempty"`
	ExecutedAt        *time.Time     `json:"executedAt,omitempty"`
	ReceiptURL        *string        `json:"receiptUrl,omitempty"`
	ExecutorComment   *string        `json:"executorComment,omitempty"`
	DeleteValidatedBy *string        `json:"deleteValidatedBy,omitempty"`
	DeleteValidatedAt *time.Time     `json:"deleteValidatedAt,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// TransactionListResponse wraps a page of transactions
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Count int                   `json:"count"`
}

// DeleteResponse confirms an approved deletion
type DeleteResponse struct {
	TransactionID string    `json:"transactionId"`
	Deleted       bool      `json:"deleted"`
	ApprovedBy    string    `json:"approvedBy"`
	ApprovedAt    time.Time `json:"approvedAt"`
}

// EventResponse represents one audit trail entry
type EventResponse struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus,omitempty"`
	ActorID    string    `json:"actorId"`
	ActorName  string    `json:"actorName"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FromTransaction maps a domain transaction to its API representation
func FromTransaction(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                t.ID,
		Type:              string(t.Type),
		Status:            string(t.Status),
		Description:       t.Description,
		Amount:            t.Amount,
		Currency:          t.Currency,
		CreatedBy:         t.CreatedBy,
		CreatedByID:       t.CreatedByID,
		Agency:            t.Agency,
		Details:           t.Details,
		RejectionReason:   t.RejectionReason,
		RealAmountEUR:     t.RealAmountEUR,
		CommissionAmount:  t.CommissionAmount,
		ExecutorID:        t.ExecutorID,
		ExecutedAt:        t.ExecutedAt,
		ReceiptURL:        t.ReceiptURL,
		ExecutorComment:   t.ExecutorComment,
		DeleteValidatedBy: t.DeleteValidatedBy,
		DeleteValidatedAt: t.DeleteValidatedAt,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// FromTransactions maps a list of transactions, never returning nil
func FromTransactions(ts []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromTransaction(t))
	}
	return out
}

// FromEvents maps an audit trail, never returning nil
func FromEvents(events []*entity.TransactionEvent) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, EventResponse{
			ID:         e.ID,
			Action:     e.Action,
			FromStatus: string(e.FromStatus),
			ToStatus:   string(e.ToStatus),
			ActorID:    e.ActorID,
			ActorName:  e.ActorName,
			Note:       e.Note,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out
}
