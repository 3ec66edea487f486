package transaction

import (
	"context"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/usecase"
)

// Execute records the receipt of a validated transaction. Only the bound executor may do it,
// holding the executor permission is not enough.
func (s *Service) Execute(ctx context.Context, actor *entity.User, id string, req usecase.ExecuteRequest) (*entity.Transaction, error) {
	const op = "execute"
	if err := s.authorize(actor, permission.ExecuteTransactions); err != nil {
		return nil, s.fail(op, actor, id, err)
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	txn := current.Clone()
	if err := txn.MarkExecuted(actor, req.ReceiptURL, req.Comment, s.timeProvider); err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	event := entity.NewTransactionEvent(txn, entity.ActionExecuted, entity.StatusValidated, entity.StatusExecuted, actor, req.Comment, txn.UpdatedAt)
	if err := s.persistTransition(ctx, txn, entity.StatusValidated, event); err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	s.logger.Info("Transaction executed", map[string]any{
		"transaction_id": txn.ID,
		"executor_id":    actor.ID,
	})
	s.notify(ctx, gateway.Notification{
		Event:         gateway.EventTransactionExecuted,
		TransactionID: txn.ID,
		RecipientID:   txn.CreatedByID,
		Fields:        map[string]any{"receipt_url": *txn.ReceiptURL},
	})
	return txn, nil
}
