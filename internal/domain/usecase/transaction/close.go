package transaction

import (
	"context"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/gateway"
)

// Close completes an executed transaction on behalf of its creator
func (s *Service) Close(ctx context.Context, actor *entity.User, id string) (*entity.Transaction, error) {
	const op = "close"
	if err := s.authorize(actor, permission.CloseTransactions); err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	txn := current.Clone()
	if err := txn.MarkCompleted(actor, s.timeProvider); err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	event := entity.NewTransactionEvent(txn, entity.ActionCompleted, entity.StatusExecuted, entity.StatusCompleted, actor, "", txn.UpdatedAt)
	if err := s.persistTransition(ctx, txn, entity.StatusExecuted, event); err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	s.logger.Info("Transaction closed", map[string]any{"transaction_id": txn.ID, "actor_id": actor.ID})
	s.notify(ctx, gateway.Notification{Event: gateway.EventTransactionCompleted, TransactionID: txn.ID})
	return txn, nil
}
