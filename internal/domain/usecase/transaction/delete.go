package transaction

import (
	"context"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/usecase"
)

const actionApproveDelete = "approve delete"

// RequestDelete moves a completed transaction to pending_delete on behalf of its creator
func (s *Service) RequestDelete(ctx context.Context, actor *entity.User, id string) (*entity.Transaction, error) {
	const op = "request_delete"
	if err := s.authorize(actor, permission.RequestDeleteTransactions); err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	txn := current.Clone()
	if err := txn.MarkPendingDelete(actor, s.timeProvider); err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	event := entity.NewTransactionEvent(txn, entity.ActionDeleteRequested, entity.StatusCompleted, entity.StatusPendingDelete, actor, "", txn.UpdatedAt)
	if err := s.persistTransition(ctx, txn, entity.StatusCompleted, event); err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	s.logger.Info("Transaction delete requested", map[string]any{"transaction_id": txn.ID, "actor_id": actor.ID})
	s.notify(ctx, gateway.Notification{Event: gateway.EventDeleteRequested, TransactionID: txn.ID})
	return txn, nil
}

// ApproveDelete confirms a pending deletion and removes the transaction.
// The audit fields are written, the approval is recorded in the event trail
// and the row is deleted, all in one unit of work.
func (s *Service) ApproveDelete(ctx context.Context, actor *entity.User, id string) (*usecase.DeleteResult, error) {
	const op = "approve_delete"
	if err := s.authorize(actor, permission.ApproveDeleteTransactions); err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	txn := current.Clone()
	if err := txn.MarkDeleteValidated(actor, s.timeProvider); err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	event := entity.NewTransactionEvent(txn, entity.ActionDeleted, entity.StatusPendingDelete, "", actor, "", *txn.DeleteValidatedAt)
	err = s.inUnitOfWork(ctx, func(txCtx context.Context) error {
		repo := s.uow.GetTransactionRepository(txCtx)
		if err := repo.UpdateIfStatus(txCtx, txn, entity.StatusPendingDelete); err != nil {
			return err
		}
		if err := s.uow.GetEventRepository(txCtx).Append(txCtx, event); err != nil {
			return err
		}
		return repo.DeleteIfStatus(txCtx, txn.ID, entity.StatusPendingDelete)
	})
	if errs.IsNotFoundError(err) {
		// a concurrent approval removed the row after we loaded it
		err = errs.NewStateConflictError(txn.ID, actionApproveDelete, "deleted", string(entity.StatusPendingDelete))
	}
	if err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	s.logger.Info("Transaction deleted", map[string]any{
		"transaction_id": txn.ID,
		"approved_by":    actor.ID,
		"requested_by":   txn.CreatedByID,
	})
	s.notify(ctx, gateway.Notification{
		Event:         gateway.EventTransactionDeleted,
		TransactionID: txn.ID,
		RecipientID:   txn.CreatedByID,
		Fields:        map[string]any{"approved_by": actor.Name},
	})

	return &usecase.DeleteResult{
		TransactionID: txn.ID,
		ApprovedBy:    *txn.DeleteValidatedBy,
		ApprovedAt:    *txn.DeleteValidatedAt,
	}, nil
}
