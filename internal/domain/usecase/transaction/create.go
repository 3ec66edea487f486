package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/usecase"
)

// Create records a new pending transaction owned by actor
func (s *Service) Create(ctx context.Context, actor *entity.User, req usecase.CreateTransactionRequest) (*entity.Transaction, error) {
	if err := s.authorize(actor, permission.CreateTransactions); err != nil {
		return nil, s.fail("create", actor, "", err)
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, s.fail("create", actor, "", err)
	}

	txn, err := entity.NewTransaction(entity.NewTransactionParams{
		Type:        req.Type,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		Agency:      req.Agency,
		Details:     req.Details,
	}, actor, s.timeProvider)
	if err != nil {
		return nil, s.fail("create", actor, "", err)
	}
	// the settlement currency must be convertible at evaluation time
	if _, err := s.rates.RateFor(ctx, txn.Currency); err != nil {
		if errors.Is(err, errs.ErrRateNotFound) {
			err = fmt.Errorf("%w: no exchange rate configured for %s", errs.ErrInvalidCurrency, txn.Currency)
		}
		return nil, s.fail("create", actor, "", err)
	}

	event := entity.NewTransactionEvent(txn, entity.ActionCreated, "", entity.StatusPending, actor, "", txn.CreatedAt)
	err = s.inUnitOfWork(ctx, func(txCtx context.Context) error {
		if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, txn); err != nil {
			return err
		}
		return s.uow.GetEventRepository(txCtx).Append(txCtx, event)
	})
	if err != nil {
		return nil, s.fail("create", actor, txn.ID, err)
	}

	s.logger.Info("Transaction created", map[string]any{
		"transaction_id": txn.ID,
		"type":           txn.Type,
		"amount":         txn.Amount,
		"currency":       txn.Currency,
		"created_by":     actor.ID,
	})
	s.notify(ctx, gateway.Notification{
		Event:         gateway.EventTransactionCreated,
		TransactionID: txn.ID,
		Fields:        map[string]any{"agency": txn.Agency, "amount": txn.Amount, "currency": txn.Currency},
	})
	return txn, nil
}
