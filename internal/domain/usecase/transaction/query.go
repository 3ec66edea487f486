package transaction

import (
	"context"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
)

// Get returns a single transaction
func (s *Service) Get(ctx context.Context, actor *entity.User, id string) (*entity.Transaction, error) {
	if err := s.authorize(actor, permission.ViewTransactions); err != nil {
		return nil, s.fail("get", actor, id, err)
	}
	txn, err := s.load(ctx, id)
	if err != nil {
		return nil, s.fail("get", actor, id, err)
	}
	return txn, nil
}

// List returns the transactions matching filter, newest first
func (s *Service) List(ctx context.Context, actor *entity.User, filter persistence.TransactionFilter) ([]*entity.Transaction, error) {
	if err := s.authorize(actor, permission.ViewTransactions); err != nil {
		return nil, s.fail("list", actor, "", err)
	}
	filter, err := s.normalizeFilter(filter)
	if err != nil {
		return nil, s.fail("list", actor, "", err)
	}

	txns, err := s.uow.GetTransactionRepository(ctx).List(ctx, filter)
	if err != nil {
		return nil, s.fail("list", actor, "", err)
	}
	return txns, nil
}

// History returns the audit trail of a transaction. Deleted transactions keep their trail.
func (s *Service) History(ctx context.Context, actor *entity.User, id string) ([]*entity.TransactionEvent, error) {
	if err := s.authorize(actor, permission.ViewTransactions); err != nil {
		return nil, s.fail("history", actor, id, err)
	}
	if err := validateTransactionID(id); err != nil {
		return nil, s.fail("history", actor, id, err)
	}

	events, err := s.uow.GetEventRepository(ctx).ListByTransaction(ctx, id)
	if err != nil {
		return nil, s.fail("history", actor, id, err)
	}
	return events, nil
}
