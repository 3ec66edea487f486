package transaction

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/usecase/validation"
)

// Config holds the tunables of the transaction workflow
type Config struct {
	CommissionThreshold int64 // minimum commission, in settlement minor units, for validation
	DefaultPageSize     int
	MaxPageSize         int
}

// Service implements the transaction workflow on top of the unit of work
type Service struct {
	uow          persistence.UnitOfWork
	permissions  *permission.Table
	rates        gateway.RateProvider
	notifier     gateway.Notifier
	assigner     *ExecutorAssigner
	validator    *validation.ValidationHelper
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	cfg          Config
}

var _ usecase.TransactionUseCase = (*Service)(nil)

// NewTransactionService creates a new transaction service
func NewTransactionService(
	uow persistence.UnitOfWork,
	users persistence.UserRepository,
	permissions *permission.Table,
	rates gateway.RateProvider,
	notifier gateway.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	cfg Config,
) *Service {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 50
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		cfg.MaxPageSize = cfg.DefaultPageSize
	}

	return &Service{
		uow:          uow,
		permissions:  permissions,
		rates:        rates,
		notifier:     notifier,
		assigner:     NewExecutorAssigner(users, logger),
		validator:    validation.NewValidationHelper(),
		timeProvider: timeProvider,
		logger:       logger,
		cfg:          cfg,
	}
}

// HasPermission reports whether role holds p. Routes use it to refuse a request before the operation runs.
func (s *Service) HasPermission(role entity.Role, p permission.Permission) bool {
	return s.permissions.HasPermission(role, p)
}

// authorize refuses actors that lack p
func (s *Service) authorize(actor *entity.User, p permission.Permission) error {
	if actor == nil {
		return errs.ErrUnauthorized
	}
	if !s.permissions.HasPermission(actor.Role, p) {
		return errs.NewAuthorizationError(actor.ID, string(actor.Role), string(p), "missing permission")
	}
	return nil
}

// load fetches a transaction outside of any unit of work
func (s *Service) load(ctx context.Context, id string) (*entity.Transaction, error) {
	if err := validateTransactionID(id); err != nil {
		return nil, err
	}
	return s.uow.GetTransactionRepository(ctx).GetByID(ctx, id)
}

// inUnitOfWork runs fn in a database transaction, committing only when fn succeeds
func (s *Service) inUnitOfWork(ctx context.Context, fn func(txCtx context.Context) error) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return storageError(err)
	}

	if err := fn(txCtx); err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Warn("Rollback failed", map[string]any{"error": rbErr.Error()})
		}
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return storageError(err)
	}
	return nil
}

// storageError keeps conflicts and already classified failures, wrapping anything else
func storageError(err error) error {
	if errs.IsStateConflictError(err) || errors.Is(err, errs.ErrDatabaseConnection) {
		return err
	}
	return fmt.Errorf("%w: %v", errs.ErrDatabaseConnection, err)
}

// persistTransition stores txn if its stored status is still expected, together with its audit event
func (s *Service) persistTransition(ctx context.Context, txn *entity.Transaction, expected entity.TransactionStatus, event *entity.TransactionEvent) error {
	return s.inUnitOfWork(ctx, func(txCtx context.Context) error {
		if err := s.uow.GetTransactionRepository(txCtx).UpdateIfStatus(txCtx, txn, expected); err != nil {
			return err
		}
		return s.uow.GetEventRepository(txCtx).Append(txCtx, event)
	})
}

// notify dispatches a notification. Delivery failures never fail the operation.
func (s *Service) notify(ctx context.Context, n gateway.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("Notification dispatch failed", map[string]any{
			"event":          n.Event,
			"transaction_id": n.TransactionID,
			"error":          err.Error(),
		})
	}
}

// fail logs a failed operation and returns err unchanged.
// Caller mistakes are logged as warnings, everything else as errors.
func (s *Service) fail(operation string, actor *entity.User, transactionID string, err error) error {
	fields := maps.Clone(errs.Fields(err))
	fields["operation"] = operation
	if transactionID != "" {
		fields["transaction_id"] = transactionID
	}
	if actor != nil {
		fields["actor_id"] = actor.ID
	}

	if errs.ErrorCode(err) >= errs.CodeInternalServer {
		s.logger.Error("Transaction operation failed", fields)
	} else {
		s.logger.Warn("Transaction operation refused", fields)
	}
	return err
}
