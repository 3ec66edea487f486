package database

import (
	"context"
	"database/sql"
	"errors"

	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// txContextKey is the context key holding the open *gorm.DB transaction
type txContextKey struct{}

// errNoTransaction is returned by Commit and Rollback outside of Begin
var errNoTransaction = errors.New("no transaction found in context")

// UnitOfWork implements the unit of work pattern for database transactions.
// Guarded status writes make READ COMMITTED sufficient for the workflow.
type UnitOfWork struct {
	db        *gorm.DB
	logger    coreport.Logger
	mapper    *ErrorMapper
	isolation sql.IsolationLevel
}

var _ persistence.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger) *UnitOfWork {
	return &UnitOfWork{
		db:        db,
		logger:    logger,
		mapper:    NewErrorMapper(),
		isolation: sql.LevelReadCommitted,
	}
}

// Begin starts a new database transaction and stores it in the returned context
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok && tx != nil {
		return ctx, errors.New("transaction already started in context")
	}

	tx := u.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: u.isolation})
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, u.mapper.MapError(tx.Error, "begin")
	}
	return context.WithValue(ctx, txContextKey{}, tx), nil
}

// Commit commits the transaction held by ctx
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	if !ok || tx == nil {
		return errNoTransaction
	}

	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return u.mapper.MapError(err, "commit")
	}
	return nil
}

// Rollback rolls back the transaction held by ctx. Rolling back a finished transaction is not an error.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	if !ok || tx == nil {
		return errNoTransaction
	}

	err := tx.Rollback().Error
	if errors.Is(err, sql.ErrTxDone) {
		u.logger.Warn("Transaction has already been committed or rolled back", nil)
		return nil
	}
	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{"error": err.Error()})
		return u.mapper.MapError(err, "rollback")
	}
	return nil
}

// GetUserRepository returns a user repository bound to the current transaction
func (u *UnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return repository.NewUserRepository(u.dbFromContext(ctx), u.logger)
}

// GetTransactionRepository returns a transaction repository bound to the current transaction
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.dbFromContext(ctx), u.logger)
}

// GetEventRepository returns an audit event repository bound to the current transaction
func (u *UnitOfWork) GetEventRepository(ctx context.Context) persistence.EventRepository {
	return repository.NewEventRepository(u.dbFromContext(ctx), u.logger)
}

// dbFromContext returns the open transaction, or the pool when ctx carries none
func (u *UnitOfWork) dbFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
