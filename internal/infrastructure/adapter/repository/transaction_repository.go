package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// transactionToModel converts a domain transaction entity to a database model
func transactionToModel(t *entity.Transaction) *model.Transaction {
	return &model.Transaction{
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

// modelToTransaction converts a database model to a domain transaction entity
func modelToTransaction(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:                m.ID,
		Type:              entity.TransactionType(m.Type),
		Status:            entity.TransactionStatus(m.Status),
		Description:       m.Description,
		Amount:            m.Amount,
		Currency:          m.Currency,
		CreatedBy:         m.CreatedBy,
		CreatedByID:       m.CreatedByID,
		Agency:            m.Agency,
		Details:           m.Details,
		RejectionReason:   m.RejectionReason,
		RealAmountEUR:     m.RealAmountEUR,
		CommissionAmount:  m.CommissionAmount,
		ExecutorID:        m.ExecutorID,
		ExecutedAt:        m.ExecutedAt,
		ReceiptURL:        m.ReceiptURL,
		ExecutorComment:   m.ExecutorComment,
		DeleteValidatedBy: m.DeleteValidatedBy,
		DeleteValidatedAt: m.DeleteValidatedAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *TransactionRepository) handleDatabaseError(operation string, err error, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrTransactionNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"transaction_id": id,
		"error":          err.Error(),
		"error_type":     r.errorClassifier.Classify(err),
	})

	if r.errorClassifier.IsLockError(err) {
		return errs.NewStateConflictError(id, operation, "locked", "unlocked")
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.logger.Debug("Creating transaction record", map[string]any{
		"transaction_id": transaction.ID,
		"type":           transaction.Type,
	})

	if err := r.db.WithContext(ctx).Create(transactionToModel(transaction)).Error; err != nil {
		return r.handleDatabaseError("creating transaction", err, transaction.ID)
	}
	return nil
}

// GetByID retrieves a transaction by its identifier
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var m model.Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, r.handleDatabaseError("getting transaction", err, id)
	}
	return modelToTransaction(&m), nil
}

// List returns transactions matching filter, newest first
func (r *TransactionRepository) List(ctx context.Context, filter persistence.TransactionFilter) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&model.Transaction{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Agency != "" {
		query = query.Where("agency = ?", filter.Agency)
	}
	if filter.ExecutorID != "" {
		query = query.Where("executor_id = ?", filter.ExecutorID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var models []model.Transaction
	if err := query.Order("created_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, r.handleDatabaseError("listing transactions", err, "")
	}

	txns := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		txns = append(txns, modelToTransaction(&models[i]))
	}
	return txns, nil
}

// UpdateIfStatus writes every mutable column of transaction, guarded by the stored status
func (r *TransactionRepository) UpdateIfStatus(ctx context.Context, transaction *entity.Transaction, expected entity.TransactionStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ? AND status = ?", transaction.ID, string(expected)).
		Select("*").
		Omit("id", "created_at").
		Updates(transactionToModel(transaction))
	if result.Error != nil {
		return r.handleDatabaseError("updating transaction", result.Error, transaction.ID)
	}
	if result.RowsAffected == 0 {
		return r.resolveMiss(ctx, transaction.ID, "update", expected)
	}

	r.logger.Debug("Transaction updated", map[string]any{
		"transaction_id": transaction.ID,
		"from":           expected,
		"to":             transaction.Status,
	})
	return nil
}

// DeleteIfStatus removes the row when its stored status equals expected
func (r *TransactionRepository) DeleteIfStatus(ctx context.Context, id string, expected entity.TransactionStatus) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, string(expected)).
		Delete(&model.Transaction{})
	if result.Error != nil {
		return r.handleDatabaseError("deleting transaction", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return r.resolveMiss(ctx, id, "delete", expected)
	}
	return nil
}

// resolveMiss explains why a guarded write touched no row
func (r *TransactionRepository) resolveMiss(ctx context.Context, id, action string, expected entity.TransactionStatus) error {
	var current model.Transaction
	err := r.db.WithContext(ctx).Select("status").Where("id = ?", id).First(&current).Error
	if err != nil {
		return r.handleDatabaseError("reading transaction status", err, id)
	}

	r.logger.Warn("Guarded write lost the race", map[string]any{
		"transaction_id": id,
		"action":         action,
		"expected":       expected,
		"current":        current.Status,
	})
	return errs.NewStateConflictError(id, action, current.Status, string(expected))
}
