package repository

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// EventRepository stores the transaction audit trail using GORM
type EventRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

var _ persistence.EventRepository = (*EventRepository)(nil)

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB, logger coreport.Logger) *EventRepository {
	return &EventRepository{db: db, logger: logger}
}

// Append adds an event to the trail
func (r *EventRepository) Append(ctx context.Context, event *entity.TransactionEvent) error {
	m := &model.TransactionEvent{
		ID:            event.ID,
		TransactionID: event.TransactionID,
		Action:        event.Action,
		FromStatus:    string(event.FromStatus),
		ToStatus:      string(event.ToStatus),
		ActorID:       event.ActorID,
		ActorName:     event.ActorName,
		Note:          event.Note,
		CreatedAt:     event.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error("Failed to append transaction event", map[string]any{
			"transaction_id": event.TransactionID,
			"action":         event.Action,
			"error":          err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return nil
}

// ListByTransaction returns the events of a transaction, oldest first
func (r *EventRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*entity.TransactionEvent, error) {
	var models []model.TransactionEvent
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	events := make([]*entity.TransactionEvent, 0, len(models))
	for _, m := range models {
		events = append(events, &entity.TransactionEvent{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			Action:        m.Action,
			FromStatus:    entity.TransactionStatus(m.FromStatus),
			ToStatus:      entity.TransactionStatus(m.ToStatus),
			ActorID:       m.ActorID,
			ActorName:     m.ActorName,
			Note:          m.Note,
			CreatedAt:     m.CreatedAt,
		})
	}
	return events, nil
}
