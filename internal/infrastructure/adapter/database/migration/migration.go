package migration

import (
	"context"
	"errors"
	"fmt"

	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// CurrentSchemaVersion represents the current database schema version
const CurrentSchemaVersion = "1.1.0"

// step upgrades the schema from one version to the next
type step struct {
	from, to string
	run      func(ctx context.Context, db *gorm.DB) error
}

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	steps        []step
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		steps: []step{
			{from: "", to: "1.0.0", run: createWorkflowIndexes},
			{from: "1.0.0", to: "1.1.0", run: createAuditIndexes},
		},
	}
}

// MigrateAll creates the tables and applies every step newer than the stored version
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	db := m.db.WithContext(ctx)

	if err := db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		return fmt.Errorf("create migration version table: %w", err)
	}

	current, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if current == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": current,
		})
		return nil
	}

	m.logger.Info("Starting database migrations", map[string]any{
		"from": current,
		"to":   CurrentSchemaVersion,
	})

	if err := db.AutoMigrate(&model.User{}, &model.Transaction{}, &model.TransactionEvent{}); err != nil {
		return fmt.Errorf("auto-migrate models: %w", err)
	}

	version := current
	for _, s := range m.steps {
		if s.from != version {
			continue
		}
		if err := s.run(ctx, db); err != nil {
			return fmt.Errorf("migrate %q to %s: %w", version, s.to, err)
		}
		if err := m.setVersion(ctx, s.to, fmt.Sprintf("upgrade from %q", version)); err != nil {
			return fmt.Errorf("record schema version %s: %w", s.to, err)
		}
		m.logger.Info("Schema version applied", map[string]any{"version": s.to})
		version = s.to
	}

	if version != CurrentSchemaVersion {
		return fmt.Errorf("no migration path from schema version %q", current)
	}
	return nil
}

// GetCurrentVersion returns the last applied version, or "" on a fresh database
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	var version model.MigrationVersion
	err := m.db.WithContext(ctx).Order("applied_at desc, id desc").First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return version.Version, nil
}

func (m *MigrationManager) setVersion(ctx context.Context, version, details string) error {
	return m.db.WithContext(ctx).Create(&model.MigrationVersion{
		Version:   version,
		AppliedAt: m.timeProvider.Now(),
		Details:   details,
	}).Error
}
