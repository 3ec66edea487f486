package database

import (
	"context"
	"fmt"
	"time"

	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/database/migration"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const poolSampleInterval = 30 * time.Second

// Manager owns the database connection of the service
type Manager struct {
	config       *Config
	dialector    gorm.Dialector
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	monitor      *PoolMonitor
}

// NewManager creates a manager connecting to PostgreSQL with config
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return NewManagerWithDialector(config, postgres.Open(config.DSN()), logger, timeProvider)
}

// NewManagerWithDialector creates a manager over an explicit GORM dialector
func NewManagerWithDialector(config *Config, dialector gorm.Dialector, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		config:       config,
		dialector:    dialector,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Connect opens and pings the database, retrying connectivity failures
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	m.logger.Info("Connecting to database", map[string]any{
		"host": m.config.Host,
		"port": m.config.Port,
		"name": m.config.Database,
	})

	retry := DefaultRetryConfig()
	retry.MaxRetries = max(m.config.RetryAttempts, 1)
	if m.config.RetryDelay > 0 {
		retry.RetryInterval = m.config.RetryDelay
		retry.MaxInterval = 8 * m.config.RetryDelay
	}

	var gormDB *gorm.DB
	err := RetryOnTransientError(ctx, retry, func() error {
		db, err := gorm.Open(m.dialector, &gorm.Config{
			Logger:                 NewGormLogger(m.logger, m.config.LogLevel, m.config.SlowQueryThreshold, m.timeProvider),
			NowFunc:                m.timeProvider.Now,
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
		})
		if err != nil {
			return err
		}
		if err := m.ping(ctx, db); err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return err
		}
		gormDB = db
		return nil
	}, m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	m.db = gormDB
	m.monitor = NewPoolMonitor(sqlDB, m.logger)
	m.monitor.Start(poolSampleInterval)

	m.logger.Info("Successfully connected to database", map[string]any{
		"max_open_conns": m.config.MaxOpenConns,
		"max_idle_conns": m.config.MaxIdleConns,
		"query_timeout":  m.config.QueryTimeout.String(),
	})
	return m.db, nil
}

func (m *Manager) ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	pingCtx, cancel := m.WithTimeout(ctx)
	defer cancel()
	return sqlDB.PingContext(pingCtx)
}

// Ping checks that the database still answers, used by the health endpoint
func (m *Manager) Ping(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database not connected")
	}
	return m.ping(ctx, m.db)
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// PoolMetrics returns the last connection pool sample
func (m *Manager) PoolMetrics() PoolMetrics {
	if m.monitor == nil {
		return PoolMetrics{}
	}
	return m.monitor.Metrics()
}

// Close stops pool sampling and closes the connection
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	m.logger.Info("Closing database connection", nil)

	if m.monitor != nil {
		m.monitor.Stop()
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// WithTimeout returns a context bounded by the configured query timeout
func (m *Manager) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.config.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.config.QueryTimeout)
}

// CreateUnitOfWork creates a new UnitOfWork over the connection
func (m *Manager) CreateUnitOfWork() *UnitOfWork {
	return NewUnitOfWork(m.db, m.logger)
}

// Migrate brings the schema to the current version
func (m *Manager) Migrate(ctx context.Context) error {
	return migration.NewMigrationManager(m.db, m.logger, m.timeProvider).MigrateAll(ctx)
}
