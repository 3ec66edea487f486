package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	coremocks "github.com/amirhossein-jamali/remittance-backoffice/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
)

func TestManager_ConnectAndClose(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	cfg := validConfig()
	cfg.LogLevel = "error"
	tp := coremocks.NewFixedTimeProvider(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	m := NewManagerWithDialector(cfg, postgres.New(postgres.Config{Conn: sqlDB}), coremocks.NewMockLogger(t).AllowAll(), tp)

	db, err := m.Connect(context.Background())
	require.NoError(t, err)
	assert.Same(t, db, m.DB())
	assert.Equal(t, cfg.MaxOpenConns, m.PoolMetrics().MaxOpenConnections)
	assert.NoError(t, m.Ping(context.Background()))
	assert.NotNil(t, m.CreateUnitOfWork())

	mock.ExpectClose()
	require.NoError(t, m.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_PingBeforeConnect(t *testing.T) {
	m := NewManager(validConfig(), coremocks.NewMockLogger(t), coremocks.NewMockTimeProvider(t))
	assert.Error(t, m.Ping(context.Background()))
	assert.NoError(t, m.Close())
	assert.Equal(t, PoolMetrics{}, m.PoolMetrics())
}

func TestManager_WithTimeout(t *testing.T) {
	m := NewManager(validConfig(), coremocks.NewMockLogger(t), coremocks.NewMockTimeProvider(t))

	ctx, cancel := m.WithTimeout(context.Background())
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}
