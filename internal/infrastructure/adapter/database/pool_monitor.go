package database

import (
	"database/sql"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
)

// PoolMetrics is a snapshot of the connection pool
type PoolMetrics struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
}

// PoolMonitor samples the connection pool and warns when it nears exhaustion
type PoolMonitor struct {
	db       *sql.DB
	logger   coreport.Logger
	mu       sync.RWMutex
	last     PoolMetrics
	stopOnce sync.Once
	stop     chan struct{}
}

// NewPoolMonitor creates a monitor for db
func NewPoolMonitor(db *sql.DB, logger coreport.Logger) *PoolMonitor {
	return &PoolMonitor{db: db, logger: logger, stop: make(chan struct{})}
}

// Start samples once immediately, then every interval until Stop
func (m *PoolMonitor) Start(interval time.Duration) {
	m.collect()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.collect()
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop ends sampling. It is safe to call more than once.
func (m *PoolMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// Metrics returns the last sample
func (m *PoolMonitor) Metrics() PoolMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

func (m *PoolMonitor) collect() {
	stats := m.db.Stats()
	metrics := PoolMetrics{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}

	m.mu.Lock()
	m.last = metrics
	m.mu.Unlock()

	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > float64(stats.MaxOpenConnections)*0.8 {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}
}
