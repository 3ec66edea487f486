package cache

import (
	"context"
	"net"
	"time"

	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/config"
	"github.com/go-redis/redis/v8"
)

const pingTimeout = 3 * time.Second

// NewRedisClient connects to the configured Redis instance.
// It returns nil when Redis is disabled or unreachable; callers then run without the cache.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, logger coreport.Logger) *redis.Client {
	if !cfg.Enabled() {
		logger.Info("Redis disabled, running without cache", nil)
		return nil
	}

	port := cfg.Port
	if port == "" {
		port = "6379"
	}
	addr := net.JoinHostPort(cfg.Host, port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis connection failed, continuing without Redis", map[string]any{
			"addr":  addr,
			"error": err.Error(),
		})
		_ = rdb.Close()
		return nil
	}

	logger.Info("Redis connection established", map[string]any{"addr": addr, "db": cfg.DB})
	return rdb
}
