package handler

import (
	"context"
	"net/http"
	"time"

	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// Pinger is a dependency the health check can probe
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f(ctx)
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler reports whether the service can reach its dependencies
type HealthHandler struct {
	database Pinger
	redis    Pinger // nil when Redis is disabled
	logger   coreport.Logger
}

// NewHealthHandler creates a new health handler. redis may be nil.
func NewHealthHandler(database, redis Pinger, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{database: database, redis: redis, logger: logger}
}

// Health handles GET /health. The database is required; Redis only degrades the service.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Database: "up", Redis: "disabled"}
	status := http.StatusOK

	if err := h.database.Ping(ctx); err != nil {
		h.logger.Error("Health check: database unreachable", map[string]any{"error": err.Error()})
		resp.Status = "unavailable"
		resp.Database = "down"
		status = http.StatusServiceUnavailable
	}

	if h.redis != nil {
		resp.Redis = "up"
		if err := h.redis.Ping(ctx); err != nil {
			h.logger.Warn("Health check: redis unreachable", map[string]any{"error": err.Error()})
			resp.Redis = "down"
			if status == http.StatusOK {
				resp.Status = "degraded"
			}
		}
	}

	c.JSON(status, resp)
}
