package middleware

import (
	"net/http"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	coremocks "github.com/amirhossein-jamali/remittance-backoffice/mocks/port/core"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestErrorHandler_RecoversPanics(t *testing.T) {
	logger := coremocks.NewMockLogger(t)
	logger.On("Error", "Panic recovered in API request", mock.MatchedBy(func(fields map[string]any) bool {
		return fields["path"] == "/boom" && fields["error"] == "kaboom"
	})).Once()

	router := gin.New()
	router.Use(ErrorHandler(logger))
	router.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := request(router, http.MethodGet, "/boom", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":5000,"message":"Internal server error"}`, w.Body.String())
}

func TestLogger_LevelFollowsStatus(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tp := coremocks.NewFixedTimeProvider(t, start)
	tp.On("Since", start).Return(coreport.Duration(12 * time.Millisecond))

	logger := coremocks.NewMockLogger(t)
	logger.On("Info", "Request processed", mock.MatchedBy(func(fields map[string]any) bool {
		return fields["status"] == http.StatusOK && fields["latency_ms"] == int64(12) && fields["route"] == "/ok"
	})).Once()
	logger.On("Warn", "Request rejected", mock.MatchedBy(func(fields map[string]any) bool {
		return fields["status"] == http.StatusUnauthorized
	})).Once()
	logger.On("Error", "Request failed", mock.MatchedBy(func(fields map[string]any) bool {
		return fields["status"] == http.StatusInternalServerError
	})).Once()

	router := gin.New()
	router.Use(Logger(logger, tp))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/denied", func(c *gin.Context) { c.Status(http.StatusUnauthorized) })
	router.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	request(router, http.MethodGet, "/ok", "")
	request(router, http.MethodGet, "/denied", "")
	request(router, http.MethodGet, "/broken", "")
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Success", statusText(204))
	assert.Equal(t, "Redirect", statusText(302))
	assert.Equal(t, "Client Error", statusText(409))
	assert.Equal(t, "Server Error", statusText(503))
}
