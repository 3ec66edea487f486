package handler

import (
	"fmt"
	"net/http"

	domainerr "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// respondError writes the error response for err and logs server-side failures
func respondError(c *gin.Context, logger coreport.Logger, operation string, err error) {
	status, body := dto.NewErrorResponse(err)
	if status >= http.StatusInternalServerError {
		fields := domainerr.Fields(err)
		fields["operation"] = operation
		fields["path"] = c.Request.URL.Path
		logger.Error("Request failed", fields)
	}
	_ = c.Error(err)
	c.JSON(status, body)
}

// invalidRequest wraps a binding failure as a validation error
func invalidRequest(err error) error {
	return fmt.Errorf("%w: invalid request format: %v", domainerr.ErrValidation, err)
}
