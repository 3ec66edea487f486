package dto

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
)

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse maps a domain error to its HTTP status and body.
// Internal failures never leak their message.
func NewErrorResponse(err error) (int, ErrorResponse) {
	status := domainerr.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	return status, ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	}
}
