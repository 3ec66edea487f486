package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation        = 4000
	CodeInvalidAmount     = 4002
	CodeInvalidRealAmount = 4003
	CodeInvalidCurrency   = 4004
	CodeUnauthorized      = 4010
	CodeForbidden         = 4030
	CodeNotFound          = 4040
	CodeStateConflict     = 4090
	CodeDuplicate         = 4091

	// 5xxx - Server errors
	CodeInternalServer  = 5000
	CodeRateUnavailable = 5030
)

// Base error types
var (
	// ErrValidation is returned when request input is malformed or out of range
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when the declared amount is zero or negative
	ErrInvalidAmount = fmt.Errorf("%w: amount must be positive", ErrValidation)

	// ErrInvalidRealAmount is returned when the auditor supplied real amount is zero or negative
	ErrInvalidRealAmount = fmt.Errorf("%w: real amount must be positive", ErrValidation)

	// ErrInvalidCurrency is returned when the currency is not a 3-letter code or has no configured rate
	ErrInvalidCurrency = fmt.Errorf("%w: invalid currency", ErrValidation)

	// ErrInvalidTransactionType is returned when the transaction type is unknown
	ErrInvalidTransactionType = fmt.Errorf("%w: invalid transaction type", ErrValidation)

	// ErrInvalidTransactionID is returned when the transaction ID is empty
	ErrInvalidTransactionID = fmt.Errorf("%w: transaction ID cannot be empty", ErrValidation)

	// ErrInvalidRate is returned when an exchange rate is not positive
	ErrInvalidRate = fmt.Errorf("%w: exchange rate must be positive", ErrValidation)

	// ErrInvalidRole is returned when a role is not part of the role enumeration
	ErrInvalidRole = fmt.Errorf("%w: invalid role", ErrValidation)

	// ErrUnauthorized is returned when no identity could be resolved for the request
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the actor lacks a permission or identity match
	ErrForbidden = errors.New("forbidden")

	// ErrStateConflict is returned when a transaction is not in the state an action requires
	ErrStateConflict = errors.New("transaction state conflict")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrRateNotFound is returned when no exchange rate is configured for a currency
	ErrRateNotFound = errors.New("exchange rate not found")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRealAmount):
		return CodeInvalidRealAmount
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidCurrency):
		return CodeInvalidCurrency
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case IsNotFoundError(err):
		return CodeNotFound
	case errors.Is(err, ErrStateConflict):
		return CodeStateConflict
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicate
	case errors.Is(err, ErrRateNotFound):
		return CodeRateUnavailable
	default:
		return CodeInternalServer
	}
}

// HTTPStatus maps a domain error to the HTTP status the API answers with
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, ErrStateConflict), errors.Is(err, ErrDuplicateUser):
		return http.StatusConflict
	case errors.Is(err, ErrRateNotFound):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// AuthorizationError describes why an actor was refused an action
type AuthorizationError struct {
	ActorID    string
	Role       string
	Permission string
	Reason     string
}

// Error implements the error interface for AuthorizationError
func (e *AuthorizationError) Error() string {
	if e.Permission != "" {
		return fmt.Sprintf("actor %s (role: %s) is not allowed to %s: %s",
			e.ActorID, e.Role, e.Permission, e.Reason)
	}
	return fmt.Sprintf("actor %s (role: %s) is not allowed: %s", e.ActorID, e.Role, e.Reason)
}

// Is checks if the target error is an ErrForbidden
func (e *AuthorizationError) Is(target error) bool {
	return target == ErrForbidden
}

// LogFields returns a map of fields for structured logging
func (e *AuthorizationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "authorization_error",
		"actor_id":   e.ActorID,
		"role":       e.Role,
		"permission": e.Permission,
		"reason":     e.Reason,
		"error_code": CodeForbidden,
	}
}

// NewAuthorizationError creates a new authorization error
func NewAuthorizationError(actorID, role, permission, reason string) error {
	return &AuthorizationError{
		ActorID:    actorID,
		Role:       role,
		Permission: permission,
		Reason:     reason,
	}
}

// StateConflictError provides detailed information about a refused transition
type StateConflictError struct {
	TransactionID string
	Action        string
	Current       string
	Required      string
}

// Error implements the error interface
func (e *StateConflictError) Error() string {
	return fmt.Sprintf("cannot %s transaction %s: status is %s, requires %s",
		e.Action, e.TransactionID, e.Current, e.Required)
}

// Is checks if the target error is an ErrStateConflict
func (e *StateConflictError) Is(target error) bool {
	return target == ErrStateConflict
}

// LogFields returns a map of fields for structured logging
func (e *StateConflictError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "state_conflict",
		"transaction_id":  e.TransactionID,
		"action":          e.Action,
		"current_status":  e.Current,
		"required_status": e.Required,
		"error_code":      CodeStateConflict,
	}
}

// NewStateConflictError creates a new state conflict error
func NewStateConflictError(transactionID, action, current, required string) error {
	return &StateConflictError{
		TransactionID: transactionID,
		Action:        action,
		Current:       current,
		Required:      required,
	}
}

// LogFielder is implemented by errors that carry structured logging fields
type LogFielder interface {
	LogFields() map[string]any
}

// Fields returns the structured logging fields of err, falling back to its message
func Fields(err error) map[string]any {
	var lf LogFielder
	if errors.As(err, &lf) {
		return lf.LogFields()
	}
	return map[string]any{
		"error":      err.Error(),
		"error_code": ErrorCode(err),
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsStateConflictError checks if the error is a state conflict
func IsStateConflictError(err error) bool {
	return errors.Is(err, ErrStateConflict)
}

// IsAuthorizationError checks if the error is an authorization failure
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrForbidden) || errors.Is(err, ErrUnauthorized)
}

// IsValidationError checks if the error is an input validation failure
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
