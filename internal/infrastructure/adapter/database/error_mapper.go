package database

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/repository"
)

// ErrorMapper maps errors raised while driving a database transaction to domain errors
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// MapError maps err raised during operation. A lost serialization race becomes a
// state conflict so that callers report it as 409 rather than a server failure.
func (m *ErrorMapper) MapError(err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case errs.IsStateConflictError(err), errors.Is(err, errs.ErrDatabaseConnection):
		return err
	case m.classifier.IsLockError(err):
		return fmt.Errorf("%w: %s lost a concurrent update", errs.ErrStateConflict, operation)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s interrupted: %v", errs.ErrDatabaseConnection, operation, err)
	default:
		return fmt.Errorf("%w: %s failed: %v", errs.ErrDatabaseConnection, operation, err)
	}
}
