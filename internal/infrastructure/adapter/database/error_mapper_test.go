package database

import (
	"context"
	"errors"
	"testing"

	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorMapper_MapError(t *testing.T) {
	m := NewErrorMapper()

	assert.NoError(t, m.MapError(nil, "commit"))

	conflict := errs.NewStateConflictError("TRX-1", "close", "completed", "executed")
	assert.Same(t, conflict, m.MapError(conflict, "commit"))

	err := m.MapError(&pgconn.PgError{Code: "40001"}, "commit")
	assert.ErrorIs(t, err, errs.ErrStateConflict)

	err = m.MapError(context.DeadlineExceeded, "begin")
	assert.ErrorIs(t, err, errs.ErrDatabaseConnection)

	err = m.MapError(errors.New("driver: bad connection"), "commit")
	assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	assert.Contains(t, err.Error(), "commit failed")
}
