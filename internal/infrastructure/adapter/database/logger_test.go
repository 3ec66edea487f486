package database

import (
	"context"
	"errors"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	coremocks "github.com/amirhossein-jamali/remittance-backoffice/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func statement(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormLogger_Trace(t *testing.T) {
	begin := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Failure is logged as error", func(t *testing.T) {
		sink := coremocks.NewMockLogger(t)
		tp := coremocks.NewMockTimeProvider(t)
		tp.On("Since", begin).Return(coreport.Duration(5 * time.Millisecond)).Once()
		sink.On("Error", "SQL Error", mock.MatchedBy(func(f map[string]any) bool {
			return f["table"] == "transactions" && f["type"] == "UPDATE" && f["error"] == "boom"
		})).Once()

		l := NewGormLogger(sink, "info", 200*time.Millisecond, tp)
		l.Trace(context.Background(), begin, statement(`UPDATE "transactions" SET "status"='executed'`), errors.New("boom"))
	})

	t.Run("Slow query is a warning", func(t *testing.T) {
		sink := coremocks.NewMockLogger(t)
		tp := coremocks.NewMockTimeProvider(t)
		tp.On("Since", begin).Return(coreport.Duration(time.Second)).Once()
		sink.On("Warn", "Slow SQL Query", mock.MatchedBy(func(f map[string]any) bool {
			return f["table"] == "users" && f["type"] == "SELECT"
		})).Once()

		l := NewGormLogger(sink, "warn", 200*time.Millisecond, tp)
		l.Trace(context.Background(), begin, statement(`SELECT * FROM "users" WHERE id = $1`), nil)
	})

	t.Run("Not found is quiet", func(t *testing.T) {
		sink := coremocks.NewMockLogger(t)
		tp := coremocks.NewMockTimeProvider(t)
		tp.On("Since", begin).Return(coreport.Duration(time.Millisecond)).Once()

		l := NewGormLogger(sink, "warn", 200*time.Millisecond, tp)
		l.Trace(context.Background(), begin, statement(`SELECT * FROM "users"`), gorm.ErrRecordNotFound)
	})

	t.Run("Debug traces every statement", func(t *testing.T) {
		sink := coremocks.NewMockLogger(t)
		tp := coremocks.NewMockTimeProvider(t)
		tp.On("Since", begin).Return(coreport.Duration(time.Millisecond)).Once()
		sink.On("Debug", "SQL Query", mock.Anything).Once()

		l := NewGormLogger(sink, "debug", 200*time.Millisecond, tp)
		l.Trace(context.Background(), begin, statement(`INSERT INTO "transaction_events" ("id") VALUES ($1)`), nil)
	})

	t.Run("Silent", func(t *testing.T) {
		l := NewGormLogger(coremocks.NewMockLogger(t), "silent", 0, nil)
		l.Trace(context.Background(), begin, statement("SELECT 1"), errors.New("ignored"))
	})
}

func TestExtractTableName(t *testing.T) {
	assert.Equal(t, "transactions", extractTableName(`SELECT * FROM "transactions" WHERE id = $1`))
	assert.Equal(t, "users", extractTableName(`INSERT INTO "users" ("id") VALUES ($1)`))
	assert.Equal(t, "transactions", extractTableName(`UPDATE "transactions" SET "status"=$1`))
	assert.Equal(t, "", extractTableName("BEGIN"))
}
