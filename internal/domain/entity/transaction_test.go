package entity

import (
	"strings"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/remittance-backoffice/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func newCashier() *User {
	return &User{ID: "cashier-1", Name: "Awa Diallo", Role: RoleCashier, Agency: "Douala", Active: true}
}

func newExecutor() *User {
	return &User{ID: "executor-1", Name: "Paul Mbarga", Role: RoleExecutor, Active: true}
}

func newPending(t *testing.T) *Transaction {
	t.Helper()
	mockTime := coremocks.NewFixedTimeProvider(t, fixedTime)
	tx, err := NewTransaction(NewTransactionParams{
		Type:        string(TypeTransfer),
		Amount:      1_000_000,
		Currency:    "xaf",
		Description: " transfer to Paris ",
	}, newCashier(), mockTime)
	require.NoError(t, err)
	return tx
}

func TestNewTransaction(t *testing.T) {
	mockTime := coremocks.NewFixedTimeProvider(t, fixedTime)

	t.Run("Valid transaction creation", func(t *testing.T) {
		tx, err := NewTransaction(NewTransactionParams{
			Type:     string(TypeTransfer),
			Amount:   1_000_000,
			Currency: "xaf",
			Details:  map[string]any{"beneficiary": "Jean"},
		}, newCashier(), mockTime)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(tx.ID, "TRX-20240314093000-"))
		assert.Len(t, tx.ID, len("TRX-20240314093000-")+8)
		assert.Equal(t, StatusPending, tx.Status)
		assert.Equal(t, "XAF", tx.Currency)
		assert.Equal(t, "Awa Diallo", tx.CreatedBy)
		assert.Equal(t, "cashier-1", tx.CreatedByID)
		assert.Equal(t, "Douala", tx.Agency)
		assert.Equal(t, fixedTime, tx.CreatedAt)
		assert.Nil(t, tx.RealAmountEUR)
		assert.Nil(t, tx.CommissionAmount)
		assert.Nil(t, tx.ExecutorID)
		assert.Equal(t, "Jean", tx.Details["beneficiary"])
	})

	t.Run("Invalid type", func(t *testing.T) {
		tx, err := NewTransaction(NewTransactionParams{Type: "loan", Amount: 10, Currency: "EUR"}, newCashier(), mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidTransactionType)
		assert.Nil(t, tx)
	})

	t.Run("Zero amount", func(t *testing.T) {
		tx, err := NewTransaction(NewTransactionParams{Type: "transfer", Amount: 0, Currency: "EUR"}, newCashier(), mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.Nil(t, tx)
	})

	t.Run("Negative amount", func(t *testing.T) {
		_, err := NewTransaction(NewTransactionParams{Type: "transfer", Amount: -5, Currency: "EUR"}, newCashier(), mockTime)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Invalid currency", func(t *testing.T) {
		_, err := NewTransaction(NewTransactionParams{Type: "exchange", Amount: 5, Currency: "EURO"}, newCashier(), mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidCurrency)
	})
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]TransactionStatus{
		{StatusPending, StatusValidated},
		{StatusPending, StatusRejected},
		{StatusValidated, StatusExecuted},
		{StatusExecuted, StatusCompleted},
		{StatusCompleted, StatusPendingDelete},
	}
	for _, pair := range allowed {
		assert.True(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	refused := [][2]TransactionStatus{
		{StatusPending, StatusExecuted},
		{StatusPending, StatusCompleted},
		{StatusValidated, StatusCompleted},
		{StatusRejected, StatusValidated},
		{StatusExecuted, StatusValidated},
		{StatusPendingDelete, StatusCompleted},
		{StatusCompleted, StatusPending},
	}
	for _, pair := range refused {
		assert.False(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}
}

func TestApplyEvaluation(t *testing.T) {
	mockTime := coremocks.NewFixedTimeProvider(t, fixedTime)

	t.Run("Validated", func(t *testing.T) {
		tx := newPending(t)
		require.NoError(t, tx.ApplyEvaluation(1500, 25_000, true, "", mockTime))
		assert.Equal(t, StatusValidated, tx.Status)
		assert.Equal(t, int64(1500), *tx.RealAmountEUR)
		assert.Equal(t, int64(25_000), *tx.CommissionAmount)
		assert.Nil(t, tx.RejectionReason)
	})

	t.Run("Rejected", func(t *testing.T) {
		tx := newPending(t)
		require.NoError(t, tx.ApplyEvaluation(1590, 0, false, "commission too low", mockTime))
		assert.Equal(t, StatusRejected, tx.Status)
		require.NotNil(t, tx.RejectionReason)
		assert.Equal(t, "commission too low", *tx.RejectionReason)
	})

	t.Run("Second submission conflicts and keeps the first values", func(t *testing.T) {
		tx := newPending(t)
		require.NoError(t, tx.ApplyEvaluation(1500, 25_000, true, "", mockTime))

		err := tx.ApplyEvaluation(1000, 99, true, "", mockTime)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, int64(1500), *tx.RealAmountEUR)
		assert.Equal(t, int64(25_000), *tx.CommissionAmount)
	})

	t.Run("Non positive real amount", func(t *testing.T) {
		tx := newPending(t)
		err := tx.ApplyEvaluation(0, 0, false, "", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidRealAmount)
		assert.Equal(t, StatusPending, tx.Status)
		assert.Nil(t, tx.RealAmountEUR)
	})
}

func TestExecutionAndClosing(t *testing.T) {
	mockTime := coremocks.NewFixedTimeProvider(t, fixedTime)
	validated := func(t *testing.T) *Transaction {
		tx := newPending(t)
		require.NoError(t, tx.ApplyEvaluation(1500, 25_000, true, "", mockTime))
		require.NoError(t, tx.AssignExecutor("executor-1"))
		return tx
	}

	t.Run("Executor cannot be assigned twice", func(t *testing.T) {
		tx := validated(t)
		err := tx.AssignExecutor("executor-2")
		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, "executor-1", *tx.ExecutorID)
	})

	t.Run("Executor cannot be assigned on pending", func(t *testing.T) {
		tx := newPending(t)
		assert.ErrorIs(t, tx.AssignExecutor("executor-1"), errs.ErrStateConflict)
		assert.Nil(t, tx.ExecutorID)
	})

	t.Run("Other executor is refused", func(t *testing.T) {
		tx := validated(t)
		before := tx.Clone()
		other := &User{ID: "executor-2", Name: "Other", Role: RoleExecutor, Active: true}

		err := tx.MarkExecuted(other, "https://files/receipt.pdf", "", mockTime)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, before, tx)
	})

	t.Run("Receipt is required", func(t *testing.T) {
		tx := validated(t)
		err := tx.MarkExecuted(newExecutor(), "  ", "", mockTime)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, StatusValidated, tx.Status)
	})

	t.Run("Full path to completion", func(t *testing.T) {
		tx := validated(t)
		require.NoError(t, tx.MarkExecuted(newExecutor(), "https://files/receipt.pdf", "paid cash", mockTime))
		assert.Equal(t, StatusExecuted, tx.Status)
		assert.Equal(t, fixedTime, *tx.ExecutedAt)
		assert.Equal(t, "paid cash", *tx.ExecutorComment)

		require.NoError(t, tx.MarkCompleted(newCashier(), mockTime))
		assert.Equal(t, StatusCompleted, tx.Status)
		assert.Equal(t, "executor-1", *tx.ExecutorID)
	})

	t.Run("Close matches creator by name", func(t *testing.T) {
		tx := validated(t)
		require.NoError(t, tx.MarkExecuted(newExecutor(), "r.pdf", "", mockTime))

		sameIDOtherName := &User{ID: "cashier-1", Name: "Someone Else", Role: RoleCashier}
		assert.ErrorIs(t, tx.MarkCompleted(sameIDOtherName, mockTime), errs.ErrForbidden)

		sameNameOtherID := &User{ID: "cashier-9", Name: "Awa Diallo", Role: RoleCashier}
		assert.NoError(t, tx.MarkCompleted(sameNameOtherID, mockTime))
	})

	t.Run("Close on validated conflicts", func(t *testing.T) {
		tx := validated(t)
		assert.ErrorIs(t, tx.MarkCompleted(newCashier(), mockTime), errs.ErrStateConflict)
	})
}

func TestDeleteFlow(t *testing.T) {
	mockTime := coremocks.NewFixedTimeProvider(t, fixedTime)
	completed := func(t *testing.T) *Transaction {
		tx := newPending(t)
		require.NoError(t, tx.ApplyEvaluation(1500, 25_000, true, "", mockTime))
		require.NoError(t, tx.AssignExecutor("executor-1"))
		require.NoError(t, tx.MarkExecuted(newExecutor(), "r.pdf", "", mockTime))
		require.NoError(t, tx.MarkCompleted(newCashier(), mockTime))
		return tx
	}
	accountant := &User{ID: "acc-1", Name: "Comptable", Role: RoleAccounting, Active: true}

	t.Run("Request then approve", func(t *testing.T) {
		tx := completed(t)
		require.NoError(t, tx.MarkPendingDelete(newCashier(), mockTime))
		assert.Equal(t, StatusPendingDelete, tx.Status)

		require.NoError(t, tx.MarkDeleteValidated(accountant, mockTime))
		assert.Equal(t, "Comptable", *tx.DeleteValidatedBy)
		assert.Equal(t, fixedTime, *tx.DeleteValidatedAt)
	})

	t.Run("Second approval conflicts", func(t *testing.T) {
		tx := completed(t)
		require.NoError(t, tx.MarkPendingDelete(newCashier(), mockTime))
		require.NoError(t, tx.MarkDeleteValidated(accountant, mockTime))

		err := tx.MarkDeleteValidated(accountant, mockTime)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("Approve without request leaves record unchanged", func(t *testing.T) {
		tx := completed(t)
		before := tx.Clone()

		err := tx.MarkDeleteValidated(accountant, mockTime)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, before, tx)
	})

	t.Run("Only creator can request", func(t *testing.T) {
		tx := completed(t)
		err := tx.MarkPendingDelete(accountant, mockTime)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, StatusCompleted, tx.Status)
	})

	t.Run("Request on executed conflicts", func(t *testing.T) {
		tx := newPending(t)
		assert.ErrorIs(t, tx.MarkPendingDelete(newCashier(), mockTime), errs.ErrStateConflict)
	})
}

func TestClone(t *testing.T) {
	tx := newPending(t)
	tx.Details = map[string]any{"k": "v"}
	c := tx.Clone()
	c.Details["k"] = "changed"
	c.Status = StatusRejected

	assert.Equal(t, "v", tx.Details["k"])
	assert.Equal(t, StatusPending, tx.Status)
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus("pending_delete"))
	assert.False(t, IsValidStatus("deleted"))
	assert.False(t, IsValidStatus(""))
}

func TestRequireStatus(t *testing.T) {
	tx := newPending(t)
	assert.NoError(t, tx.RequireStatus("submit real amount", StatusPending))

	err := tx.RequireStatus("close", StatusExecuted)
	assert.ErrorIs(t, err, errs.ErrStateConflict)
	assert.Contains(t, err.Error(), "status is pending, requires executed")
}
