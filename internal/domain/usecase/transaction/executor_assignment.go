package transaction

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
)

// ErrNoExecutorAvailable is returned when the directory holds no active executor
var ErrNoExecutorAvailable = errors.New("no active executor available")

// ExecutorAssigner binds validated transactions to an executor from the user directory.
// users must be the uncached store so a deactivated executor is never picked.
type ExecutorAssigner struct {
	users  persistence.UserRepository
	logger coreport.Logger
}

// NewExecutorAssigner creates a new ExecutorAssigner
func NewExecutorAssigner(users persistence.UserRepository, logger coreport.Logger) *ExecutorAssigner {
	return &ExecutorAssigner{users: users, logger: logger}
}

// Assign binds the first active executor, ordered by name then id, to txn.
// A failure leaves txn without executor; the caller still commits the validation.
func (a *ExecutorAssigner) Assign(ctx context.Context, txn *entity.Transaction) error {
	candidates, err := a.users.ListByRole(ctx, entity.RoleExecutor, true)
	if err != nil {
		a.logger.Warn("Executor lookup failed, transaction left unassigned", map[string]any{
			"transaction_id": txn.ID,
			"error":          err.Error(),
		})
		return fmt.Errorf("executor lookup: %w", err)
	}

	candidates = slices.DeleteFunc(slices.Clone(candidates), func(u *entity.User) bool {
		return !u.IsExecutor()
	})
	if len(candidates) == 0 {
		a.logger.Warn("No executor available, transaction left unassigned", map[string]any{
			"transaction_id": txn.ID,
		})
		return ErrNoExecutorAvailable
	}

	slices.SortFunc(candidates, func(x, y *entity.User) int {
		return cmp.Or(cmp.Compare(x.Name, y.Name), cmp.Compare(x.ID, y.ID))
	})
	executor := candidates[0]

	if err := txn.AssignExecutor(executor.ID); err != nil {
		return err
	}

	a.logger.Info("Executor assigned", map[string]any{
		"transaction_id": txn.ID,
		"executor_id":    executor.ID,
	})
	return nil
}
