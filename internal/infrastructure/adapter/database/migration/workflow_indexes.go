package migration

import (
	"context"

	"gorm.io/gorm"
)

// workflowIndexes serve the queues of the back-office screens: pending work per agency,
// validated work per executor and the newest-first listing.
var workflowIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_transactions_status_agency
		ON transactions (status, agency, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_executor_open
		ON transactions (executor_id, created_at DESC)
		WHERE status = 'validated'`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_pending_delete
		ON transactions (updated_at)
		WHERE status = 'pending_delete'`,
	`CREATE INDEX IF NOT EXISTS idx_users_role_active
		ON users (role, name, id)
		WHERE active`,
}

// auditIndexes serve the per-transaction history, which outlives the transaction row
var auditIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_transaction_events_trail
		ON transaction_events (transaction_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_transaction_events_actor
		ON transaction_events (actor_id, created_at DESC)`,
}

func createWorkflowIndexes(ctx context.Context, db *gorm.DB) error {
	return execAll(ctx, db, workflowIndexes)
}

func createAuditIndexes(ctx context.Context, db *gorm.DB) error {
	return execAll(ctx, db, auditIndexes)
}

func execAll(ctx context.Context, db *gorm.DB, statements []string) error {
	for _, stmt := range statements {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
