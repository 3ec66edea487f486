package transaction

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/commission"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/gateway"
)

const actionSubmitRealAmount = "submit real amount"

// SubmitRealAmount evaluates the audited EUR amount of a pending transaction.
// On validation an executor is bound; failing to find one does not fail the call.
func (s *Service) SubmitRealAmount(ctx context.Context, actor *entity.User, id string, realAmountEUR int64) (*entity.Transaction, error) {
	const op = "submit_real_amount"
	if err := s.authorize(actor, permission.ValidateTransactions); err != nil {
		return nil, s.fail(op, actor, id, err)
	}
	if realAmountEUR <= 0 {
		return nil, s.fail(op, actor, id, errs.ErrInvalidRealAmount)
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, s.fail(op, actor, id, err)
	}
	if err := current.RequireStatus(actionSubmitRealAmount, entity.StatusPending); err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	rate, err := s.rates.RateFor(ctx, current.Currency)
	if err != nil {
		return nil, s.fail(op, actor, id, err)
	}
	result, err := commission.Evaluate(commission.Input{
		DeclaredAmount: current.Amount,
		RealAmountEUR:  realAmountEUR,
		Rate:           rate,
		Threshold:      s.cfg.CommissionThreshold,
	})
	if err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	txn := current.Clone()
	if err := txn.ApplyEvaluation(realAmountEUR, result.Commission, result.Validated(), result.Reason, s.timeProvider); err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	var assignErr error
	if result.Validated() {
		assignErr = s.assigner.Assign(ctx, txn)
	}

	action := entity.ActionValidated
	if !result.Validated() {
		action = entity.ActionRejected
	}
	event := entity.NewTransactionEvent(txn, action, entity.StatusPending, txn.Status, actor, result.Reason, txn.UpdatedAt)
	if err := s.persistTransition(ctx, txn, entity.StatusPending, event); err != nil {
		return nil, s.fail(op, actor, id, err)
	}

	s.logger.Info("Real amount submitted", map[string]any{
		"transaction_id":     txn.ID,
		"status":             txn.Status,
		"real_amount_eur":    realAmountEUR,
		"real_in_settlement": result.RealInSettlement,
		"commission":         result.Commission,
		"rate":               rate.String(),
	})

	if !result.Validated() {
		s.notify(ctx, gateway.Notification{
			Event:         gateway.EventTransactionRejected,
			TransactionID: txn.ID,
			RecipientID:   txn.CreatedByID,
			Fields:        map[string]any{"reason": result.Reason},
		})
		return txn, nil
	}

	fields := map[string]any{"commission": result.Commission}
	if txn.ExecutorID != nil {
		fields["executor_id"] = *txn.ExecutorID
	}
	s.notify(ctx, gateway.Notification{
		Event:         gateway.EventTransactionValidated,
		TransactionID: txn.ID,
		RecipientID:   txn.CreatedByID,
		Fields:        fields,
	})
	if assignErr != nil {
		reason := "executor lookup failed"
		if errors.Is(assignErr, ErrNoExecutorAvailable) {
			reason = ErrNoExecutorAvailable.Error()
		}
		s.notify(ctx, gateway.Notification{
			Event:         gateway.EventExecutorUnassigned,
			TransactionID: txn.ID,
			Fields:        map[string]any{"reason": reason},
		})
	}
	return txn, nil
}
