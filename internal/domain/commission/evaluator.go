// Package commission decides whether a transaction is accepted from the spread
// between its declared amount and the audited real amount.
package commission

import (
	"fmt"

	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/shopspring/decimal"
)

// Decision is the outcome of an evaluation
type Decision string

// Decisions
const (
	DecisionValidated Decision = "validated"
	DecisionRejected  Decision = "rejected"
)

// Input carries everything Evaluate needs. Amounts are minor units.
type Input struct {
	DeclaredAmount int64           // in the settlement currency
	RealAmountEUR  int64           // audited real amount in EUR
	Rate           decimal.Decimal // settlement units per EUR unit
	Threshold      int64           // minimum commission for acceptance
}

// Result is the evaluation outcome
type Result struct {
	RealInSettlement int64
	Commission       int64
	Decision         Decision
	Reason           string // set when rejected
}

// Validated reports whether the decision accepts the transaction
func (r Result) Validated() bool {
	return r.Decision == DecisionValidated
}

// Evaluate converts the real amount to the settlement currency (rounded half up),
// derives the commission and applies the threshold.
func Evaluate(in Input) (Result, error) {
	switch {
	case in.DeclaredAmount <= 0:
		return Result{}, errs.ErrInvalidAmount
	case in.RealAmountEUR <= 0:
		return Result{}, errs.ErrInvalidRealAmount
	case !in.Rate.IsPositive():
		return Result{}, errs.ErrInvalidRate
	case in.Threshold < 0:
		return Result{}, fmt.Errorf("%w: threshold cannot be negative", errs.ErrValidation)
	}

	converted := decimal.NewFromInt(in.RealAmountEUR).Mul(in.Rate).Round(0)
	if converted.GreaterThan(decimal.NewFromInt(maxAmount)) {
		return Result{}, fmt.Errorf("%w: converted amount out of range", errs.ErrValidation)
	}
	settled := converted.IntPart()

	commission := max(in.DeclaredAmount-settled, 0)

	res := Result{
		RealInSettlement: settled,
		Commission:       commission,
		Decision:         DecisionValidated,
	}
	if commission < in.Threshold {
		res.Decision = DecisionRejected
		res.Reason = fmt.Sprintf("commission %d is below the minimum of %d", commission, in.Threshold)
	}
	return res, nil
}

const maxAmount = 1<<63 - 1
