package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider answers the exchange rate used to convert EUR into a settlement currency
type RateProvider interface {
	// RateFor returns how many minor units of currency one EUR minor unit is worth.
	//
	// Possible errors:
	// - ErrRateNotFound: If no rate is configured for currency
	RateFor(ctx context.Context, currency string) (decimal.Decimal, error)
}
