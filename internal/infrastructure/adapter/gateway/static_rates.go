package gateway

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/gateway"
	"github.com/shopspring/decimal"
)

// StaticRateProvider serves exchange rates loaded from configuration
type StaticRateProvider struct {
	rates map[string]decimal.Decimal
}

var _ gateway.RateProvider = (*StaticRateProvider)(nil)

// NewStaticRateProvider parses rates keyed by ISO currency code.
// Values are decimal strings; every rate must be strictly positive.
func NewStaticRateProvider(raw map[string]string) (*StaticRateProvider, error) {
	rates := make(map[string]decimal.Decimal, len(raw))
	for currency, value := range raw {
		code := strings.ToUpper(strings.TrimSpace(currency))
		rate, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: rate for %s: %v", errs.ErrInvalidRate, code, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("%w: rate for %s must be positive", errs.ErrInvalidRate, code)
		}
		rates[code] = rate
	}
	return &StaticRateProvider{rates: rates}, nil
}

// RateFor returns the configured rate for currency
func (p *StaticRateProvider) RateFor(_ context.Context, currency string) (decimal.Decimal, error) {
	rate, ok := p.rates[strings.ToUpper(currency)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrRateNotFound, currency)
	}
	return rate, nil
}

// Currencies returns the configured currency codes in sorted order
func (p *StaticRateProvider) Currencies() []string {
	return slices.Sorted(maps.Keys(p.rates))
}
