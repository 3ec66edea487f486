package transaction

import (
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
)

// validateTransactionID checks if the transaction ID is usable as a lookup key
func validateTransactionID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.ErrInvalidTransactionID
	}
	return nil
}

// normalizeFilter checks the filter values and clamps paging to the configured bounds
func (s *Service) normalizeFilter(filter persistence.TransactionFilter) (persistence.TransactionFilter, error) {
	if filter.Status != "" && !entity.IsValidStatus(string(filter.Status)) {
		return filter, fmt.Errorf("%w: unknown status %q", errs.ErrValidation, filter.Status)
	}
	if filter.Type != "" && !entity.IsValidTransactionType(string(filter.Type)) {
		return filter, fmt.Errorf("%w: %s", errs.ErrInvalidTransactionType, filter.Type)
	}
	if filter.Offset < 0 {
		return filter, fmt.Errorf("%w: offset cannot be negative", errs.ErrValidation)
	}

	switch {
	case filter.Limit <= 0:
		filter.Limit = s.cfg.DefaultPageSize
	case filter.Limit > s.cfg.MaxPageSize:
		filter.Limit = s.cfg.MaxPageSize
	}
	return filter, nil
}
