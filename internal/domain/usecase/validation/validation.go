// Package validation wraps go-playground/validator so request structs fail with domain validation errors.
package validation

import (
	"errors"
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/go-playground/validator/v10"
)

// fieldErrors pins a field name to the specific validation error it should surface as
var fieldErrors = map[string]error{
	"Amount":   errs.ErrInvalidAmount,
	"Currency": errs.ErrInvalidCurrency,
	"Type":     errs.ErrInvalidTransactionType,
	"Role":     errs.ErrInvalidRole,
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a new validation helper
func NewValidationHelper() *ValidationHelper {
	return &ValidationHelper{
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateStruct validates s against its `validate` tags.
// Failures wrap errs.ErrValidation, or the field's specific error when one exists.
func (vh *ValidationHelper) ValidateStruct(s any) error {
	err := vh.validator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}

	base := errs.ErrValidation
	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if specific, ok := fieldErrors[fe.Field()]; ok && base == errs.ErrValidation {
			base = specific
		}
		details = append(details, fmt.Sprintf("field %s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", base, strings.Join(details, "; "))
}
