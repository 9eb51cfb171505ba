package services

import (
	"errors"
	"fmt"
	"strings"

	"storefront/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validationError turns the first failed rule into a client-facing message.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Validation("Invalid input")
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return apperrors.Validationf("%s is required", field)
	case "gte":
		return apperrors.Validationf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return apperrors.Validationf("%s must be one of: %s", field, fe.Param())
	}
	return apperrors.Validation(fmt.Sprintf("invalid %s", field))
}
