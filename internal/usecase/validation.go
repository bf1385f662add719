package usecase

import (
	"errors"

	"github.com/EhteshamRajpot/shop-o-backend/internal/apperror"
	validation "github.com/go-ozzo/ozzo-validation"
)

// validationError converts ozzo errors into a ValidationError whose message
// names every offending field.
func validationError(err error) *apperror.Error {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return apperror.Validation(err.Error(), nil)
	}
	fields := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		fields[field] = fieldErr.Error()
	}
	return apperror.Validation(errs.Error(), fields)
}
