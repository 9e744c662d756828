// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"reflect"
	"strings"

	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator validates bound request bodies.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a validator that reports struct field names by their json tag.
func New() *CustomValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &CustomValidator{validate: validate}
}

// Validate implements echo.Validator. Failures are returned as ErrValidationFailed
// listing every offending field.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.WithStack(err)
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, describe(fieldErr))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(fields, "; "))
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "email":
		return fieldErr.Field() + " must be a valid email"
	default:
		return fieldErr.Field() + " failed " + fieldErr.Tag()
	}
}
