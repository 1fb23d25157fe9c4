// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "habitly/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// EchoValidator wraps a validator instance for echo's c.Validate calls.
type EchoValidator struct {
	validate *validator.Validate
}

// New creates the validator used by every request DTO carrying validate tags.
func New() *EchoValidator {
	return &EchoValidator{validate: validator.New()}
}

// Validate checks the struct's validate tags and converts failures into
// the application's validation error so the boundary returns 400, not 500.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
