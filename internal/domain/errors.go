// File: internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ValidationError is returned before any network or storage call is attempted.
type ValidationError struct {
	Operation string
	Field     string
	Message   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s (%s): %s", e.Operation, e.Field, e.Message)
	}
	return fmt.Sprintf("validation error in %s: %s", e.Operation, e.Message)
}

func NewValidationError(operation, field, msg string) *ValidationError {
	return &ValidationError{Operation: operation, Field: field, Message: msg}
}

// IsValidationError reports whether err (or anything it wraps) is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
