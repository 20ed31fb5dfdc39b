package ast

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("validation error")
	ErrUnsupportedQueryKind = errors.New("unsupported query kind")
	ErrUnsupportedClause    = errors.New("unsupported clause")
)

// ValidationError reports an invalid builder argument.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, reason string, value any) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Reason)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
