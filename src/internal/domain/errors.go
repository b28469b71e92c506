package domain

import (
	"errors"
	"strings"
)

var ErrRecordNotFound = errors.New("Record not found")
var ErrValidation = errors.New("Validation failed")
var ErrConflict = errors.New("Conflict")
var ErrUnavailable = errors.New("Service unavailable")

// ValidationError carries one message per offending field. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Fields []string
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
