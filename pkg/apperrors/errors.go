// Package apperrors defines the sentinel errors shared across services,
// repositories and handlers. Handlers map them to HTTP statuses with
// errors.Is; everything else is treated as an internal failure.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource, or an (id, employee) pair,
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a uniqueness constraint
	// (name/username/email or a composite key) would be violated.
	ErrDuplicate = errors.New("duplicate resource")

	// ErrValidation is returned for missing or invalid input. Wrap it with
	// Validationf so the message names the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrStorage is returned when writing or copying an uploaded file fails.
	ErrStorage = errors.New("storage failure")
)

// Validationf builds a validation error with a field-level message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Duplicatef builds a duplicate-resource error with a descriptive message.
func Duplicatef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDuplicate, fmt.Sprintf(format, args...))
}

// NotFoundf builds a not-found error with a descriptive message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
