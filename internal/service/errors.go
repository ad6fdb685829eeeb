package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnprocessable is returned when input has the right shape but the wrong type.
	ErrUnprocessable = errors.New("unprocessable value")
	// ErrConflict is returned when the string already exists.
	ErrConflict = errors.New("string already exists")
	// ErrNotFound is returned when a requested string is not found.
	ErrNotFound = errors.New("string not found")
	// ErrParseFailure is returned when a natural-language query cannot be interpreted.
	ErrParseFailure = errors.New("unable to parse natural language query")
	// ErrParseConflict is returned when a natural-language query contradicts itself.
	ErrParseConflict = errors.New("query parsed but resulted in conflicting filters")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
