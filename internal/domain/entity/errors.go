package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// FieldErrors collects user-facing validation messages keyed by form field.
// A non-empty FieldErrors is an error that matches ErrValidationFailed.
type FieldErrors map[string]string

// Add records the message for field unless the field already has one.
func (fe FieldErrors) Add(err *ValidationError) {
	if err == nil {
		return
	}
	if _, exists := fe[err.Field]; !exists {
		fe[err.Field] = err.Message
	}
}

// Error lists the failing fields in a stable order.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes FieldErrors match ErrValidationFailed.
func (fe FieldErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// Err returns fe as an error, or nil when no field failed.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
