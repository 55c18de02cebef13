package repository

import (
	"errors"
	"sort"
	"strings"
)

// Common repository errors
var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateKey indicates a unique constraint violation
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnavailable indicates the store could not be reached or was busy
	ErrUnavailable = errors.New("store unavailable")
)

// ConstraintViolation reports field-level constraint failures, raised by
// the store for check/not-null constraints and by entity validation.
// Violations maps field name to a human-readable message.
type ConstraintViolation struct {
	Violations map[string]string
}

// Error implements the error interface.
func (e *ConstraintViolation) Error() string {
	if len(e.Violations) == 0 {
		return "constraint violation"
	}
	fields := make([]string, 0, len(e.Violations))
	for field := range e.Violations {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "constraint violation on " + strings.Join(fields, ", ")
}

// NewConstraintViolation creates a violation for a single field.
func NewConstraintViolation(field, message string) *ConstraintViolation {
	return &ConstraintViolation{Violations: map[string]string{field: message}}
}

// Add records another field violation and returns the receiver for chaining.
func (e *ConstraintViolation) Add(field, message string) *ConstraintViolation {
	if e.Violations == nil {
		e.Violations = make(map[string]string)
	}
	e.Violations[field] = message
	return e
}
