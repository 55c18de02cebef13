// Package common provides the execution core shared by all entity services:
// the closed operation result union, the domain fault vocabulary, and the
// operation runner that maps persistence faults onto results.
package common

import "maps"

// ResultKind identifies the populated variant of a Result.
type ResultKind int

const (
	// KindSuccess carries the operation's value.
	KindSuccess ResultKind = iota

	// KindNotFound reports that the requested entity does not exist.
	KindNotFound

	// KindValidationError carries per-field validation messages.
	KindValidationError

	// KindBusinessError reports a domain-rule violation with a stable code.
	KindBusinessError

	// KindSystemError wraps a failure below the business layer.
	KindSystemError
)

// String returns the string representation of the result kind.
func (k ResultKind) String() string {
	switch k {
	case KindSuccess:
		return "SUCCESS"
	case KindNotFound:
		return "NOT_FOUND"
	case KindValidationError:
		return "VALIDATION_ERROR"
	case KindBusinessError:
		return "BUSINESS_ERROR"
	case KindSystemError:
		return "SYSTEM_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Result represents the outcome of an entity operation as a closed union
// of five variants. Exactly one variant is populated per instance;
// construction goes through the variant constructors so mixed states
// cannot exist.
type Result[T any] struct {
	kind        ResultKind
	value       T
	message     string
	code        string
	fieldErrors map[string]string
	cause       error
}

// Success wraps a value in a successful result.
func Success[T any](value T) Result[T] {
	return Result[T]{kind: KindSuccess, value: value}
}

// NotFound creates a result reporting a missing entity.
func NotFound[T any](message string) Result[T] {
	return Result[T]{kind: KindNotFound, message: message}
}

// ValidationError creates a result carrying per-field validation messages.
// The mapping is copied so later mutation of the argument cannot leak in.
func ValidationError[T any](fieldErrors map[string]string) Result[T] {
	return Result[T]{kind: KindValidationError, fieldErrors: maps.Clone(fieldErrors)}
}

// BusinessError creates a result reporting a domain-rule violation.
func BusinessError[T any](message, code string) Result[T] {
	return Result[T]{kind: KindBusinessError, message: message, code: code}
}

// SystemError creates a result wrapping an infrastructure failure.
func SystemError[T any](cause error) Result[T] {
	return Result[T]{kind: KindSystemError, cause: cause}
}

// Kind returns the populated variant.
func (r Result[T]) Kind() ResultKind {
	return r.kind
}

// IsSuccess returns true if the result carries a value.
func (r Result[T]) IsSuccess() bool {
	return r.kind == KindSuccess
}

// IsError returns true for any non-success variant.
func (r Result[T]) IsError() bool {
	return r.kind != KindSuccess
}

// Value returns the success value.
// Should only be called after checking IsSuccess().
func (r Result[T]) Value() T {
	return r.value
}

// Message returns the NotFound or BusinessError message.
func (r Result[T]) Message() string {
	return r.message
}

// Code returns the BusinessError code.
func (r Result[T]) Code() string {
	return r.code
}

// FieldErrors returns the ValidationError field mapping.
func (r Result[T]) FieldErrors() map[string]string {
	return r.fieldErrors
}

// Cause returns the SystemError cause, nil for other variants.
func (r Result[T]) Cause() error {
	return r.cause
}

// Fold reduces a result to a single value with one handler per variant.
// Requiring all five handlers keeps call sites exhaustive when the
// variant set changes.
func Fold[T, U any](
	r Result[T],
	onSuccess func(value T) U,
	onNotFound func(message string) U,
	onValidationError func(fieldErrors map[string]string) U,
	onBusinessError func(message, code string) U,
	onSystemError func(cause error) U,
) U {
	switch r.kind {
	case KindSuccess:
		return onSuccess(r.value)
	case KindNotFound:
		return onNotFound(r.message)
	case KindValidationError:
		return onValidationError(r.fieldErrors)
	case KindBusinessError:
		return onBusinessError(r.message, r.code)
	default:
		return onSystemError(r.cause)
	}
}

// Map transforms a successful result's value using the provided function.
// Any other variant is carried over unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.kind == KindSuccess {
		return Success(fn(r.value))
	}
	return carry[T, U](r)
}

// FlatMap chains result-returning operations.
// If the result is not a success, it is carried over unchanged.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.kind == KindSuccess {
		return fn(r.value)
	}
	return carry[T, U](r)
}

// carry rewraps a non-success result for a different value type.
func carry[T, U any](r Result[T]) Result[U] {
	return Result[U]{
		kind:        r.kind,
		message:     r.message,
		code:        r.code,
		fieldErrors: r.fieldErrors,
		cause:       r.cause,
	}
}

// OrElse returns the success value or the provided default.
func (r Result[T]) OrElse(defaultValue T) T {
	if r.kind == KindSuccess {
		return r.value
	}
	return defaultValue
}

// Equal reports structural equality: same variant, equal payloads.
// System causes compare by identity or message.
func Equal[T comparable](a, b Result[T]) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindSuccess:
		return a.value == b.value
	case KindNotFound:
		return a.message == b.message
	case KindValidationError:
		return maps.Equal(a.fieldErrors, b.fieldErrors)
	case KindBusinessError:
		return a.message == b.message && a.code == b.code
	default:
		return equalCause(a.cause, b.cause)
	}
}

func equalCause(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || a.Error() == b.Error()
}
