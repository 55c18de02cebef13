package common

import "errors"

// ErrInvalidState marks an operation attempted against an entity whose
// current state forbids it (deactivating an inactive account, closing a
// claim that is already closed). Services wrap it with context:
//
//	fmt.Errorf("account %s already inactive: %w", owner, common.ErrInvalidState)
var ErrInvalidState = errors.New("invalid state for operation")

// Business error codes surfaced in results
const (
	// CodeDataIntegrityViolation marks duplicate-key and referential
	// integrity failures.
	CodeDataIntegrityViolation = "DATA_INTEGRITY_VIOLATION"

	// CodeBusinessLogicError marks precondition failures and recovered
	// panics.
	CodeBusinessLogicError = "BUSINESS_LOGIC_ERROR"
)
