// Package transaction manages ledger transactions: the dated, categorized
// money movements recorded against an account. Insert and the by-account
// reads are the busiest store paths in the system and route through the
// resilient executor.
package transaction

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/finance/common"
)

// TransactionState tracks where a transaction sits in its clearing
// lifecycle. Account running totals are bucketed per state.
type TransactionState string

const (
	StateCleared     TransactionState = "cleared"
	StateOutstanding TransactionState = "outstanding"
	StateFuture      TransactionState = "future"
)

// IsValid reports whether the state is one of the accepted values.
func (s TransactionState) IsValid() bool {
	switch s {
	case StateCleared, StateOutstanding, StateFuture:
		return true
	}
	return false
}

// TransactionType identifies the direction of the movement
type TransactionType string

const (
	TypeCredit    TransactionType = "credit"
	TypeDebit     TransactionType = "debit"
	TypeTransfer  TransactionType = "transfer"
	TypeUndefined TransactionType = "undefined"
)

// ReoccurringType marks how a transaction repeats
type ReoccurringType string

const (
	ReoccurringOnetime     ReoccurringType = "onetime"
	ReoccurringMonthly     ReoccurringType = "monthly"
	ReoccurringFortnightly ReoccurringType = "fortnightly"
	ReoccurringQuarterly   ReoccurringType = "quarterly"
	ReoccurringAnnually    ReoccurringType = "annually"
	ReoccurringUndefined   ReoccurringType = "undefined"
)

var accountNamePattern = regexp.MustCompile(`^[a-z0-9-]+_[a-z0-9]+$`)

// Transaction is a single money movement against an account
type Transaction struct {
	TransactionID    int64
	GUID             string
	AccountNameOwner string
	TransactionDate  time.Time
	Description      string
	Category         string
	Amount           common.Money
	TransactionState TransactionState
	TransactionType  TransactionType
	ReoccurringType  ReoccurringType
	Notes            string
	Active           bool
	DateAdded        time.Time
	DateUpdated      time.Time
}

// Totals aggregates amounts per state for one account's active
// transactions. Total is the sum across all states.
type Totals struct {
	Total       common.Money
	Cleared     common.Money
	Outstanding common.Money
	Future      common.Money
}

// Validate checks field-level constraints before the transaction reaches
// the store. The guid must already be assigned.
func (t *Transaction) Validate() *repository.ConstraintViolation {
	v := &repository.ConstraintViolation{}

	if t.GUID == "" {
		v.Add("guid", "Guid is required")
	} else if _, err := uuid.Parse(t.GUID); err != nil {
		v.Add("guid", "Guid must be a valid UUID")
	}

	if t.AccountNameOwner == "" {
		v.Add("accountNameOwner", "Account name owner is required")
	} else if !accountNamePattern.MatchString(t.AccountNameOwner) {
		v.Add("accountNameOwner", "Account name owner must be owner-qualified lowercase, e.g. 'checking_alice'")
	}

	if t.TransactionDate.IsZero() {
		v.Add("transactionDate", "Transaction date is required")
	}

	if len(t.Description) > 75 {
		v.Add("description", "Description must be at most 75 characters")
	}

	if len(t.Category) > 50 {
		v.Add("category", "Category must be at most 50 characters")
	}

	if !t.TransactionState.IsValid() {
		v.Add("transactionState", "Transaction state must be cleared, outstanding, or future")
	}

	switch t.TransactionType {
	case TypeCredit, TypeDebit, TypeTransfer, TypeUndefined:
	default:
		v.Add("transactionType", "Transaction type must be credit, debit, transfer, or undefined")
	}

	switch t.ReoccurringType {
	case ReoccurringOnetime, ReoccurringMonthly, ReoccurringFortnightly,
		ReoccurringQuarterly, ReoccurringAnnually, ReoccurringUndefined:
	default:
		v.Add("reoccurringType", "Reoccurring type is not recognized")
	}

	if len(t.Notes) > 100 {
		v.Add("notes", "Notes must be at most 100 characters")
	}

	if len(v.Violations) == 0 {
		return nil
	}
	return v
}
