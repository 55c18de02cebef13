// Package account manages the financial accounts that own ledger
// transactions: their identity, activity flag, and running totals per
// transaction state.
package account

import (
	"regexp"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/finance/common"
)

// AccountType identifies which side of the ledger an account sits on
type AccountType string

const (
	AccountTypeCredit    AccountType = "credit"
	AccountTypeDebit     AccountType = "debit"
	AccountTypeUndefined AccountType = "undefined"
)

// Name format: owner-qualified lowercase, e.g. "checking_alice"
var accountNamePattern = regexp.MustCompile(`^[a-z0-9-]+_[a-z0-9]+$`)

// Account represents a financial account that owns transactions
type Account struct {
	AccountID        int64
	AccountNameOwner string
	AccountType      AccountType
	Moniker          string
	Active           bool
	Cleared          common.Money
	Outstanding      common.Money
	Future           common.Money
	DateClosed       *time.Time
	DateAdded        time.Time
	DateUpdated      time.Time
}

// Totals aggregates transaction amounts per state across accounts
type Totals struct {
	Cleared     common.Money
	Outstanding common.Money
	Future      common.Money
}

// IsClosed returns true if the account has been closed
func (a *Account) IsClosed() bool {
	return a.DateClosed != nil
}

// Validate checks field-level constraints before the account reaches the store.
func (a *Account) Validate() *repository.ConstraintViolation {
	v := &repository.ConstraintViolation{}

	if a.AccountNameOwner == "" {
		v.Add("accountNameOwner", "Account name owner is required")
	} else if !accountNamePattern.MatchString(a.AccountNameOwner) {
		v.Add("accountNameOwner", "Account name owner must be owner-qualified lowercase, e.g. 'checking_alice'")
	}

	switch a.AccountType {
	case AccountTypeCredit, AccountTypeDebit, AccountTypeUndefined:
	default:
		v.Add("accountType", "Account type must be credit, debit, or undefined")
	}

	if len(a.Moniker) > 4 {
		v.Add("moniker", "Moniker must be at most 4 characters")
	}

	if len(v.Violations) == 0 {
		return nil
	}
	return v
}
