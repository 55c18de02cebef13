// Package payment manages bill payments: money leaving a source account
// to settle a destination account. Each payment stores the guids linking
// it to the pair of ledger transactions it represents.
package payment

import (
	"regexp"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/finance/common"
)

var accountNamePattern = regexp.MustCompile(`^[a-z0-9-]+_[a-z0-9]+$`)

// Payment records a settlement against a destination account
type Payment struct {
	PaymentID          int64
	SourceAccount      string
	DestinationAccount string
	TransactionDate    time.Time
	Amount             common.Money
	GUIDSource         string
	GUIDDestination    string
	Active             bool
	DateAdded          time.Time
	DateUpdated        time.Time
}

// Validate checks field-level constraints. A payment must move a positive
// amount between two distinct accounts.
func (p *Payment) Validate() *repository.ConstraintViolation {
	v := &repository.ConstraintViolation{}

	if p.SourceAccount == "" {
		v.Add("sourceAccount", "Source account is required")
	} else if !accountNamePattern.MatchString(p.SourceAccount) {
		v.Add("sourceAccount", "Source account must be owner-qualified lowercase")
	}

	if p.DestinationAccount == "" {
		v.Add("destinationAccount", "Destination account is required")
	} else if !accountNamePattern.MatchString(p.DestinationAccount) {
		v.Add("destinationAccount", "Destination account must be owner-qualified lowercase")
	} else if p.DestinationAccount == p.SourceAccount {
		v.Add("destinationAccount", "Destination account must differ from the source account")
	}

	if p.TransactionDate.IsZero() {
		v.Add("transactionDate", "Transaction date is required")
	}

	if p.Amount <= 0 {
		v.Add("amount", "Amount must be positive")
	}

	if len(v.Violations) == 0 {
		return nil
	}
	return v
}
