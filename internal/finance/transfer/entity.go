// Package transfer manages movements between two owned accounts, such as
// funding savings from checking. Like payments, each transfer stores the
// guids linking it to its pair of ledger transactions.
package transfer

import (
	"regexp"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/finance/common"
)

var accountNamePattern = regexp.MustCompile(`^[a-z0-9-]+_[a-z0-9]+$`)

// Transfer records a movement between two owned accounts
type Transfer struct {
	TransferID         int64
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

// Validate checks field-level constraints.
func (t *Transfer) Validate() *repository.ConstraintViolation {
	v := &repository.ConstraintViolation{}

	if t.SourceAccount == "" {
		v.Add("sourceAccount", "Source account is required")
	} else if !accountNamePattern.MatchString(t.SourceAccount) {
		v.Add("sourceAccount", "Source account must be owner-qualified lowercase")
	}

	if t.DestinationAccount == "" {
		v.Add("destinationAccount", "Destination account is required")
	} else if !accountNamePattern.MatchString(t.DestinationAccount) {
		v.Add("destinationAccount", "Destination account must be owner-qualified lowercase")
	} else if t.DestinationAccount == t.SourceAccount {
		v.Add("destinationAccount", "Destination account must differ from the source account")
	}

	if t.TransactionDate.IsZero() {
		v.Add("transactionDate", "Transaction date is required")
	}

	if t.Amount <= 0 {
		v.Add("amount", "Amount must be positive")
	}

	if len(v.Violations) == 0 {
		return nil
	}
	return v
}
