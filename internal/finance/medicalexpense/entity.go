// Package medicalexpense tracks the insurance lifecycle of medical
// spending: what a provider billed, what insurance absorbed, what the
// patient owes, and where the claim stands. Expenses optionally link to
// the ledger transaction that paid them.
package medicalexpense

import (
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/finance/common"
)

// ClaimStatus tracks an insurance claim through its lifecycle
type ClaimStatus string

const (
	ClaimSubmitted  ClaimStatus = "submitted"
	ClaimProcessing ClaimStatus = "processing"
	ClaimApproved   ClaimStatus = "approved"
	ClaimDenied     ClaimStatus = "denied"
	ClaimPaid       ClaimStatus = "paid"
	ClaimClosed     ClaimStatus = "closed"
)

// IsValid reports whether the status is one of the accepted values.
func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimSubmitted, ClaimProcessing, ClaimApproved, ClaimDenied, ClaimPaid, ClaimClosed:
		return true
	}
	return false
}

// IsTerminal reports whether the claim can no longer change status.
func (s ClaimStatus) IsTerminal() bool {
	return s == ClaimClosed
}

// MedicalExpense records one billed medical service and its claim state
type MedicalExpense struct {
	MedicalExpenseID      int64
	TransactionID         *int64
	ProviderID            *int64
	FamilyMemberID        *int64
	ServiceDate           time.Time
	ServiceDescription    string
	ProcedureCode         string
	DiagnosisCode         string
	BilledAmount          common.Money
	InsuranceDiscount     common.Money
	InsurancePaid         common.Money
	PatientResponsibility common.Money
	PaidDate              *time.Time
	IsOutOfNetwork        bool
	ClaimNumber           string
	ClaimStatus           ClaimStatus
	Active                bool
	DateAdded             time.Time
	DateUpdated           time.Time
}

// IsOpen reports whether the claim still awaits resolution.
func (m *MedicalExpense) IsOpen() bool {
	switch m.ClaimStatus {
	case ClaimSubmitted, ClaimProcessing, ClaimApproved:
		return true
	}
	return false
}

// Allocated returns the portion of the billed amount already assigned to
// insurance or the patient.
func (m *MedicalExpense) Allocated() common.Money {
	return m.InsuranceDiscount + m.InsurancePaid + m.PatientResponsibility
}

// Validate checks field-level constraints before the expense reaches the
// store. The allocated amounts may not exceed what was billed.
func (m *MedicalExpense) Validate() *repository.ConstraintViolation {
	v := &repository.ConstraintViolation{}

	if m.ServiceDate.IsZero() {
		v.Add("serviceDate", "Service date is required")
	}

	if m.BilledAmount < 0 {
		v.Add("billedAmount", "Billed amount must not be negative")
	}
	if m.InsuranceDiscount < 0 {
		v.Add("insuranceDiscount", "Insurance discount must not be negative")
	}
	if m.InsurancePaid < 0 {
		v.Add("insurancePaid", "Insurance paid must not be negative")
	}
	if m.PatientResponsibility < 0 {
		v.Add("patientResponsibility", "Patient responsibility must not be negative")
	}

	if m.BilledAmount >= 0 && m.Allocated() > m.BilledAmount {
		v.Add("billedAmount", "Allocated amounts must not exceed the billed amount")
	}

	if !m.ClaimStatus.IsValid() {
		v.Add("claimStatus", "Claim status is not recognized")
	}

	if len(m.ClaimNumber) > 50 {
		v.Add("claimNumber", "Claim number must be at most 50 characters")
	}

	if len(v.Violations) == 0 {
		return nil
	}
	return v
}
