package medicalexpense

import (
	"context"
	"fmt"
	"time"

	"go.ledgerline.dev/internal/common/metrics"
	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/finance/common"
	"go.ledgerline.dev/internal/resilience"
)

// Service exposes medical expense operations as classified results.
type Service struct {
	runner   *common.Runner
	repo     Repository
	executor *resilience.Executor
}

// NewService creates a medical expense service. A nil executor leaves the
// store-facing hot paths unprotected (degraded mode).
func NewService(repo Repository, executor *resilience.Executor, sink metrics.Sink) *Service {
	return &Service{
		runner:   common.NewRunner("medical_expense", sink),
		repo:     repo,
		executor: executor,
	}
}

// Insert records a new medical expense. Claims default to submitted.
// Reusing a claim number is a data integrity violation. The store-facing
// work runs through the resilient executor.
func (s *Service) Insert(ctx context.Context, m *MedicalExpense) common.Result[*MedicalExpense] {
	if m.ClaimStatus == "" {
		m.ClaimStatus = ClaimSubmitted
	}

	return common.RunOperation(ctx, s.runner, "insert", m.ClaimNumber, func(ctx context.Context) (*MedicalExpense, error) {
		if v := m.Validate(); v != nil {
			return nil, v
		}
		return resilience.Execute(s.executor, ctx, "medical_expense.insert", 0, func(ctx context.Context) (*MedicalExpense, error) {
			return s.repo.Insert(ctx, m)
		})
	})
}

// SelectByID looks up a medical expense by its identifier
func (s *Service) SelectByID(ctx context.Context, id int64) common.Result[*MedicalExpense] {
	return common.RunOperation(ctx, s.runner, "select_by_id", id, func(ctx context.Context) (*MedicalExpense, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// SelectByTransaction looks up the expense linked to a ledger transaction
func (s *Service) SelectByTransaction(ctx context.Context, transactionID int64) common.Result[*MedicalExpense] {
	return common.RunOperation(ctx, s.runner, "select_by_transaction", transactionID, func(ctx context.Context) (*MedicalExpense, error) {
		return s.repo.FindByTransactionID(ctx, transactionID)
	})
}

// SelectByClaimStatus lists active expenses in one claim status
func (s *Service) SelectByClaimStatus(ctx context.Context, status ClaimStatus) common.Result[[]*MedicalExpense] {
	return common.RunOperation(ctx, s.runner, "select_by_claim_status", status, func(ctx context.Context) ([]*MedicalExpense, error) {
		if !status.IsValid() {
			return nil, repository.NewConstraintViolation("claimStatus", "Claim status is not recognized")
		}
		return s.repo.FindByClaimStatus(ctx, status)
	})
}

// SelectByDateRange lists active expenses with service dates inside the
// inclusive range
func (s *Service) SelectByDateRange(ctx context.Context, start, end time.Time) common.Result[[]*MedicalExpense] {
	return common.RunOperation(ctx, s.runner, "select_by_date_range", nil, func(ctx context.Context) ([]*MedicalExpense, error) {
		if start.IsZero() || end.IsZero() {
			return nil, repository.NewConstraintViolation("serviceDate", "Start and end dates are required")
		}
		if end.Before(start) {
			return nil, repository.NewConstraintViolation("serviceDate", "End date must not precede start date")
		}
		return s.repo.FindByServiceDateRange(ctx, start, end)
	})
}

// SelectOpenClaims lists active expenses still awaiting resolution
func (s *Service) SelectOpenClaims(ctx context.Context) common.Result[[]*MedicalExpense] {
	return common.RunOperation(ctx, s.runner, "select_open_claims", nil, func(ctx context.Context) ([]*MedicalExpense, error) {
		return s.repo.FindOpenClaims(ctx)
	})
}

// UpdateClaimStatus moves a claim to a new status. Re-asserting the
// current status or moving a closed claim is a business rule violation.
func (s *Service) UpdateClaimStatus(ctx context.Context, id int64, status ClaimStatus) common.Result[*MedicalExpense] {
	return common.RunOperation(ctx, s.runner, "update_claim_status", id, func(ctx context.Context) (*MedicalExpense, error) {
		if !status.IsValid() {
			return nil, repository.NewConstraintViolation("claimStatus", "Claim status is not recognized")
		}

		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing.ClaimStatus.IsTerminal() {
			return nil, fmt.Errorf("%w: claim %d is closed", common.ErrInvalidState, id)
		}
		if existing.ClaimStatus == status {
			return nil, fmt.Errorf("%w: claim %d is already %s", common.ErrInvalidState, id, status)
		}
		return s.repo.UpdateClaimStatus(ctx, id, status)
	})
}

// SyncPayment records what the patient actually paid: the paid date and
// the settled patient responsibility.
func (s *Service) SyncPayment(ctx context.Context, id int64, paidDate time.Time, patientResponsibility common.Money) common.Result[*MedicalExpense] {
	return common.RunOperation(ctx, s.runner, "sync_payment", id, func(ctx context.Context) (*MedicalExpense, error) {
		if paidDate.IsZero() {
			return nil, repository.NewConstraintViolation("paidDate", "Paid date is required")
		}
		if patientResponsibility < 0 {
			return nil, repository.NewConstraintViolation("patientResponsibility", "Patient responsibility must not be negative")
		}
		return s.repo.UpdatePayment(ctx, id, paidDate, patientResponsibility)
	})
}

// Delete removes a medical expense
func (s *Service) Delete(ctx context.Context, id int64) common.Result[bool] {
	return common.RunOperation(ctx, s.runner, "delete", id, func(ctx context.Context) (bool, error) {
		if err := s.repo.Delete(ctx, id); err != nil {
			return false, err
		}
		return true, nil
	})
}
