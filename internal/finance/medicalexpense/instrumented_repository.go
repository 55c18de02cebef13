package medicalexpense

import (
	"context"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/finance/common"
)

const tableName = "medical_expenses"

// instrumentedRepository wraps a Repository with metrics and logging
type instrumentedRepository struct {
	inner Repository
}

func newInstrumentedRepository(inner Repository) Repository {
	return &instrumentedRepository{inner: inner}
}

func (r *instrumentedRepository) Insert(ctx context.Context, m *MedicalExpense) (*MedicalExpense, error) {
	return repository.Instrument(ctx, tableName, "Insert", func() (*MedicalExpense, error) {
		return r.inner.Insert(ctx, m)
	})
}

func (r *instrumentedRepository) FindByID(ctx context.Context, id int64) (*MedicalExpense, error) {
	return repository.Instrument(ctx, tableName, "FindByID", func() (*MedicalExpense, error) {
		return r.inner.FindByID(ctx, id)
	})
}

func (r *instrumentedRepository) FindByTransactionID(ctx context.Context, transactionID int64) (*MedicalExpense, error) {
	return repository.Instrument(ctx, tableName, "FindByTransactionID", func() (*MedicalExpense, error) {
		return r.inner.FindByTransactionID(ctx, transactionID)
	})
}

func (r *instrumentedRepository) FindByClaimStatus(ctx context.Context, status ClaimStatus) ([]*MedicalExpense, error) {
	return repository.Instrument(ctx, tableName, "FindByClaimStatus", func() ([]*MedicalExpense, error) {
		return r.inner.FindByClaimStatus(ctx, status)
	})
}

func (r *instrumentedRepository) FindByServiceDateRange(ctx context.Context, start, end time.Time) ([]*MedicalExpense, error) {
	return repository.Instrument(ctx, tableName, "FindByServiceDateRange", func() ([]*MedicalExpense, error) {
		return r.inner.FindByServiceDateRange(ctx, start, end)
	})
}

func (r *instrumentedRepository) FindOpenClaims(ctx context.Context) ([]*MedicalExpense, error) {
	return repository.Instrument(ctx, tableName, "FindOpenClaims", func() ([]*MedicalExpense, error) {
		return r.inner.FindOpenClaims(ctx)
	})
}

func (r *instrumentedRepository) UpdateClaimStatus(ctx context.Context, id int64, status ClaimStatus) (*MedicalExpense, error) {
	return repository.Instrument(ctx, tableName, "UpdateClaimStatus", func() (*MedicalExpense, error) {
		return r.inner.UpdateClaimStatus(ctx, id, status)
	})
}

func (r *instrumentedRepository) UpdatePayment(ctx context.Context, id int64, paidDate time.Time, patientResponsibility common.Money) (*MedicalExpense, error) {
	return repository.Instrument(ctx, tableName, "UpdatePayment", func() (*MedicalExpense, error) {
		return r.inner.UpdatePayment(ctx, id, paidDate, patientResponsibility)
	})
}

func (r *instrumentedRepository) Delete(ctx context.Context, id int64) error {
	return repository.InstrumentVoid(ctx, tableName, "Delete", func() error {
		return r.inner.Delete(ctx, id)
	})
}
