package medicalexpense

import (
	"context"
	"time"

	"go.ledgerline.dev/internal/finance/common"
)

// Repository defines the interface for medical expense data access.
// All implementations must be wrapped with instrumentation.
type Repository interface {
	Insert(ctx context.Context, m *MedicalExpense) (*MedicalExpense, error)
	FindByID(ctx context.Context, id int64) (*MedicalExpense, error)
	FindByTransactionID(ctx context.Context, transactionID int64) (*MedicalExpense, error)
	FindByClaimStatus(ctx context.Context, status ClaimStatus) ([]*MedicalExpense, error)
	FindByServiceDateRange(ctx context.Context, start, end time.Time) ([]*MedicalExpense, error)
	FindOpenClaims(ctx context.Context) ([]*MedicalExpense, error)
	UpdateClaimStatus(ctx context.Context, id int64, status ClaimStatus) (*MedicalExpense, error)
	UpdatePayment(ctx context.Context, id int64, paidDate time.Time, patientResponsibility common.Money) (*MedicalExpense, error)
	Delete(ctx context.Context, id int64) error
}
