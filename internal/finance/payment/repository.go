package payment

import "context"

// Repository defines the interface for payment data access.
// All implementations must be wrapped with instrumentation.
type Repository interface {
	Insert(ctx context.Context, p *Payment) (*Payment, error)
	FindByID(ctx context.Context, id int64) (*Payment, error)
	FindAll(ctx context.Context) ([]*Payment, error)
	Update(ctx context.Context, p *Payment) (*Payment, error)
	Delete(ctx context.Context, id int64) error
}
