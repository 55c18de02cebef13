package transfer

import "context"

// Repository defines the interface for transfer data access.
// All implementations must be wrapped with instrumentation.
type Repository interface {
	Insert(ctx context.Context, t *Transfer) (*Transfer, error)
	FindByID(ctx context.Context, id int64) (*Transfer, error)
	FindAll(ctx context.Context) ([]*Transfer, error)
	Update(ctx context.Context, t *Transfer) (*Transfer, error)
	Delete(ctx context.Context, id int64) error
}
