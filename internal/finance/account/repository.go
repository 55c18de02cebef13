package account

import (
	"context"
	"time"
)

// Repository defines the interface for account data access.
// All implementations must be wrapped with instrumentation.
type Repository interface {
	Insert(ctx context.Context, a *Account) (*Account, error)
	FindByNameOwner(ctx context.Context, nameOwner string) (*Account, error)
	FindActive(ctx context.Context) ([]*Account, error)
	Update(ctx context.Context, a *Account) (*Account, error)
	Delete(ctx context.Context, nameOwner string) error
	Deactivate(ctx context.Context, nameOwner string, closedAt time.Time) (*Account, error)
	Totals(ctx context.Context) (Totals, error)
}
