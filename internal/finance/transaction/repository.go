package transaction

import "context"

// Repository defines the interface for transaction data access.
// All implementations must be wrapped with instrumentation.
type Repository interface {
	Insert(ctx context.Context, t *Transaction) (*Transaction, error)
	FindByGUID(ctx context.Context, guid string) (*Transaction, error)
	FindByAccount(ctx context.Context, accountNameOwner string) ([]*Transaction, error)
	Update(ctx context.Context, t *Transaction) (*Transaction, error)
	UpdateState(ctx context.Context, guid string, state TransactionState) (*Transaction, error)
	Delete(ctx context.Context, guid string) error
	Totals(ctx context.Context, accountNameOwner string) (Totals, error)
}
