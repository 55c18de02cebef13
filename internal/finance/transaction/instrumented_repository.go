package transaction

import (
	"context"

	"go.ledgerline.dev/internal/common/repository"
)

const tableName = "transactions"

// instrumentedRepository wraps a Repository with metrics and logging
type instrumentedRepository struct {
	inner Repository
}

func newInstrumentedRepository(inner Repository) Repository {
	return &instrumentedRepository{inner: inner}
}

func (r *instrumentedRepository) Insert(ctx context.Context, t *Transaction) (*Transaction, error) {
	return repository.Instrument(ctx, tableName, "Insert", func() (*Transaction, error) {
		return r.inner.Insert(ctx, t)
	})
}

func (r *instrumentedRepository) FindByGUID(ctx context.Context, guid string) (*Transaction, error) {
	return repository.Instrument(ctx, tableName, "FindByGUID", func() (*Transaction, error) {
		return r.inner.FindByGUID(ctx, guid)
	})
}

func (r *instrumentedRepository) FindByAccount(ctx context.Context, accountNameOwner string) ([]*Transaction, error) {
	return repository.Instrument(ctx, tableName, "FindByAccount", func() ([]*Transaction, error) {
		return r.inner.FindByAccount(ctx, accountNameOwner)
	})
}

func (r *instrumentedRepository) Update(ctx context.Context, t *Transaction) (*Transaction, error) {
	return repository.Instrument(ctx, tableName, "Update", func() (*Transaction, error) {
		return r.inner.Update(ctx, t)
	})
}

func (r *instrumentedRepository) UpdateState(ctx context.Context, guid string, state TransactionState) (*Transaction, error) {
	return repository.Instrument(ctx, tableName, "UpdateState", func() (*Transaction, error) {
		return r.inner.UpdateState(ctx, guid, state)
	})
}

func (r *instrumentedRepository) Delete(ctx context.Context, guid string) error {
	return repository.InstrumentVoid(ctx, tableName, "Delete", func() error {
		return r.inner.Delete(ctx, guid)
	})
}

func (r *instrumentedRepository) Totals(ctx context.Context, accountNameOwner string) (Totals, error) {
	return repository.Instrument(ctx, tableName, "Totals", func() (Totals, error) {
		return r.inner.Totals(ctx, accountNameOwner)
	})
}
