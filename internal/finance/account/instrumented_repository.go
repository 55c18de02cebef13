package account

import (
	"context"
	"time"

	"go.ledgerline.dev/internal/common/repository"
)

const tableName = "accounts"

// instrumentedRepository wraps a Repository with metrics and logging
type instrumentedRepository struct {
	inner Repository
}

// newInstrumentedRepository creates an instrumented wrapper around a Repository
func newInstrumentedRepository(inner Repository) Repository {
	return &instrumentedRepository{inner: inner}
}

func (r *instrumentedRepository) Insert(ctx context.Context, a *Account) (*Account, error) {
	return repository.Instrument(ctx, tableName, "Insert", func() (*Account, error) {
		return r.inner.Insert(ctx, a)
	})
}

func (r *instrumentedRepository) FindByNameOwner(ctx context.Context, nameOwner string) (*Account, error) {
	return repository.Instrument(ctx, tableName, "FindByNameOwner", func() (*Account, error) {
		return r.inner.FindByNameOwner(ctx, nameOwner)
	})
}

func (r *instrumentedRepository) FindActive(ctx context.Context) ([]*Account, error) {
	return repository.Instrument(ctx, tableName, "FindActive", func() ([]*Account, error) {
		return r.inner.FindActive(ctx)
	})
}

func (r *instrumentedRepository) Update(ctx context.Context, a *Account) (*Account, error) {
	return repository.Instrument(ctx, tableName, "Update", func() (*Account, error) {
		return r.inner.Update(ctx, a)
	})
}

func (r *instrumentedRepository) Delete(ctx context.Context, nameOwner string) error {
	return repository.InstrumentVoid(ctx, tableName, "Delete", func() error {
		return r.inner.Delete(ctx, nameOwner)
	})
}

func (r *instrumentedRepository) Deactivate(ctx context.Context, nameOwner string, closedAt time.Time) (*Account, error) {
	return repository.Instrument(ctx, tableName, "Deactivate", func() (*Account, error) {
		return r.inner.Deactivate(ctx, nameOwner, closedAt)
	})
}

func (r *instrumentedRepository) Totals(ctx context.Context) (Totals, error) {
	return repository.Instrument(ctx, tableName, "Totals", func() (Totals, error) {
		return r.inner.Totals(ctx)
	})
}
