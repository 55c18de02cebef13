package transfer

import (
	"context"

	"go.ledgerline.dev/internal/common/repository"
)

const tableName = "transfers"

// instrumentedRepository wraps a Repository with metrics and logging
type instrumentedRepository struct {
	inner Repository
}

func newInstrumentedRepository(inner Repository) Repository {
	return &instrumentedRepository{inner: inner}
}

func (r *instrumentedRepository) Insert(ctx context.Context, t *Transfer) (*Transfer, error) {
	return repository.Instrument(ctx, tableName, "Insert", func() (*Transfer, error) {
		return r.inner.Insert(ctx, t)
	})
}

func (r *instrumentedRepository) FindByID(ctx context.Context, id int64) (*Transfer, error) {
	return repository.Instrument(ctx, tableName, "FindByID", func() (*Transfer, error) {
		return r.inner.FindByID(ctx, id)
	})
}

func (r *instrumentedRepository) FindAll(ctx context.Context) ([]*Transfer, error) {
	return repository.Instrument(ctx, tableName, "FindAll", func() ([]*Transfer, error) {
		return r.inner.FindAll(ctx)
	})
}

func (r *instrumentedRepository) Update(ctx context.Context, t *Transfer) (*Transfer, error) {
	return repository.Instrument(ctx, tableName, "Update", func() (*Transfer, error) {
		return r.inner.Update(ctx, t)
	})
}

func (r *instrumentedRepository) Delete(ctx context.Context, id int64) error {
	return repository.InstrumentVoid(ctx, tableName, "Delete", func() error {
		return r.inner.Delete(ctx, id)
	})
}
