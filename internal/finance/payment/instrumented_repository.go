package payment

import (
	"context"

	"go.ledgerline.dev/internal/common/repository"
)

const tableName = "payments"

// instrumentedRepository wraps a Repository with metrics and logging
type instrumentedRepository struct {
	inner Repository
}

func newInstrumentedRepository(inner Repository) Repository {
	return &instrumentedRepository{inner: inner}
}

func (r *instrumentedRepository) Insert(ctx context.Context, p *Payment) (*Payment, error) {
	return repository.Instrument(ctx, tableName, "Insert", func() (*Payment, error) {
		return r.inner.Insert(ctx, p)
	})
}

func (r *instrumentedRepository) FindByID(ctx context.Context, id int64) (*Payment, error) {
	return repository.Instrument(ctx, tableName, "FindByID", func() (*Payment, error) {
		return r.inner.FindByID(ctx, id)
	})
}

func (r *instrumentedRepository) FindAll(ctx context.Context) ([]*Payment, error) {
	return repository.Instrument(ctx, tableName, "FindAll", func() ([]*Payment, error) {
		return r.inner.FindAll(ctx)
	})
}

func (r *instrumentedRepository) Update(ctx context.Context, p *Payment) (*Payment, error) {
	return repository.Instrument(ctx, tableName, "Update", func() (*Payment, error) {
		return r.inner.Update(ctx, p)
	})
}

func (r *instrumentedRepository) Delete(ctx context.Context, id int64) error {
	return repository.InstrumentVoid(ctx, tableName, "Delete", func() error {
		return r.inner.Delete(ctx, id)
	})
}
