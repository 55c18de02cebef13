package parameter

import (
	"context"

	"go.ledgerline.dev/internal/common/repository"
)

const tableName = "parameters"

// instrumentedRepository wraps a Repository with metrics and logging
type instrumentedRepository struct {
	inner Repository
}

func newInstrumentedRepository(inner Repository) Repository {
	return &instrumentedRepository{inner: inner}
}

func (r *instrumentedRepository) Insert(ctx context.Context, p *Parameter) (*Parameter, error) {
	return repository.Instrument(ctx, tableName, "Insert", func() (*Parameter, error) {
		return r.inner.Insert(ctx, p)
	})
}

func (r *instrumentedRepository) FindByName(ctx context.Context, name string) (*Parameter, error) {
	return repository.Instrument(ctx, tableName, "FindByName", func() (*Parameter, error) {
		return r.inner.FindByName(ctx, name)
	})
}

func (r *instrumentedRepository) FindAll(ctx context.Context) ([]*Parameter, error) {
	return repository.Instrument(ctx, tableName, "FindAll", func() ([]*Parameter, error) {
		return r.inner.FindAll(ctx)
	})
}

func (r *instrumentedRepository) Update(ctx context.Context, p *Parameter) (*Parameter, error) {
	return repository.Instrument(ctx, tableName, "Update", func() (*Parameter, error) {
		return r.inner.Update(ctx, p)
	})
}

func (r *instrumentedRepository) Delete(ctx context.Context, name string) error {
	return repository.InstrumentVoid(ctx, tableName, "Delete", func() error {
		return r.inner.Delete(ctx, name)
	})
}
