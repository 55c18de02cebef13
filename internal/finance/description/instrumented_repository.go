package description

import (
	"context"

	"go.ledgerline.dev/internal/common/repository"
)

const tableName = "descriptions"

// instrumentedRepository wraps a Repository with metrics and logging
type instrumentedRepository struct {
	inner Repository
}

func newInstrumentedRepository(inner Repository) Repository {
	return &instrumentedRepository{inner: inner}
}

func (r *instrumentedRepository) Insert(ctx context.Context, d *Description) (*Description, error) {
	return repository.Instrument(ctx, tableName, "Insert", func() (*Description, error) {
		return r.inner.Insert(ctx, d)
	})
}

func (r *instrumentedRepository) FindByName(ctx context.Context, name string) (*Description, error) {
	return repository.Instrument(ctx, tableName, "FindByName", func() (*Description, error) {
		return r.inner.FindByName(ctx, name)
	})
}

func (r *instrumentedRepository) FindAll(ctx context.Context) ([]*Description, error) {
	return repository.Instrument(ctx, tableName, "FindAll", func() ([]*Description, error) {
		return r.inner.FindAll(ctx)
	})
}

func (r *instrumentedRepository) FindActive(ctx context.Context) ([]*Description, error) {
	return repository.Instrument(ctx, tableName, "FindActive", func() ([]*Description, error) {
		return r.inner.FindActive(ctx)
	})
}

func (r *instrumentedRepository) Update(ctx context.Context, d *Description) (*Description, error) {
	return repository.Instrument(ctx, tableName, "Update", func() (*Description, error) {
		return r.inner.Update(ctx, d)
	})
}

func (r *instrumentedRepository) Delete(ctx context.Context, name string) error {
	return repository.InstrumentVoid(ctx, tableName, "Delete", func() error {
		return r.inner.Delete(ctx, name)
	})
}
