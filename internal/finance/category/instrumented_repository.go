package category

import (
	"context"

	"go.ledgerline.dev/internal/common/repository"
)

const tableName = "categories"

// instrumentedRepository wraps a Repository with metrics and logging
type instrumentedRepository struct {
	inner Repository
}

func newInstrumentedRepository(inner Repository) Repository {
	return &instrumentedRepository{inner: inner}
}

func (r *instrumentedRepository) Insert(ctx context.Context, c *Category) (*Category, error) {
	return repository.Instrument(ctx, tableName, "Insert", func() (*Category, error) {
		return r.inner.Insert(ctx, c)
	})
}

func (r *instrumentedRepository) FindByName(ctx context.Context, name string) (*Category, error) {
	return repository.Instrument(ctx, tableName, "FindByName", func() (*Category, error) {
		return r.inner.FindByName(ctx, name)
	})
}

func (r *instrumentedRepository) FindAll(ctx context.Context) ([]*Category, error) {
	return repository.Instrument(ctx, tableName, "FindAll", func() ([]*Category, error) {
		return r.inner.FindAll(ctx)
	})
}

func (r *instrumentedRepository) FindActive(ctx context.Context) ([]*Category, error) {
	return repository.Instrument(ctx, tableName, "FindActive", func() ([]*Category, error) {
		return r.inner.FindActive(ctx)
	})
}

func (r *instrumentedRepository) Update(ctx context.Context, c *Category) (*Category, error) {
	return repository.Instrument(ctx, tableName, "Update", func() (*Category, error) {
		return r.inner.Update(ctx, c)
	})
}

func (r *instrumentedRepository) Delete(ctx context.Context, name string) error {
	return repository.InstrumentVoid(ctx, tableName, "Delete", func() error {
		return r.inner.Delete(ctx, name)
	})
}
