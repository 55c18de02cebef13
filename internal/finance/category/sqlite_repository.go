package category

import (
	"context"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/common/sqlite"
)

// sqliteRepository provides SQLite access to category data
type sqliteRepository struct {
	store *sqlite.Store
}

// NewRepository creates a new category repository with instrumentation
func NewRepository(store *sqlite.Store) Repository {
	return newInstrumentedRepository(&sqliteRepository{store: store})
}

const categoryColumns = `category_id, category_name, active, date_added, date_updated`

func (r *sqliteRepository) Insert(ctx context.Context, c *Category) (*Category, error) {
	now := time.Now().UTC()
	c.DateAdded = now
	c.DateUpdated = now

	result, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO categories (category_name, active, date_added, date_updated)
		VALUES (?, ?, ?, ?)
	`, c.CategoryName, c.Active, now.Unix(), now.Unix())
	if err != nil {
		return nil, sqlite.MapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	c.CategoryID = id
	return c, nil
}

func (r *sqliteRepository) FindByName(ctx context.Context, name string) (*Category, error) {
	row := r.store.DB().QueryRowContext(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE category_name = ?
	`, name)

	c, err := scanCategory(row)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	return c, nil
}

func (r *sqliteRepository) FindAll(ctx context.Context) ([]*Category, error) {
	return r.queryCategories(ctx, `
		SELECT `+categoryColumns+` FROM categories ORDER BY category_name
	`)
}

func (r *sqliteRepository) FindActive(ctx context.Context) ([]*Category, error) {
	return r.queryCategories(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE active = 1 ORDER BY category_name
	`)
}

func (r *sqliteRepository) Update(ctx context.Context, c *Category) (*Category, error) {
	now := time.Now().UTC()

	result, err := r.store.DB().ExecContext(ctx, `
		UPDATE categories SET active = ?, date_updated = ? WHERE category_name = ?
	`, c.Active, now.Unix(), c.CategoryName)
	if err != nil {
		return nil, sqlite.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	c.DateUpdated = now
	return c, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, name string) error {
	result, err := r.store.DB().ExecContext(ctx, `
		DELETE FROM categories WHERE category_name = ?
	`, name)
	if err != nil {
		return sqlite.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return sqlite.MapError(err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) queryCategories(ctx context.Context, query string) ([]*Category, error) {
	rows, err := r.store.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, sqlite.MapError(err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err)
	}
	return categories, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*Category, error) {
	var c Category
	var added, updated int64

	if err := row.Scan(&c.CategoryID, &c.CategoryName, &c.Active, &added, &updated); err != nil {
		return nil, err
	}

	c.DateAdded = time.Unix(added, 0).UTC()
	c.DateUpdated = time.Unix(updated, 0).UTC()
	return &c, nil
}
