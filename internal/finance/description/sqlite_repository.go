package description

import (
	"context"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/common/sqlite"
)

// sqliteRepository provides SQLite access to description data
type sqliteRepository struct {
	store *sqlite.Store
}

// NewRepository creates a new description repository with instrumentation
func NewRepository(store *sqlite.Store) Repository {
	return newInstrumentedRepository(&sqliteRepository{store: store})
}

const descriptionColumns = `description_id, description_name, active, date_added, date_updated`

func (r *sqliteRepository) Insert(ctx context.Context, d *Description) (*Description, error) {
	now := time.Now().UTC()
	d.DateAdded = now
	d.DateUpdated = now

	result, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO descriptions (description_name, active, date_added, date_updated)
		VALUES (?, ?, ?, ?)
	`, d.DescriptionName, d.Active, now.Unix(), now.Unix())
	if err != nil {
		return nil, sqlite.MapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	d.DescriptionID = id
	return d, nil
}

func (r *sqliteRepository) FindByName(ctx context.Context, name string) (*Description, error) {
	row := r.store.DB().QueryRowContext(ctx, `
		SELECT `+descriptionColumns+` FROM descriptions WHERE description_name = ?
	`, name)

	d, err := scanDescription(row)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	return d, nil
}

func (r *sqliteRepository) FindAll(ctx context.Context) ([]*Description, error) {
	return r.queryDescriptions(ctx, `
		SELECT `+descriptionColumns+` FROM descriptions ORDER BY description_name
	`)
}

func (r *sqliteRepository) FindActive(ctx context.Context) ([]*Description, error) {
	return r.queryDescriptions(ctx, `
		SELECT `+descriptionColumns+` FROM descriptions WHERE active = 1 ORDER BY description_name
	`)
}

func (r *sqliteRepository) Update(ctx context.Context, d *Description) (*Description, error) {
	now := time.Now().UTC()

	result, err := r.store.DB().ExecContext(ctx, `
		UPDATE descriptions SET active = ?, date_updated = ? WHERE description_name = ?
	`, d.Active, now.Unix(), d.DescriptionName)
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

	d.DateUpdated = now
	return d, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, name string) error {
	result, err := r.store.DB().ExecContext(ctx, `
		DELETE FROM descriptions WHERE description_name = ?
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

func (r *sqliteRepository) queryDescriptions(ctx context.Context, query string) ([]*Description, error) {
	rows, err := r.store.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	defer rows.Close()

	var descriptions []*Description
	for rows.Next() {
		d, err := scanDescription(rows)
		if err != nil {
			return nil, sqlite.MapError(err)
		}
		descriptions = append(descriptions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err)
	}
	return descriptions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDescription(row rowScanner) (*Description, error) {
	var d Description
	var added, updated int64

	if err := row.Scan(&d.DescriptionID, &d.DescriptionName, &d.Active, &added, &updated); err != nil {
		return nil, err
	}

	d.DateAdded = time.Unix(added, 0).UTC()
	d.DateUpdated = time.Unix(updated, 0).UTC()
	return &d, nil
}
