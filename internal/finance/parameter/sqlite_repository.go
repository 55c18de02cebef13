package parameter

import (
	"context"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/common/sqlite"
)

// sqliteRepository provides SQLite access to parameter data
type sqliteRepository struct {
	store *sqlite.Store
}

// NewRepository creates a new parameter repository with instrumentation
func NewRepository(store *sqlite.Store) Repository {
	return newInstrumentedRepository(&sqliteRepository{store: store})
}

const parameterColumns = `parameter_id, parameter_name, parameter_value, active, date_added, date_updated`

func (r *sqliteRepository) Insert(ctx context.Context, p *Parameter) (*Parameter, error) {
	now := time.Now().UTC()
	p.DateAdded = now
	p.DateUpdated = now

	result, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO parameters (parameter_name, parameter_value, active, date_added, date_updated)
		VALUES (?, ?, ?, ?, ?)
	`, p.ParameterName, p.ParameterValue, p.Active, now.Unix(), now.Unix())
	if err != nil {
		return nil, sqlite.MapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	p.ParameterID = id
	return p, nil
}

func (r *sqliteRepository) FindByName(ctx context.Context, name string) (*Parameter, error) {
	row := r.store.DB().QueryRowContext(ctx, `
		SELECT `+parameterColumns+` FROM parameters WHERE parameter_name = ?
	`, name)

	var p Parameter
	var added, updated int64
	if err := row.Scan(&p.ParameterID, &p.ParameterName, &p.ParameterValue, &p.Active, &added, &updated); err != nil {
		return nil, sqlite.MapError(err)
	}
	p.DateAdded = time.Unix(added, 0).UTC()
	p.DateUpdated = time.Unix(updated, 0).UTC()
	return &p, nil
}

func (r *sqliteRepository) FindAll(ctx context.Context) ([]*Parameter, error) {
	rows, err := r.store.DB().QueryContext(ctx, `
		SELECT `+parameterColumns+` FROM parameters ORDER BY parameter_name
	`)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	defer rows.Close()

	var parameters []*Parameter
	for rows.Next() {
		var p Parameter
		var added, updated int64
		if err := rows.Scan(&p.ParameterID, &p.ParameterName, &p.ParameterValue, &p.Active, &added, &updated); err != nil {
			return nil, sqlite.MapError(err)
		}
		p.DateAdded = time.Unix(added, 0).UTC()
		p.DateUpdated = time.Unix(updated, 0).UTC()
		parameters = append(parameters, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err)
	}
	return parameters, nil
}

func (r *sqliteRepository) Update(ctx context.Context, p *Parameter) (*Parameter, error) {
	now := time.Now().UTC()

	result, err := r.store.DB().ExecContext(ctx, `
		UPDATE parameters SET parameter_value = ?, active = ?, date_updated = ? WHERE parameter_name = ?
	`, p.ParameterValue, p.Active, now.Unix(), p.ParameterName)
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

	p.DateUpdated = now
	return p, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, name string) error {
	result, err := r.store.DB().ExecContext(ctx, `
		DELETE FROM parameters WHERE parameter_name = ?
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
