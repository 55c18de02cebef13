package transfer

import (
	"context"
	"database/sql"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/common/sqlite"
	"go.ledgerline.dev/internal/finance/common"
)

// sqliteRepository provides SQLite access to transfer data
type sqliteRepository struct {
	store *sqlite.Store
}

// NewRepository creates a new transfer repository with instrumentation
func NewRepository(store *sqlite.Store) Repository {
	return newInstrumentedRepository(&sqliteRepository{store: store})
}

const transferColumns = `transfer_id, source_account, destination_account, transaction_date,
	amount, guid_source, guid_destination, active, date_added, date_updated`

func (r *sqliteRepository) Insert(ctx context.Context, t *Transfer) (*Transfer, error) {
	now := time.Now().UTC()
	t.DateAdded = now
	t.DateUpdated = now

	result, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO transfers (source_account, destination_account, transaction_date,
			amount, guid_source, guid_destination, active, date_added, date_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.SourceAccount, t.DestinationAccount, common.FormatDate(t.TransactionDate),
		int64(t.Amount), nullableString(t.GUIDSource), nullableString(t.GUIDDestination),
		t.Active, now.Unix(), now.Unix())
	if err != nil {
		return nil, sqlite.MapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	t.TransferID = id
	return t, nil
}

func (r *sqliteRepository) FindByID(ctx context.Context, id int64) (*Transfer, error) {
	row := r.store.DB().QueryRowContext(ctx, `
		SELECT `+transferColumns+` FROM transfers WHERE transfer_id = ?
	`, id)

	t, err := scanTransfer(row)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	return t, nil
}

func (r *sqliteRepository) FindAll(ctx context.Context) ([]*Transfer, error) {
	rows, err := r.store.DB().QueryContext(ctx, `
		SELECT `+transferColumns+` FROM transfers ORDER BY transaction_date DESC, transfer_id DESC
	`)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	defer rows.Close()

	var transfers []*Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, sqlite.MapError(err)
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err)
	}
	return transfers, nil
}

func (r *sqliteRepository) Update(ctx context.Context, t *Transfer) (*Transfer, error) {
	now := time.Now().UTC()

	result, err := r.store.DB().ExecContext(ctx, `
		UPDATE transfers SET source_account = ?, destination_account = ?,
			transaction_date = ?, amount = ?, active = ?, date_updated = ?
		WHERE transfer_id = ?
	`, t.SourceAccount, t.DestinationAccount, common.FormatDate(t.TransactionDate),
		int64(t.Amount), t.Active, now.Unix(), t.TransferID)
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

	t.DateUpdated = now
	return t, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.store.DB().ExecContext(ctx, `
		DELETE FROM transfers WHERE transfer_id = ?
	`, id)
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

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransfer(row rowScanner) (*Transfer, error) {
	var t Transfer
	var txDate string
	var guidSource, guidDestination sql.NullString
	var added, updated int64

	if err := row.Scan(&t.TransferID, &t.SourceAccount, &t.DestinationAccount, &txDate,
		&t.Amount, &guidSource, &guidDestination, &t.Active, &added, &updated); err != nil {
		return nil, err
	}

	date, err := common.ParseDate(txDate)
	if err != nil {
		return nil, err
	}

	t.TransactionDate = date
	t.GUIDSource = guidSource.String
	t.GUIDDestination = guidDestination.String
	t.DateAdded = time.Unix(added, 0).UTC()
	t.DateUpdated = time.Unix(updated, 0).UTC()
	return &t, nil
}
