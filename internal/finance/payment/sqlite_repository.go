package payment

import (
	"context"
	"database/sql"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/common/sqlite"
	"go.ledgerline.dev/internal/finance/common"
)

// sqliteRepository provides SQLite access to payment data
type sqliteRepository struct {
	store *sqlite.Store
}

// NewRepository creates a new payment repository with instrumentation
func NewRepository(store *sqlite.Store) Repository {
	return newInstrumentedRepository(&sqliteRepository{store: store})
}

const paymentColumns = `payment_id, source_account, destination_account, transaction_date,
	amount, guid_source, guid_destination, active, date_added, date_updated`

func (r *sqliteRepository) Insert(ctx context.Context, p *Payment) (*Payment, error) {
	now := time.Now().UTC()
	p.DateAdded = now
	p.DateUpdated = now

	result, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO payments (source_account, destination_account, transaction_date,
			amount, guid_source, guid_destination, active, date_added, date_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.SourceAccount, p.DestinationAccount, common.FormatDate(p.TransactionDate),
		int64(p.Amount), nullableString(p.GUIDSource), nullableString(p.GUIDDestination),
		p.Active, now.Unix(), now.Unix())
	if err != nil {
		return nil, sqlite.MapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	p.PaymentID = id
	return p, nil
}

func (r *sqliteRepository) FindByID(ctx context.Context, id int64) (*Payment, error) {
	row := r.store.DB().QueryRowContext(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE payment_id = ?
	`, id)

	p, err := scanPayment(row)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	return p, nil
}

func (r *sqliteRepository) FindAll(ctx context.Context) ([]*Payment, error) {
	rows, err := r.store.DB().QueryContext(ctx, `
		SELECT `+paymentColumns+` FROM payments ORDER BY transaction_date DESC, payment_id DESC
	`)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, sqlite.MapError(err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err)
	}
	return payments, nil
}

func (r *sqliteRepository) Update(ctx context.Context, p *Payment) (*Payment, error) {
	now := time.Now().UTC()

	result, err := r.store.DB().ExecContext(ctx, `
		UPDATE payments SET source_account = ?, destination_account = ?,
			transaction_date = ?, amount = ?, active = ?, date_updated = ?
		WHERE payment_id = ?
	`, p.SourceAccount, p.DestinationAccount, common.FormatDate(p.TransactionDate),
		int64(p.Amount), p.Active, now.Unix(), p.PaymentID)
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

func (r *sqliteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.store.DB().ExecContext(ctx, `
		DELETE FROM payments WHERE payment_id = ?
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

func scanPayment(row rowScanner) (*Payment, error) {
	var p Payment
	var txDate string
	var guidSource, guidDestination sql.NullString
	var added, updated int64

	if err := row.Scan(&p.PaymentID, &p.SourceAccount, &p.DestinationAccount, &txDate,
		&p.Amount, &guidSource, &guidDestination, &p.Active, &added, &updated); err != nil {
		return nil, err
	}

	date, err := common.ParseDate(txDate)
	if err != nil {
		return nil, err
	}

	p.TransactionDate = date
	p.GUIDSource = guidSource.String
	p.GUIDDestination = guidDestination.String
	p.DateAdded = time.Unix(added, 0).UTC()
	p.DateUpdated = time.Unix(updated, 0).UTC()
	return &p, nil
}
