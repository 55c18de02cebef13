package account

import (
	"context"
	"database/sql"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/common/sqlite"
	"go.ledgerline.dev/internal/finance/common"
)

// sqliteRepository provides SQLite access to account data
type sqliteRepository struct {
	store *sqlite.Store
}

// NewRepository creates a new account repository with instrumentation
func NewRepository(store *sqlite.Store) Repository {
	return newInstrumentedRepository(&sqliteRepository{store: store})
}

const accountColumns = `account_id, account_name_owner, account_type, moniker, active,
	cleared, outstanding, future, date_closed, date_added, date_updated`

// Insert inserts a new account
func (r *sqliteRepository) Insert(ctx context.Context, a *Account) (*Account, error) {
	now := time.Now().UTC()
	a.DateAdded = now
	a.DateUpdated = now

	var dateClosed sql.NullString
	if a.DateClosed != nil {
		dateClosed = sql.NullString{String: common.FormatDate(*a.DateClosed), Valid: true}
	}

	result, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO accounts (account_name_owner, account_type, moniker, active, cleared, outstanding, future, date_closed, date_added, date_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.AccountNameOwner, string(a.AccountType), a.Moniker, a.Active,
		int64(a.Cleared), int64(a.Outstanding), int64(a.Future), dateClosed, now.Unix(), now.Unix())
	if err != nil {
		return nil, sqlite.MapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	a.AccountID = id
	return a, nil
}

// FindByNameOwner finds an account by its owner-qualified name
func (r *sqliteRepository) FindByNameOwner(ctx context.Context, nameOwner string) (*Account, error) {
	row := r.store.DB().QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE account_name_owner = ?
	`, nameOwner)

	a, err := scanAccount(row)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	return a, nil
}

// FindActive finds all active accounts ordered by name
func (r *sqliteRepository) FindActive(ctx context.Context) ([]*Account, error) {
	rows, err := r.store.DB().QueryContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE active = 1
		ORDER BY account_name_owner
	`)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, sqlite.MapError(err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err)
	}
	return accounts, nil
}

// Update updates a mutable subset of account fields
func (r *sqliteRepository) Update(ctx context.Context, a *Account) (*Account, error) {
	now := time.Now().UTC()

	var dateClosed sql.NullString
	if a.DateClosed != nil {
		dateClosed = sql.NullString{String: common.FormatDate(*a.DateClosed), Valid: true}
	}

	result, err := r.store.DB().ExecContext(ctx, `
		UPDATE accounts
		SET account_type = ?, moniker = ?, active = ?, cleared = ?, outstanding = ?, future = ?, date_closed = ?, date_updated = ?
		WHERE account_name_owner = ?
	`, string(a.AccountType), a.Moniker, a.Active,
		int64(a.Cleared), int64(a.Outstanding), int64(a.Future), dateClosed, now.Unix(), a.AccountNameOwner)
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

	a.DateUpdated = now
	return a, nil
}

// Delete removes an account
func (r *sqliteRepository) Delete(ctx context.Context, nameOwner string) error {
	result, err := r.store.DB().ExecContext(ctx, `
		DELETE FROM accounts WHERE account_name_owner = ?
	`, nameOwner)
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

// Deactivate closes an account, marking it inactive with a closed date
func (r *sqliteRepository) Deactivate(ctx context.Context, nameOwner string, closedAt time.Time) (*Account, error) {
	result, err := r.store.DB().ExecContext(ctx, `
		UPDATE accounts
		SET active = 0, date_closed = ?, date_updated = ?
		WHERE account_name_owner = ?
	`, common.FormatDate(closedAt), time.Now().UTC().Unix(), nameOwner)
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

	return r.FindByNameOwner(ctx, nameOwner)
}

// Totals sums active transaction amounts per transaction state
func (r *sqliteRepository) Totals(ctx context.Context) (Totals, error) {
	var totals Totals
	err := r.store.DB().QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN transaction_state = 'cleared' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN transaction_state = 'outstanding' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN transaction_state = 'future' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE active = 1
	`).Scan(&totals.Cleared, &totals.Outstanding, &totals.Future)
	if err != nil {
		return Totals{}, sqlite.MapError(err)
	}
	return totals, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*Account, error) {
	var a Account
	var accountType string
	var dateClosed sql.NullString
	var added, updated int64

	err := row.Scan(&a.AccountID, &a.AccountNameOwner, &accountType, &a.Moniker, &a.Active,
		&a.Cleared, &a.Outstanding, &a.Future, &dateClosed, &added, &updated)
	if err != nil {
		return nil, err
	}

	a.AccountType = AccountType(accountType)
	if dateClosed.Valid {
		if closed, err := common.ParseDate(dateClosed.String); err == nil {
			a.DateClosed = &closed
		}
	}
	a.DateAdded = time.Unix(added, 0).UTC()
	a.DateUpdated = time.Unix(updated, 0).UTC()

	return &a, nil
}
