package transaction

import (
	"context"
	"database/sql"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/common/sqlite"
	"go.ledgerline.dev/internal/finance/common"
)

// sqliteRepository provides SQLite access to transaction data
type sqliteRepository struct {
	store *sqlite.Store
}

// NewRepository creates a new transaction repository with instrumentation
func NewRepository(store *sqlite.Store) Repository {
	return newInstrumentedRepository(&sqliteRepository{store: store})
}

const transactionColumns = `transaction_id, guid, account_name_owner, transaction_date,
	description, category, amount, transaction_state, transaction_type,
	reoccurring_type, notes, active, date_added, date_updated`

func (r *sqliteRepository) Insert(ctx context.Context, t *Transaction) (*Transaction, error) {
	now := time.Now().UTC()
	t.DateAdded = now
	t.DateUpdated = now

	result, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO transactions (guid, account_name_owner, transaction_date,
			description, category, amount, transaction_state, transaction_type,
			reoccurring_type, notes, active, date_added, date_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.GUID, t.AccountNameOwner, common.FormatDate(t.TransactionDate),
		t.Description, t.Category, int64(t.Amount), string(t.TransactionState),
		string(t.TransactionType), string(t.ReoccurringType), t.Notes, t.Active,
		now.Unix(), now.Unix())
	if err != nil {
		return nil, sqlite.MapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	t.TransactionID = id
	return t, nil
}

func (r *sqliteRepository) FindByGUID(ctx context.Context, guid string) (*Transaction, error) {
	row := r.store.DB().QueryRowContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE guid = ?
	`, guid)

	t, err := scanTransaction(row)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	return t, nil
}

func (r *sqliteRepository) FindByAccount(ctx context.Context, accountNameOwner string) ([]*Transaction, error) {
	rows, err := r.store.DB().QueryContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE account_name_owner = ? AND active = 1
		ORDER BY transaction_date DESC, transaction_id DESC
	`, accountNameOwner)
	if err != nil {
		return nil, sqlite.MapError(err)
	}
	defer rows.Close()

	var transactions []*Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, sqlite.MapError(err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err)
	}
	return transactions, nil
}

func (r *sqliteRepository) Update(ctx context.Context, t *Transaction) (*Transaction, error) {
	now := time.Now().UTC()

	result, err := r.store.DB().ExecContext(ctx, `
		UPDATE transactions SET account_name_owner = ?, transaction_date = ?,
			description = ?, category = ?, amount = ?, transaction_state = ?,
			transaction_type = ?, reoccurring_type = ?, notes = ?, active = ?,
			date_updated = ?
		WHERE guid = ?
	`, t.AccountNameOwner, common.FormatDate(t.TransactionDate), t.Description,
		t.Category, int64(t.Amount), string(t.TransactionState),
		string(t.TransactionType), string(t.ReoccurringType), t.Notes, t.Active,
		now.Unix(), t.GUID)
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

// UpdateState flips the clearing state and re-reads the row in one store
// transaction so the returned snapshot matches what was committed.
func (r *sqliteRepository) UpdateState(ctx context.Context, guid string, state TransactionState) (*Transaction, error) {
	now := time.Now().UTC()
	var updated *Transaction

	err := r.store.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE transactions SET transaction_state = ?, date_updated = ? WHERE guid = ?
		`, string(state), now.Unix(), guid)
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

		row := tx.QueryRowContext(ctx, `
			SELECT `+transactionColumns+` FROM transactions WHERE guid = ?
		`, guid)

		updated, err = scanTransaction(row)
		if err != nil {
			return sqlite.MapError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, guid string) error {
	result, err := r.store.DB().ExecContext(ctx, `
		DELETE FROM transactions WHERE guid = ?
	`, guid)
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

func (r *sqliteRepository) Totals(ctx context.Context, accountNameOwner string) (Totals, error) {
	var totals Totals

	row := r.store.DB().QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(CASE WHEN transaction_state = 'cleared' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN transaction_state = 'outstanding' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN transaction_state = 'future' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE account_name_owner = ? AND active = 1
	`, accountNameOwner)

	if err := row.Scan(&totals.Total, &totals.Cleared, &totals.Outstanding, &totals.Future); err != nil {
		return Totals{}, sqlite.MapError(err)
	}
	return totals, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*Transaction, error) {
	var t Transaction
	var txDate string
	var state, txType, reoccurring string
	var added, updated int64

	if err := row.Scan(&t.TransactionID, &t.GUID, &t.AccountNameOwner, &txDate,
		&t.Description, &t.Category, &t.Amount, &state, &txType,
		&reoccurring, &t.Notes, &t.Active, &added, &updated); err != nil {
		return nil, err
	}

	date, err := common.ParseDate(txDate)
	if err != nil {
		return nil, err
	}

	t.TransactionDate = date
	t.TransactionState = TransactionState(state)
	t.TransactionType = TransactionType(txType)
	t.ReoccurringType = ReoccurringType(reoccurring)
	t.DateAdded = time.Unix(added, 0).UTC()
	t.DateUpdated = time.Unix(updated, 0).UTC()
	return &t, nil
}
