package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	cfg := config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "ledgerline.db"),
		BusyTimeout: time.Second,
	}

	store, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Expected open to succeed, got %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.CreateSchema(context.Background()); err != nil {
		t.Fatalf("Expected schema creation to succeed, got %v", err)
	}

	return store
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{})
	if err == nil {
		t.Error("Expected error for empty database path")
	}
}

func TestOpen_PingsStore(t *testing.T) {
	store := openTestStore(t)

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Expected ping to succeed, got %v", err)
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	store := openTestStore(t)

	if err := store.CreateSchema(context.Background()); err != nil {
		t.Errorf("Expected repeated schema creation to succeed, got %v", err)
	}
}

func TestMapError_Nil(t *testing.T) {
	if MapError(nil) != nil {
		t.Error("Expected nil to map to nil")
	}
}

func TestMapError_NoRows(t *testing.T) {
	if !errors.Is(MapError(sql.ErrNoRows), repository.ErrNotFound) {
		t.Error("Expected sql.ErrNoRows to map to ErrNotFound")
	}
}

func TestMapError_ContextPassthrough(t *testing.T) {
	if !errors.Is(MapError(context.DeadlineExceeded), context.DeadlineExceeded) {
		t.Error("Expected deadline error to pass through")
	}
	if !errors.Is(MapError(context.Canceled), context.Canceled) {
		t.Error("Expected cancellation to pass through")
	}
}

func TestMapError_UnknownPassthrough(t *testing.T) {
	cause := errors.New("something else")
	if MapError(cause) != cause {
		t.Error("Expected unknown error to pass through unchanged")
	}
}

func TestMapError_UniqueViolation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	insert := `
		INSERT INTO accounts (account_name_owner, account_type, date_added, date_updated)
		VALUES (?, ?, ?, ?)
	`
	now := time.Now().Unix()

	if _, err := store.DB().ExecContext(ctx, insert, "checking_alice", "debit", now, now); err != nil {
		t.Fatalf("Expected first insert to succeed, got %v", err)
	}

	_, err := store.DB().ExecContext(ctx, insert, "checking_alice", "debit", now, now)
	if err == nil {
		t.Fatal("Expected duplicate insert to fail")
	}
	if !errors.Is(MapError(err), repository.ErrDuplicateKey) {
		t.Errorf("Expected unique violation to map to ErrDuplicateKey, got %v", MapError(err))
	}
}

func TestMapError_ForeignKeyViolation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	now := time.Now().Unix()
	_, err := store.DB().ExecContext(ctx, `
		INSERT INTO transactions (guid, account_name_owner, transaction_date, transaction_state, date_added, date_updated)
		VALUES (?, ?, ?, ?, ?, ?)
	`, "0b1e0f72-0000-0000-0000-000000000001", "missing_account", "2026-01-15", "outstanding", now, now)

	if err == nil {
		t.Fatal("Expected insert referencing a missing account to fail")
	}
	if !errors.Is(MapError(err), repository.ErrDuplicateKey) {
		t.Errorf("Expected foreign-key violation to map to ErrDuplicateKey, got %v", MapError(err))
	}
}

func TestMapError_CheckViolation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	now := time.Now().Unix()
	if _, err := store.DB().ExecContext(ctx, `
		INSERT INTO accounts (account_name_owner, account_type, date_added, date_updated)
		VALUES (?, ?, ?, ?)
	`, "checking_bob", "debit", now, now); err != nil {
		t.Fatalf("Expected account insert to succeed, got %v", err)
	}

	_, err := store.DB().ExecContext(ctx, `
		INSERT INTO transactions (guid, account_name_owner, transaction_date, transaction_state, date_added, date_updated)
		VALUES (?, ?, ?, ?, ?, ?)
	`, "0b1e0f72-0000-0000-0000-000000000002", "checking_bob", "2026-01-15", "bogus_state", now, now)

	if err == nil {
		t.Fatal("Expected insert with invalid state to fail the check constraint")
	}
	if !errors.Is(MapError(err), repository.ErrDuplicateKey) {
		t.Errorf("Expected check violation to map to ErrDuplicateKey, got %v", MapError(err))
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	boom := errors.New("abort")
	err := store.WithTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().Unix()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO categories (category_name, date_added, date_updated)
			VALUES (?, ?, ?)
		`, "groceries", now, now); err != nil {
			return err
		}
		return boom
	})

	if !errors.Is(err, boom) {
		t.Fatalf("Expected function error to propagate, got %v", err)
	}

	var count int
	if err := store.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		t.Fatalf("Expected count query to succeed, got %v", err)
	}
	if count != 0 {
		t.Errorf("Expected rollback to discard the insert, got %d rows", count)
	}
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.WithTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().Unix()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (category_name, date_added, date_updated)
			VALUES (?, ?, ?)
		`, "utilities", now, now)
		return err
	})
	if err != nil {
		t.Fatalf("Expected transaction to commit, got %v", err)
	}

	var name string
	err = store.DB().QueryRowContext(ctx, `SELECT category_name FROM categories WHERE category_name = ?`, "utilities").Scan(&name)
	if err != nil {
		t.Fatalf("Expected committed row to be readable, got %v", err)
	}
	if name != "utilities" {
		t.Errorf("Expected 'utilities', got %s", name)
	}
}
