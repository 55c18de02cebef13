package account

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/common/sqlite"
	"go.ledgerline.dev/internal/config"
)

func newTestRepository(t *testing.T) (Repository, *sqlite.Store) {
	t.Helper()

	store, err := sqlite.Open(context.Background(), config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "ledgerline.db"),
	})
	if err != nil {
		t.Fatalf("Expected store to open, got %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.CreateSchema(context.Background()); err != nil {
		t.Fatalf("Expected schema creation to succeed, got %v", err)
	}

	return NewRepository(store), store
}

func TestSQLiteRepository_InsertAndFind(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	inserted, err := repo.Insert(ctx, &Account{
		AccountNameOwner: "checking_alice",
		AccountType:      AccountTypeDebit,
		Moniker:          "0001",
		Active:           true,
		Cleared:          125000,
	})
	if err != nil {
		t.Fatalf("Expected insert to succeed, got %v", err)
	}
	if inserted.AccountID == 0 {
		t.Error("Expected generated account ID")
	}

	found, err := repo.FindByNameOwner(ctx, "checking_alice")
	if err != nil {
		t.Fatalf("Expected find to succeed, got %v", err)
	}
	if found.AccountID != inserted.AccountID {
		t.Errorf("Expected ID %d, got %d", inserted.AccountID, found.AccountID)
	}
	if found.AccountType != AccountTypeDebit {
		t.Errorf("Expected debit, got %s", found.AccountType)
	}
	if found.Cleared != 125000 {
		t.Errorf("Expected cleared 125000, got %d", found.Cleared)
	}
	if !found.Active {
		t.Error("Expected active account")
	}
	if found.DateAdded.IsZero() {
		t.Error("Expected date added to be set")
	}
}

func TestSQLiteRepository_FindMissing(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.FindByNameOwner(context.Background(), "missing_account")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteRepository_DuplicateName(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, &Account{AccountNameOwner: "checking_alice", AccountType: AccountTypeDebit}); err != nil {
		t.Fatalf("Expected first insert to succeed, got %v", err)
	}

	_, err := repo.Insert(ctx, &Account{AccountNameOwner: "checking_alice", AccountType: AccountTypeCredit})
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey for duplicate name, got %v", err)
	}
}

func TestSQLiteRepository_FindActive(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	for _, a := range []*Account{
		{AccountNameOwner: "checking_alice", AccountType: AccountTypeDebit, Active: true},
		{AccountNameOwner: "visa_bob", AccountType: AccountTypeCredit, Active: true},
		{AccountNameOwner: "old_carol", AccountType: AccountTypeDebit, Active: false},
	} {
		if _, err := repo.Insert(ctx, a); err != nil {
			t.Fatalf("Expected insert to succeed, got %v", err)
		}
	}

	active, err := repo.FindActive(ctx)
	if err != nil {
		t.Fatalf("Expected find active to succeed, got %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("Expected 2 active accounts, got %d", len(active))
	}
	if active[0].AccountNameOwner != "checking_alice" {
		t.Errorf("Expected name ordering, got %s first", active[0].AccountNameOwner)
	}
}

func TestSQLiteRepository_Update(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, &Account{AccountNameOwner: "checking_alice", AccountType: AccountTypeDebit, Active: true}); err != nil {
		t.Fatalf("Expected insert to succeed, got %v", err)
	}

	updated, err := repo.Update(ctx, &Account{
		AccountNameOwner: "checking_alice",
		AccountType:      AccountTypeDebit,
		Moniker:          "0042",
		Active:           true,
		Outstanding:      -4250,
	})
	if err != nil {
		t.Fatalf("Expected update to succeed, got %v", err)
	}
	if updated.Moniker != "0042" {
		t.Errorf("Expected moniker 0042, got %s", updated.Moniker)
	}

	found, err := repo.FindByNameOwner(ctx, "checking_alice")
	if err != nil {
		t.Fatalf("Expected find to succeed, got %v", err)
	}
	if found.Outstanding != -4250 {
		t.Errorf("Expected outstanding -4250, got %d", found.Outstanding)
	}
}

func TestSQLiteRepository_UpdateMissing(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.Update(context.Background(), &Account{AccountNameOwner: "missing_account", AccountType: AccountTypeDebit})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteRepository_Deactivate(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, &Account{AccountNameOwner: "checking_alice", AccountType: AccountTypeDebit, Active: true}); err != nil {
		t.Fatalf("Expected insert to succeed, got %v", err)
	}

	closed, err := repo.Deactivate(ctx, "checking_alice", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Expected deactivate to succeed, got %v", err)
	}
	if closed.Active {
		t.Error("Expected account to be inactive")
	}
	if closed.DateClosed == nil {
		t.Fatal("Expected closed date to be set")
	}
	if closed.DateClosed.Format("2006-01-02") != "2026-03-01" {
		t.Errorf("Expected closed date 2026-03-01, got %v", closed.DateClosed)
	}
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, &Account{AccountNameOwner: "checking_alice", AccountType: AccountTypeDebit}); err != nil {
		t.Fatalf("Expected insert to succeed, got %v", err)
	}

	if err := repo.Delete(ctx, "checking_alice"); err != nil {
		t.Fatalf("Expected delete to succeed, got %v", err)
	}

	if err := repo.Delete(ctx, "checking_alice"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSQLiteRepository_Totals(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, &Account{AccountNameOwner: "checking_alice", AccountType: AccountTypeDebit, Active: true}); err != nil {
		t.Fatalf("Expected insert to succeed, got %v", err)
	}

	now := time.Now().Unix()
	rows := []struct {
		guid   string
		state  string
		amount int64
		active int
	}{
		{"11111111-1111-1111-1111-111111111111", "cleared", 10000, 1},
		{"22222222-2222-2222-2222-222222222222", "cleared", 2500, 1},
		{"33333333-3333-3333-3333-333333333333", "outstanding", -4250, 1},
		{"44444444-4444-4444-4444-444444444444", "future", 7500, 1},
		{"55555555-5555-5555-5555-555555555555", "cleared", 99999, 0},
	}
	for _, row := range rows {
		if _, err := store.DB().ExecContext(ctx, `
			INSERT INTO transactions (guid, account_name_owner, transaction_date, amount, transaction_state, active, date_added, date_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, row.guid, "checking_alice", "2026-01-15", row.amount, row.state, row.active, now, now); err != nil {
			t.Fatalf("Expected transaction insert to succeed, got %v", err)
		}
	}

	totals, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("Expected totals to succeed, got %v", err)
	}
	if totals.Cleared != 12500 {
		t.Errorf("Expected cleared 12500, got %d", totals.Cleared)
	}
	if totals.Outstanding != -4250 {
		t.Errorf("Expected outstanding -4250, got %d", totals.Outstanding)
	}
	if totals.Future != 7500 {
		t.Errorf("Expected future 7500, got %d", totals.Future)
	}
}
