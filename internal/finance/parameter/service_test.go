package parameter

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"go.ledgerline.dev/internal/common/sqlite"
	"go.ledgerline.dev/internal/config"
	"go.ledgerline.dev/internal/finance/common"
)

type recordingSink struct {
	mu     sync.Mutex
	counts map[string]int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{counts: make(map[string]int)}
}

func (s *recordingSink) Increment(category, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[category+"/"+source]++
}

func newTestService(t *testing.T) *Service {
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

	return NewService(NewRepository(store), newRecordingSink())
}

func TestInsertAndSelect(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	result := service.Insert(ctx, &Parameter{
		ParameterName:  "payment_account",
		ParameterValue: "checking_brian",
		Active:         true,
	})
	if !result.IsSuccess() {
		t.Fatalf("Expected success, got %v: %s", result.Kind(), result.Message())
	}

	found := service.SelectByName(ctx, "payment_account")
	if !found.IsSuccess() {
		t.Fatalf("Expected success, got %v", found.Kind())
	}
	if found.Value().ParameterValue != "checking_brian" {
		t.Errorf("Expected 'checking_brian', got %s", found.Value().ParameterValue)
	}
}

func TestInsert_MissingValue(t *testing.T) {
	service := newTestService(t)

	result := service.Insert(context.Background(), &Parameter{ParameterName: "payment_account"})
	if result.Kind() != common.KindValidationError {
		t.Fatalf("Expected VALIDATION_ERROR, got %v", result.Kind())
	}
	if _, ok := result.FieldErrors()["parameterValue"]; !ok {
		t.Error("Expected violation for parameterValue")
	}
}

func TestInsert_DuplicateName(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	first := service.Insert(ctx, &Parameter{
		ParameterName: "payment_account", ParameterValue: "checking_brian", Active: true,
	})
	if !first.IsSuccess() {
		t.Fatalf("Expected first insert to succeed, got %v", first.Kind())
	}

	result := service.Insert(ctx, &Parameter{
		ParameterName: "payment_account", ParameterValue: "savings_brian", Active: true,
	})
	if result.Code() != common.CodeDataIntegrityViolation {
		t.Errorf("Expected DATA_INTEGRITY_VIOLATION, got %s", result.Code())
	}
}

func TestUpdate_ChangesValue(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	service.Insert(ctx, &Parameter{
		ParameterName: "payment_account", ParameterValue: "checking_brian", Active: true,
	})

	updated := service.Update(ctx, &Parameter{
		ParameterName: "payment_account", ParameterValue: "savings_brian", Active: true,
	})
	if !updated.IsSuccess() {
		t.Fatalf("Expected update to succeed, got %v", updated.Kind())
	}

	found := service.SelectByName(ctx, "payment_account")
	if found.Value().ParameterValue != "savings_brian" {
		t.Errorf("Expected 'savings_brian', got %s", found.Value().ParameterValue)
	}
}

func TestUpdate_Missing(t *testing.T) {
	service := newTestService(t)

	result := service.Update(context.Background(), &Parameter{
		ParameterName: "missing", ParameterValue: "anything", Active: true,
	})
	if result.Kind() != common.KindNotFound {
		t.Fatalf("Expected NOT_FOUND, got %v", result.Kind())
	}
}

func TestDelete(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	service.Insert(ctx, &Parameter{
		ParameterName: "payment_account", ParameterValue: "checking_brian", Active: true,
	})

	deleted := service.Delete(ctx, "payment_account")
	if !deleted.IsSuccess() || !deleted.Value() {
		t.Fatalf("Expected delete to succeed, got %v", deleted.Kind())
	}

	if missing := service.Delete(ctx, "payment_account"); missing.Kind() != common.KindNotFound {
		t.Errorf("Expected NOT_FOUND on second delete, got %v", missing.Kind())
	}
}
