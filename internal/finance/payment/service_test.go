package payment

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

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

func validPayment() *Payment {
	return &Payment{
		SourceAccount:      "checking_alice",
		DestinationAccount: "visa_alice",
		TransactionDate:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Amount:             25000,
		Active:             true,
	}
}

func TestInsert_GeneratesLinkageGUIDs(t *testing.T) {
	service := newTestService(t)

	result := service.Insert(context.Background(), validPayment())
	if !result.IsSuccess() {
		t.Fatalf("Expected success, got %v: %s", result.Kind(), result.Message())
	}

	p := result.Value()
	if p.PaymentID == 0 {
		t.Error("Expected generated payment ID")
	}
	if _, err := uuid.Parse(p.GUIDSource); err != nil {
		t.Errorf("Expected parseable source guid, got %q", p.GUIDSource)
	}
	if _, err := uuid.Parse(p.GUIDDestination); err != nil {
		t.Errorf("Expected parseable destination guid, got %q", p.GUIDDestination)
	}
	if p.GUIDSource == p.GUIDDestination {
		t.Error("Expected distinct linkage guids")
	}
}

func TestInsert_DuplicateTripleMapsToDataIntegrity(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	if result := service.Insert(ctx, validPayment()); !result.IsSuccess() {
		t.Fatalf("Expected first insert to succeed, got %v", result.Kind())
	}

	result := service.Insert(ctx, validPayment())
	if result.Kind() != common.KindBusinessError {
		t.Fatalf("Expected BUSINESS_ERROR, got %v", result.Kind())
	}
	if result.Code() != common.CodeDataIntegrityViolation {
		t.Errorf("Expected DATA_INTEGRITY_VIOLATION, got %s", result.Code())
	}
}

func TestInsert_SameDayDifferentAmountAllowed(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	if result := service.Insert(ctx, validPayment()); !result.IsSuccess() {
		t.Fatalf("Expected first insert to succeed, got %v", result.Kind())
	}

	second := validPayment()
	second.Amount = 30000

	if result := service.Insert(ctx, second); !result.IsSuccess() {
		t.Errorf("Expected second insert to succeed, got %v: %s", result.Kind(), result.Message())
	}
}

func TestInsert_SameAccountRejected(t *testing.T) {
	service := newTestService(t)

	p := validPayment()
	p.DestinationAccount = p.SourceAccount

	result := service.Insert(context.Background(), p)
	if result.Kind() != common.KindValidationError {
		t.Fatalf("Expected VALIDATION_ERROR, got %v", result.Kind())
	}
	if _, ok := result.FieldErrors()["destinationAccount"]; !ok {
		t.Error("Expected violation for destinationAccount")
	}
}

func TestInsert_NonPositiveAmountRejected(t *testing.T) {
	service := newTestService(t)

	p := validPayment()
	p.Amount = 0

	result := service.Insert(context.Background(), p)
	if result.Kind() != common.KindValidationError {
		t.Fatalf("Expected VALIDATION_ERROR, got %v", result.Kind())
	}
	if _, ok := result.FieldErrors()["amount"]; !ok {
		t.Error("Expected violation for amount")
	}
}

func TestSelectByID_NotFound(t *testing.T) {
	service := newTestService(t)

	result := service.SelectByID(context.Background(), 404)
	if result.Kind() != common.KindNotFound {
		t.Fatalf("Expected NOT_FOUND, got %v", result.Kind())
	}
	if result.Message() != "payment not found: 404" {
		t.Errorf("Unexpected message: %s", result.Message())
	}
}

func TestSelectAll_NewestFirst(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	older := validPayment()
	older.TransactionDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	service.Insert(ctx, older)

	newer := validPayment()
	newer.TransactionDate = time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	service.Insert(ctx, newer)

	result := service.SelectAll(ctx)
	if !result.IsSuccess() {
		t.Fatalf("Expected success, got %v", result.Kind())
	}
	payments := result.Value()
	if len(payments) != 2 {
		t.Fatalf("Expected 2 payments, got %d", len(payments))
	}
	if !payments[0].TransactionDate.After(payments[1].TransactionDate) {
		t.Error("Expected newest payment first")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	inserted := service.Insert(ctx, validPayment())
	if !inserted.IsSuccess() {
		t.Fatalf("Expected insert to succeed, got %v", inserted.Kind())
	}
	id := inserted.Value().PaymentID

	p := inserted.Value()
	p.Amount = 27500
	updated := service.Update(ctx, p)
	if !updated.IsSuccess() {
		t.Fatalf("Expected update to succeed, got %v", updated.Kind())
	}

	found := service.SelectByID(ctx, id)
	if found.Value().Amount != 27500 {
		t.Errorf("Expected amount 27500, got %d", found.Value().Amount)
	}

	deleted := service.Delete(ctx, id)
	if !deleted.IsSuccess() || !deleted.Value() {
		t.Fatalf("Expected delete to succeed, got %v", deleted.Kind())
	}

	if missing := service.Delete(ctx, id); missing.Kind() != common.KindNotFound {
		t.Errorf("Expected NOT_FOUND on second delete, got %v", missing.Kind())
	}
}
