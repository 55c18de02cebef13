package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/finance/account"
	"go.ledgerline.dev/internal/finance/common"
)

// mockRepository implements Repository with configurable behavior
type mockRepository struct {
	insertFunc        func(t *Transaction) (*Transaction, error)
	findByGUIDFunc    func(guid string) (*Transaction, error)
	findByAccountFunc func(accountNameOwner string) ([]*Transaction, error)
	updateFunc        func(t *Transaction) (*Transaction, error)
	updateStateFunc   func(guid string, state TransactionState) (*Transaction, error)
	deleteFunc        func(guid string) error
	totalsFunc        func(accountNameOwner string) (Totals, error)
	callCount         atomic.Int32
}

func (m *mockRepository) Insert(ctx context.Context, t *Transaction) (*Transaction, error) {
	m.callCount.Add(1)
	if m.insertFunc != nil {
		return m.insertFunc(t)
	}
	return t, nil
}

func (m *mockRepository) FindByGUID(ctx context.Context, guid string) (*Transaction, error) {
	m.callCount.Add(1)
	if m.findByGUIDFunc != nil {
		return m.findByGUIDFunc(guid)
	}
	return nil, repository.ErrNotFound
}

func (m *mockRepository) FindByAccount(ctx context.Context, accountNameOwner string) ([]*Transaction, error) {
	m.callCount.Add(1)
	if m.findByAccountFunc != nil {
		return m.findByAccountFunc(accountNameOwner)
	}
	return nil, nil
}

func (m *mockRepository) Update(ctx context.Context, t *Transaction) (*Transaction, error) {
	m.callCount.Add(1)
	if m.updateFunc != nil {
		return m.updateFunc(t)
	}
	return t, nil
}

func (m *mockRepository) UpdateState(ctx context.Context, guid string, state TransactionState) (*Transaction, error) {
	m.callCount.Add(1)
	if m.updateStateFunc != nil {
		return m.updateStateFunc(guid, state)
	}
	return nil, repository.ErrNotFound
}

func (m *mockRepository) Delete(ctx context.Context, guid string) error {
	m.callCount.Add(1)
	if m.deleteFunc != nil {
		return m.deleteFunc(guid)
	}
	return nil
}

func (m *mockRepository) Totals(ctx context.Context, accountNameOwner string) (Totals, error) {
	m.callCount.Add(1)
	if m.totalsFunc != nil {
		return m.totalsFunc(accountNameOwner)
	}
	return Totals{}, nil
}

func (m *mockRepository) GetCallCount() int32 {
	return m.callCount.Load()
}

// mockAccountVerifier implements AccountVerifier, defaulting to an
// existing active account
type mockAccountVerifier struct {
	findFunc  func(accountNameOwner string) (*account.Account, error)
	callCount atomic.Int32
}

func (m *mockAccountVerifier) FindByNameOwner(ctx context.Context, accountNameOwner string) (*account.Account, error) {
	m.callCount.Add(1)
	if m.findFunc != nil {
		return m.findFunc(accountNameOwner)
	}
	return &account.Account{AccountNameOwner: accountNameOwner, Active: true}, nil
}

func (m *mockAccountVerifier) GetCallCount() int32 {
	return m.callCount.Load()
}

// recordingSink captures sink increments for assertions
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

func validTransaction() *Transaction {
	return &Transaction{
		GUID:             uuid.NewString(),
		AccountNameOwner: "checking_alice",
		TransactionDate:  time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Description:      "grocery store",
		Category:         "groceries",
		Amount:           -4250,
		TransactionState: StateOutstanding,
		TransactionType:  TypeDebit,
		ReoccurringType:  ReoccurringOnetime,
		Active:           true,
	}
}

func newMockService(repo *mockRepository, accounts *mockAccountVerifier) *Service {
	return NewService(repo, accounts, nil, newRecordingSink())
}

func TestInsert_GeneratesGUID(t *testing.T) {
	repo := &mockRepository{}
	service := newMockService(repo, &mockAccountVerifier{})

	tx := validTransaction()
	tx.GUID = ""

	result := service.Insert(context.Background(), tx)
	if !result.IsSuccess() {
		t.Fatalf("Expected success, got %v: %s", result.Kind(), result.Message())
	}
	if result.Value().GUID == "" {
		t.Fatal("Expected a generated guid")
	}
	if _, err := uuid.Parse(result.Value().GUID); err != nil {
		t.Errorf("Expected a parseable guid, got %s", result.Value().GUID)
	}
}

func TestInsert_KeepsCallerGUID(t *testing.T) {
	repo := &mockRepository{}
	service := newMockService(repo, &mockAccountVerifier{})

	tx := validTransaction()
	want := tx.GUID

	result := service.Insert(context.Background(), tx)
	if !result.IsSuccess() {
		t.Fatalf("Expected success, got %v", result.Kind())
	}
	if result.Value().GUID != want {
		t.Errorf("Expected guid %s, got %s", want, result.Value().GUID)
	}
}

func TestInsert_MissingAccountIsBusinessRule(t *testing.T) {
	repo := &mockRepository{}
	accounts := &mockAccountVerifier{
		findFunc: func(string) (*account.Account, error) {
			return nil, repository.ErrNotFound
		},
	}
	service := newMockService(repo, accounts)

	result := service.Insert(context.Background(), validTransaction())
	if result.Kind() != common.KindBusinessError {
		t.Fatalf("Expected BUSINESS_ERROR, got %v", result.Kind())
	}
	if result.Code() != common.CodeBusinessLogicError {
		t.Errorf("Expected BUSINESS_LOGIC_ERROR, got %s", result.Code())
	}
	if !strings.Contains(result.Message(), "does not exist") {
		t.Errorf("Unexpected message: %s", result.Message())
	}
	if repo.GetCallCount() != 0 {
		t.Errorf("Expected no store calls, got %d", repo.GetCallCount())
	}
}

func TestInsert_ValidationFailureSkipsStore(t *testing.T) {
	repo := &mockRepository{}
	accounts := &mockAccountVerifier{}
	service := newMockService(repo, accounts)

	tx := validTransaction()
	tx.TransactionState = "pending"

	result := service.Insert(context.Background(), tx)
	if result.Kind() != common.KindValidationError {
		t.Fatalf("Expected VALIDATION_ERROR, got %v", result.Kind())
	}
	if _, ok := result.FieldErrors()["transactionState"]; !ok {
		t.Error("Expected violation for transactionState")
	}
	if repo.GetCallCount() != 0 {
		t.Errorf("Expected no store calls, got %d", repo.GetCallCount())
	}
	if accounts.GetCallCount() != 0 {
		t.Errorf("Expected no account lookups, got %d", accounts.GetCallCount())
	}
}

func TestInsert_DuplicateGUIDMapsToDataIntegrity(t *testing.T) {
	repo := &mockRepository{
		insertFunc: func(tx *Transaction) (*Transaction, error) {
			return nil, fmt.Errorf("%w: transactions.guid", repository.ErrDuplicateKey)
		},
	}
	service := newMockService(repo, &mockAccountVerifier{})

	result := service.Insert(context.Background(), validTransaction())
	if result.Kind() != common.KindBusinessError {
		t.Fatalf("Expected BUSINESS_ERROR, got %v", result.Kind())
	}
	if result.Code() != common.CodeDataIntegrityViolation {
		t.Errorf("Expected DATA_INTEGRITY_VIOLATION, got %s", result.Code())
	}
}

func TestInsert_AccountLookupSystemError(t *testing.T) {
	cause := errors.New("store offline")
	accounts := &mockAccountVerifier{
		findFunc: func(string) (*account.Account, error) {
			return nil, cause
		},
	}
	service := newMockService(&mockRepository{}, accounts)

	result := service.Insert(context.Background(), validTransaction())
	if result.Kind() != common.KindSystemError {
		t.Fatalf("Expected SYSTEM_ERROR, got %v", result.Kind())
	}
	if !errors.Is(result.Cause(), cause) {
		t.Errorf("Expected cause to carry the store error, got %v", result.Cause())
	}
}

func TestSelectByGUID_NotFound(t *testing.T) {
	service := newMockService(&mockRepository{}, &mockAccountVerifier{})

	guid := uuid.NewString()
	result := service.SelectByGUID(context.Background(), guid)
	if result.Kind() != common.KindNotFound {
		t.Fatalf("Expected NOT_FOUND, got %v", result.Kind())
	}
	if result.Message() != "transaction not found: "+guid {
		t.Errorf("Unexpected message: %s", result.Message())
	}
}

func TestSelectByAccount_ReturnsList(t *testing.T) {
	repo := &mockRepository{
		findByAccountFunc: func(accountNameOwner string) ([]*Transaction, error) {
			return []*Transaction{validTransaction(), validTransaction()}, nil
		},
	}
	service := newMockService(repo, &mockAccountVerifier{})

	result := service.SelectByAccount(context.Background(), "checking_alice")
	if !result.IsSuccess() {
		t.Fatalf("Expected success, got %v", result.Kind())
	}
	if len(result.Value()) != 2 {
		t.Errorf("Expected 2 transactions, got %d", len(result.Value()))
	}
}

func TestUpdateState_Transitions(t *testing.T) {
	existing := validTransaction()
	repo := &mockRepository{
		findByGUIDFunc: func(guid string) (*Transaction, error) {
			return existing, nil
		},
		updateStateFunc: func(guid string, state TransactionState) (*Transaction, error) {
			updated := *existing
			updated.TransactionState = state
			return &updated, nil
		},
	}
	service := newMockService(repo, &mockAccountVerifier{})

	result := service.UpdateState(context.Background(), existing.GUID, StateCleared)
	if !result.IsSuccess() {
		t.Fatalf("Expected success, got %v: %s", result.Kind(), result.Message())
	}
	if result.Value().TransactionState != StateCleared {
		t.Errorf("Expected cleared, got %s", result.Value().TransactionState)
	}
}

func TestUpdateState_SameStateIsBusinessRule(t *testing.T) {
	existing := validTransaction()
	repo := &mockRepository{
		findByGUIDFunc: func(guid string) (*Transaction, error) {
			return existing, nil
		},
	}
	service := newMockService(repo, &mockAccountVerifier{})

	result := service.UpdateState(context.Background(), existing.GUID, existing.TransactionState)
	if result.Kind() != common.KindBusinessError {
		t.Fatalf("Expected BUSINESS_ERROR, got %v", result.Kind())
	}
	if result.Code() != common.CodeBusinessLogicError {
		t.Errorf("Expected BUSINESS_LOGIC_ERROR, got %s", result.Code())
	}
	if !strings.Contains(result.Message(), "already outstanding") {
		t.Errorf("Unexpected message: %s", result.Message())
	}
}

func TestUpdateState_RejectsUnknownState(t *testing.T) {
	repo := &mockRepository{}
	service := newMockService(repo, &mockAccountVerifier{})

	result := service.UpdateState(context.Background(), uuid.NewString(), "pending")
	if result.Kind() != common.KindValidationError {
		t.Fatalf("Expected VALIDATION_ERROR, got %v", result.Kind())
	}
	if repo.GetCallCount() != 0 {
		t.Errorf("Expected no store calls, got %d", repo.GetCallCount())
	}
}

func TestTotals_DegradedExecutorRunsDirectly(t *testing.T) {
	repo := &mockRepository{
		totalsFunc: func(accountNameOwner string) (Totals, error) {
			return Totals{Total: 8250, Cleared: 12500, Outstanding: -4250}, nil
		},
	}
	service := newMockService(repo, &mockAccountVerifier{})

	result := service.Totals(context.Background(), "checking_alice")
	if !result.IsSuccess() {
		t.Fatalf("Expected success, got %v", result.Kind())
	}
	if result.Value().Total != 8250 {
		t.Errorf("Expected total 8250, got %d", result.Value().Total)
	}
	if repo.GetCallCount() != 1 {
		t.Errorf("Expected exactly 1 store call, got %d", repo.GetCallCount())
	}
}

func TestDelete(t *testing.T) {
	deleted := false
	repo := &mockRepository{
		deleteFunc: func(guid string) error {
			if deleted {
				return repository.ErrNotFound
			}
			deleted = true
			return nil
		},
	}
	service := newMockService(repo, &mockAccountVerifier{})

	guid := uuid.NewString()
	first := service.Delete(context.Background(), guid)
	if !first.IsSuccess() || !first.Value() {
		t.Fatalf("Expected delete to succeed, got %v", first.Kind())
	}

	second := service.Delete(context.Background(), guid)
	if second.Kind() != common.KindNotFound {
		t.Errorf("Expected NOT_FOUND on second delete, got %v", second.Kind())
	}
}
