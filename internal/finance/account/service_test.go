package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/finance/common"
)

// mockRepository implements Repository with configurable behavior
type mockRepository struct {
	insertFunc     func(a *Account) (*Account, error)
	findFunc       func(nameOwner string) (*Account, error)
	findActiveFunc func() ([]*Account, error)
	updateFunc     func(a *Account) (*Account, error)
	deleteFunc     func(nameOwner string) error
	deactivateFunc func(nameOwner string, closedAt time.Time) (*Account, error)
	totalsFunc     func() (Totals, error)
	callCount      atomic.Int32
}

func (m *mockRepository) Insert(ctx context.Context, a *Account) (*Account, error) {
	m.callCount.Add(1)
	if m.insertFunc != nil {
		return m.insertFunc(a)
	}
	return a, nil
}

func (m *mockRepository) FindByNameOwner(ctx context.Context, nameOwner string) (*Account, error) {
	m.callCount.Add(1)
	if m.findFunc != nil {
		return m.findFunc(nameOwner)
	}
	return nil, repository.ErrNotFound
}

func (m *mockRepository) FindActive(ctx context.Context) ([]*Account, error) {
	m.callCount.Add(1)
	if m.findActiveFunc != nil {
		return m.findActiveFunc()
	}
	return nil, nil
}

func (m *mockRepository) Update(ctx context.Context, a *Account) (*Account, error) {
	m.callCount.Add(1)
	if m.updateFunc != nil {
		return m.updateFunc(a)
	}
	return a, nil
}

func (m *mockRepository) Delete(ctx context.Context, nameOwner string) error {
	m.callCount.Add(1)
	if m.deleteFunc != nil {
		return m.deleteFunc(nameOwner)
	}
	return nil
}

func (m *mockRepository) Deactivate(ctx context.Context, nameOwner string, closedAt time.Time) (*Account, error) {
	m.callCount.Add(1)
	if m.deactivateFunc != nil {
		return m.deactivateFunc(nameOwner, closedAt)
	}
	return nil, repository.ErrNotFound
}

func (m *mockRepository) Totals(ctx context.Context) (Totals, error) {
	m.callCount.Add(1)
	if m.totalsFunc != nil {
		return m.totalsFunc()
	}
	return Totals{}, nil
}

func (m *mockRepository) GetCallCount() int32 {
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

func validAccount() *Account {
	return &Account{
		AccountNameOwner: "checking_alice",
		AccountType:      AccountTypeDebit,
		Moniker:          "0001",
		Active:           true,
	}
}

func TestInsert_Success(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo, nil, newRecordingSink())

	result := service.Insert(context.Background(), validAccount())

	if !result.IsSuccess() {
		t.Fatalf("Expected success, got %v: %s", result.Kind(), result.Message())
	}
	if result.Value().AccountNameOwner != "checking_alice" {
		t.Errorf("Expected inserted account, got %+v", result.Value())
	}
	if repo.GetCallCount() != 1 {
		t.Errorf("Expected 1 repository call, got %d", repo.GetCallCount())
	}
}

func TestInsert_ValidationFailureSkipsStore(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo, nil, newRecordingSink())

	result := service.Insert(context.Background(), &Account{
		AccountNameOwner: "",
		AccountType:      AccountType("savings"),
	})

	if result.Kind() != common.KindValidationError {
		t.Fatalf("Expected VALIDATION_ERROR, got %v", result.Kind())
	}
	fieldErrors := result.FieldErrors()
	if _, ok := fieldErrors["accountNameOwner"]; !ok {
		t.Error("Expected violation for accountNameOwner")
	}
	if _, ok := fieldErrors["accountType"]; !ok {
		t.Error("Expected violation for accountType")
	}
	if repo.GetCallCount() != 0 {
		t.Errorf("Expected store untouched on validation failure, got %d calls", repo.GetCallCount())
	}
}

func TestInsert_DuplicateMapsToDataIntegrity(t *testing.T) {
	repo := &mockRepository{
		insertFunc: func(a *Account) (*Account, error) {
			return nil, fmt.Errorf("%w: UNIQUE constraint failed: accounts.account_name_owner", repository.ErrDuplicateKey)
		},
	}
	service := NewService(repo, nil, newRecordingSink())

	result := service.Insert(context.Background(), validAccount())

	if result.Kind() != common.KindBusinessError {
		t.Fatalf("Expected BUSINESS_ERROR, got %v", result.Kind())
	}
	if result.Code() != common.CodeDataIntegrityViolation {
		t.Errorf("Expected DATA_INTEGRITY_VIOLATION, got %s", result.Code())
	}
}

func TestSelectByOwner_NotFound(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo, nil, newRecordingSink())

	result := service.SelectByOwner(context.Background(), "savings_bob")

	if result.Kind() != common.KindNotFound {
		t.Fatalf("Expected NOT_FOUND, got %v", result.Kind())
	}
	if result.Message() != "account not found: savings_bob" {
		t.Errorf("Unexpected message: %s", result.Message())
	}
}

func TestSelectActive_SystemError(t *testing.T) {
	cause := errors.New("disk failure")
	repo := &mockRepository{
		findActiveFunc: func() ([]*Account, error) {
			return nil, cause
		},
	}
	service := NewService(repo, nil, newRecordingSink())

	result := service.SelectActive(context.Background())

	if result.Kind() != common.KindSystemError {
		t.Fatalf("Expected SYSTEM_ERROR, got %v", result.Kind())
	}
	if !errors.Is(result.Cause(), cause) {
		t.Errorf("Expected original cause preserved, got %v", result.Cause())
	}
}

func TestDelete_Success(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo, nil, newRecordingSink())

	result := service.Delete(context.Background(), "checking_alice")

	if !result.IsSuccess() {
		t.Fatalf("Expected success, got %v", result.Kind())
	}
	if !result.Value() {
		t.Error("Expected delete to report true")
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockRepository{
		deleteFunc: func(nameOwner string) error {
			return repository.ErrNotFound
		},
	}
	service := NewService(repo, nil, newRecordingSink())

	result := service.Delete(context.Background(), "missing_account")

	if result.Kind() != common.KindNotFound {
		t.Fatalf("Expected NOT_FOUND, got %v", result.Kind())
	}
}

func TestDeactivate_Success(t *testing.T) {
	open := validAccount()
	closed := *open
	closed.Active = false
	now := time.Now().UTC()
	closed.DateClosed = &now

	repo := &mockRepository{
		findFunc: func(nameOwner string) (*Account, error) {
			return open, nil
		},
		deactivateFunc: func(nameOwner string, closedAt time.Time) (*Account, error) {
			return &closed, nil
		},
	}
	service := NewService(repo, nil, newRecordingSink())

	result := service.Deactivate(context.Background(), "checking_alice")

	if !result.IsSuccess() {
		t.Fatalf("Expected success, got %v: %s", result.Kind(), result.Message())
	}
	if result.Value().Active {
		t.Error("Expected account to be inactive")
	}
	if !result.Value().IsClosed() {
		t.Error("Expected closed date to be set")
	}
}

func TestDeactivate_AlreadyClosedIsBusinessRule(t *testing.T) {
	now := time.Now().UTC()
	repo := &mockRepository{
		findFunc: func(nameOwner string) (*Account, error) {
			a := validAccount()
			a.DateClosed = &now
			return a, nil
		},
	}
	service := NewService(repo, nil, newRecordingSink())

	result := service.Deactivate(context.Background(), "checking_alice")

	if result.Kind() != common.KindBusinessError {
		t.Fatalf("Expected BUSINESS_ERROR, got %v", result.Kind())
	}
	if result.Code() != common.CodeBusinessLogicError {
		t.Errorf("Expected BUSINESS_LOGIC_ERROR, got %s", result.Code())
	}
	if !strings.Contains(result.Message(), "already closed") {
		t.Errorf("Expected message to explain the rule, got %s", result.Message())
	}
}

func TestTotals_DegradedExecutorRunsDirectly(t *testing.T) {
	repo := &mockRepository{
		totalsFunc: func() (Totals, error) {
			return Totals{Cleared: 125000, Outstanding: -4250, Future: 10000}, nil
		},
	}
	service := NewService(repo, nil, newRecordingSink())

	result := service.Totals(context.Background())

	if !result.IsSuccess() {
		t.Fatalf("Expected success, got %v: %s", result.Kind(), result.Message())
	}
	totals := result.Value()
	if totals.Cleared != 125000 || totals.Outstanding != -4250 || totals.Future != 10000 {
		t.Errorf("Unexpected totals: %+v", totals)
	}
	if repo.GetCallCount() != 1 {
		t.Errorf("Expected exactly 1 store call in degraded mode, got %d", repo.GetCallCount())
	}
}
