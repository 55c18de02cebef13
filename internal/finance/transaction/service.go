package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"go.ledgerline.dev/internal/common/metrics"
	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/finance/account"
	"go.ledgerline.dev/internal/finance/common"
	"go.ledgerline.dev/internal/resilience"
)

// AccountVerifier confirms the owning account exists before a
// transaction is accepted. The account repository satisfies it.
type AccountVerifier interface {
	FindByNameOwner(ctx context.Context, accountNameOwner string) (*account.Account, error)
}

// Service exposes transaction operations as classified results.
type Service struct {
	runner   *common.Runner
	repo     Repository
	accounts AccountVerifier
	executor *resilience.Executor
}

// NewService creates a transaction service. A nil executor leaves the
// store-facing hot paths unprotected (degraded mode).
func NewService(repo Repository, accounts AccountVerifier, executor *resilience.Executor, sink metrics.Sink) *Service {
	return &Service{
		runner:   common.NewRunner("transaction", sink),
		repo:     repo,
		accounts: accounts,
		executor: executor,
	}
}

// Insert records a new transaction, assigning a guid when the caller
// supplied none. The owning account must already exist. The store-facing
// work runs through the resilient executor.
func (s *Service) Insert(ctx context.Context, t *Transaction) common.Result[*Transaction] {
	if t.GUID == "" {
		t.GUID = uuid.NewString()
	}

	return common.RunOperation(ctx, s.runner, "insert", t.GUID, func(ctx context.Context) (*Transaction, error) {
		if v := t.Validate(); v != nil {
			return nil, v
		}
		return resilience.Execute(s.executor, ctx, "transaction.insert", 0, func(ctx context.Context) (*Transaction, error) {
			if _, err := s.accounts.FindByNameOwner(ctx, t.AccountNameOwner); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return nil, fmt.Errorf("%w: account %s does not exist", common.ErrInvalidState, t.AccountNameOwner)
				}
				return nil, err
			}
			return s.repo.Insert(ctx, t)
		})
	})
}

// SelectByGUID looks up a transaction by its guid
func (s *Service) SelectByGUID(ctx context.Context, guid string) common.Result[*Transaction] {
	return common.RunOperation(ctx, s.runner, "select_by_guid", guid, func(ctx context.Context) (*Transaction, error) {
		return s.repo.FindByGUID(ctx, guid)
	})
}

// SelectByAccount lists the active transactions for one account, newest
// first. This is the busiest read in the system and runs through the
// resilient executor.
func (s *Service) SelectByAccount(ctx context.Context, accountNameOwner string) common.Result[[]*Transaction] {
	return common.RunOperation(ctx, s.runner, "select_by_account", accountNameOwner, func(ctx context.Context) ([]*Transaction, error) {
		return resilience.Execute(s.executor, ctx, "transaction.select_by_account", 0, func(ctx context.Context) ([]*Transaction, error) {
			return s.repo.FindByAccount(ctx, accountNameOwner)
		})
	})
}

// Totals aggregates one account's active transaction amounts per state.
func (s *Service) Totals(ctx context.Context, accountNameOwner string) common.Result[Totals] {
	return common.RunOperation(ctx, s.runner, "totals", accountNameOwner, func(ctx context.Context) (Totals, error) {
		return resilience.Execute(s.executor, ctx, "transaction.totals", 0, func(ctx context.Context) (Totals, error) {
			return s.repo.Totals(ctx, accountNameOwner)
		})
	})
}

// Update replaces the mutable fields of an existing transaction
func (s *Service) Update(ctx context.Context, t *Transaction) common.Result[*Transaction] {
	return common.RunOperation(ctx, s.runner, "update", t.GUID, func(ctx context.Context) (*Transaction, error) {
		if v := t.Validate(); v != nil {
			return nil, v
		}
		return s.repo.Update(ctx, t)
	})
}

// UpdateState moves a transaction to a new clearing state. Re-asserting
// the current state is a business rule violation.
func (s *Service) UpdateState(ctx context.Context, guid string, state TransactionState) common.Result[*Transaction] {
	return common.RunOperation(ctx, s.runner, "update_state", guid, func(ctx context.Context) (*Transaction, error) {
		if !state.IsValid() {
			return nil, repository.NewConstraintViolation(
				"transactionState", "Transaction state must be cleared, outstanding, or future")
		}

		existing, err := s.repo.FindByGUID(ctx, guid)
		if err != nil {
			return nil, err
		}
		if existing.TransactionState == state {
			return nil, fmt.Errorf("%w: transaction %s is already %s", common.ErrInvalidState, guid, state)
		}
		return s.repo.UpdateState(ctx, guid, state)
	})
}

// Delete removes a transaction by guid
func (s *Service) Delete(ctx context.Context, guid string) common.Result[bool] {
	return common.RunOperation(ctx, s.runner, "delete", guid, func(ctx context.Context) (bool, error) {
		if err := s.repo.Delete(ctx, guid); err != nil {
			return false, err
		}
		return true, nil
	})
}
