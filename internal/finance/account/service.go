package account

import (
	"context"
	"fmt"
	"time"

	"go.ledgerline.dev/internal/common/metrics"
	"go.ledgerline.dev/internal/finance/common"
	"go.ledgerline.dev/internal/resilience"
)

// Service exposes account operations as classified results.
type Service struct {
	runner   *common.Runner
	repo     Repository
	executor *resilience.Executor
}

// NewService creates an account service. A nil executor leaves the
// store-facing hot paths unprotected (degraded mode).
func NewService(repo Repository, executor *resilience.Executor, sink metrics.Sink) *Service {
	return &Service{
		runner:   common.NewRunner("account", sink),
		repo:     repo,
		executor: executor,
	}
}

// Insert creates a new account
func (s *Service) Insert(ctx context.Context, a *Account) common.Result[*Account] {
	return common.RunOperation(ctx, s.runner, "insert", a.AccountNameOwner, func(ctx context.Context) (*Account, error) {
		if v := a.Validate(); v != nil {
			return nil, v
		}
		return s.repo.Insert(ctx, a)
	})
}

// SelectByOwner looks up an account by its owner-qualified name
func (s *Service) SelectByOwner(ctx context.Context, nameOwner string) common.Result[*Account] {
	return common.RunOperation(ctx, s.runner, "select_by_owner", nameOwner, func(ctx context.Context) (*Account, error) {
		return s.repo.FindByNameOwner(ctx, nameOwner)
	})
}

// SelectActive lists all active accounts
func (s *Service) SelectActive(ctx context.Context) common.Result[[]*Account] {
	return common.RunOperation(ctx, s.runner, "select_active", nil, func(ctx context.Context) ([]*Account, error) {
		return s.repo.FindActive(ctx)
	})
}

// Update replaces the mutable fields of an existing account
func (s *Service) Update(ctx context.Context, a *Account) common.Result[*Account] {
	return common.RunOperation(ctx, s.runner, "update", a.AccountNameOwner, func(ctx context.Context) (*Account, error) {
		if v := a.Validate(); v != nil {
			return nil, v
		}
		return s.repo.Update(ctx, a)
	})
}

// Delete removes an account
func (s *Service) Delete(ctx context.Context, nameOwner string) common.Result[bool] {
	return common.RunOperation(ctx, s.runner, "delete", nameOwner, func(ctx context.Context) (bool, error) {
		if err := s.repo.Delete(ctx, nameOwner); err != nil {
			return false, err
		}
		return true, nil
	})
}

// Deactivate closes an account. Closing an already-closed account is a
// business rule violation.
func (s *Service) Deactivate(ctx context.Context, nameOwner string) common.Result[*Account] {
	return common.RunOperation(ctx, s.runner, "deactivate", nameOwner, func(ctx context.Context) (*Account, error) {
		existing, err := s.repo.FindByNameOwner(ctx, nameOwner)
		if err != nil {
			return nil, err
		}
		if existing.IsClosed() {
			return nil, fmt.Errorf("%w: account %s is already closed", common.ErrInvalidState, nameOwner)
		}
		return s.repo.Deactivate(ctx, nameOwner, time.Now().UTC())
	})
}

// Totals aggregates transaction amounts per state across all active
// transactions. This runs through the resilient executor: a struggling
// store trips the breaker instead of hanging callers.
func (s *Service) Totals(ctx context.Context) common.Result[Totals] {
	return common.RunOperation(ctx, s.runner, "totals", nil, func(ctx context.Context) (Totals, error) {
		return resilience.Execute(s.executor, ctx, "account.totals", 0, func(ctx context.Context) (Totals, error) {
			return s.repo.Totals(ctx)
		})
	})
}
