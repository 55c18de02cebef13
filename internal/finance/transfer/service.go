package transfer

import (
	"context"

	"github.com/google/uuid"

	"go.ledgerline.dev/internal/common/metrics"
	"go.ledgerline.dev/internal/finance/common"
)

// Service exposes transfer operations as classified results.
type Service struct {
	runner *common.Runner
	repo   Repository
}

// NewService creates a transfer service
func NewService(repo Repository, sink metrics.Sink) *Service {
	return &Service{
		runner: common.NewRunner("transfer", sink),
		repo:   repo,
	}
}

// Insert records a transfer, assigning the transaction linkage guids when
// the caller supplied none
func (s *Service) Insert(ctx context.Context, t *Transfer) common.Result[*Transfer] {
	if t.GUIDSource == "" {
		t.GUIDSource = uuid.NewString()
	}
	if t.GUIDDestination == "" {
		t.GUIDDestination = uuid.NewString()
	}

	return common.RunOperation(ctx, s.runner, "insert", t.DestinationAccount, func(ctx context.Context) (*Transfer, error) {
		if v := t.Validate(); v != nil {
			return nil, v
		}
		return s.repo.Insert(ctx, t)
	})
}

// SelectByID looks up a transfer by its identifier
func (s *Service) SelectByID(ctx context.Context, id int64) common.Result[*Transfer] {
	return common.RunOperation(ctx, s.runner, "select_by_id", id, func(ctx context.Context) (*Transfer, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// SelectAll lists every transfer, newest first
func (s *Service) SelectAll(ctx context.Context) common.Result[[]*Transfer] {
	return common.RunOperation(ctx, s.runner, "select_all", nil, func(ctx context.Context) ([]*Transfer, error) {
		return s.repo.FindAll(ctx)
	})
}

// Update replaces the mutable fields of an existing transfer
func (s *Service) Update(ctx context.Context, t *Transfer) common.Result[*Transfer] {
	return common.RunOperation(ctx, s.runner, "update", t.TransferID, func(ctx context.Context) (*Transfer, error) {
		if v := t.Validate(); v != nil {
			return nil, v
		}
		return s.repo.Update(ctx, t)
	})
}

// Delete removes a transfer
func (s *Service) Delete(ctx context.Context, id int64) common.Result[bool] {
	return common.RunOperation(ctx, s.runner, "delete", id, func(ctx context.Context) (bool, error) {
		if err := s.repo.Delete(ctx, id); err != nil {
			return false, err
		}
		return true, nil
	})
}
