package payment

import (
	"context"

	"github.com/google/uuid"

	"go.ledgerline.dev/internal/common/metrics"
	"go.ledgerline.dev/internal/finance/common"
)

// Service exposes payment operations as classified results.
type Service struct {
	runner *common.Runner
	repo   Repository
}

// NewService creates a payment service
func NewService(repo Repository, sink metrics.Sink) *Service {
	return &Service{
		runner: common.NewRunner("payment", sink),
		repo:   repo,
	}
}

// Insert records a payment, assigning the transaction linkage guids when
// the caller supplied none. Repeating a destination, date, and amount
// triple is a data integrity violation.
func (s *Service) Insert(ctx context.Context, p *Payment) common.Result[*Payment] {
	if p.GUIDSource == "" {
		p.GUIDSource = uuid.NewString()
	}
	if p.GUIDDestination == "" {
		p.GUIDDestination = uuid.NewString()
	}

	return common.RunOperation(ctx, s.runner, "insert", p.DestinationAccount, func(ctx context.Context) (*Payment, error) {
		if v := p.Validate(); v != nil {
			return nil, v
		}
		return s.repo.Insert(ctx, p)
	})
}

// SelectByID looks up a payment by its identifier
func (s *Service) SelectByID(ctx context.Context, id int64) common.Result[*Payment] {
	return common.RunOperation(ctx, s.runner, "select_by_id", id, func(ctx context.Context) (*Payment, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// SelectAll lists every payment, newest first
func (s *Service) SelectAll(ctx context.Context) common.Result[[]*Payment] {
	return common.RunOperation(ctx, s.runner, "select_all", nil, func(ctx context.Context) ([]*Payment, error) {
		return s.repo.FindAll(ctx)
	})
}

// Update replaces the mutable fields of an existing payment
func (s *Service) Update(ctx context.Context, p *Payment) common.Result[*Payment] {
	return common.RunOperation(ctx, s.runner, "update", p.PaymentID, func(ctx context.Context) (*Payment, error) {
		if v := p.Validate(); v != nil {
			return nil, v
		}
		return s.repo.Update(ctx, p)
	})
}

// Delete removes a payment
func (s *Service) Delete(ctx context.Context, id int64) common.Result[bool] {
	return common.RunOperation(ctx, s.runner, "delete", id, func(ctx context.Context) (bool, error) {
		if err := s.repo.Delete(ctx, id); err != nil {
			return false, err
		}
		return true, nil
	})
}
