package parameter

import (
	"context"

	"go.ledgerline.dev/internal/common/metrics"
	"go.ledgerline.dev/internal/finance/common"
)

// Service exposes parameter operations as classified results.
type Service struct {
	runner *common.Runner
	repo   Repository
}

// NewService creates a parameter service
func NewService(repo Repository, sink metrics.Sink) *Service {
	return &Service{
		runner: common.NewRunner("parameter", sink),
		repo:   repo,
	}
}

// Insert creates a new parameter
func (s *Service) Insert(ctx context.Context, p *Parameter) common.Result[*Parameter] {
	return common.RunOperation(ctx, s.runner, "insert", p.ParameterName, func(ctx context.Context) (*Parameter, error) {
		if v := p.Validate(); v != nil {
			return nil, v
		}
		return s.repo.Insert(ctx, p)
	})
}

// SelectByName looks up a parameter by name
func (s *Service) SelectByName(ctx context.Context, name string) common.Result[*Parameter] {
	return common.RunOperation(ctx, s.runner, "select_by_name", name, func(ctx context.Context) (*Parameter, error) {
		return s.repo.FindByName(ctx, name)
	})
}

// SelectAll lists every parameter
func (s *Service) SelectAll(ctx context.Context) common.Result[[]*Parameter] {
	return common.RunOperation(ctx, s.runner, "select_all", nil, func(ctx context.Context) ([]*Parameter, error) {
		return s.repo.FindAll(ctx)
	})
}

// Update replaces the value and active flag of an existing parameter
func (s *Service) Update(ctx context.Context, p *Parameter) common.Result[*Parameter] {
	return common.RunOperation(ctx, s.runner, "update", p.ParameterName, func(ctx context.Context) (*Parameter, error) {
		if v := p.Validate(); v != nil {
			return nil, v
		}
		return s.repo.Update(ctx, p)
	})
}

// Delete removes a parameter
func (s *Service) Delete(ctx context.Context, name string) common.Result[bool] {
	return common.RunOperation(ctx, s.runner, "delete", name, func(ctx context.Context) (bool, error) {
		if err := s.repo.Delete(ctx, name); err != nil {
			return false, err
		}
		return true, nil
	})
}
