package description

import (
	"context"

	"go.ledgerline.dev/internal/common/metrics"
	"go.ledgerline.dev/internal/finance/common"
)

// Service exposes description operations as classified results.
type Service struct {
	runner *common.Runner
	repo   Repository
}

// NewService creates a description service
func NewService(repo Repository, sink metrics.Sink) *Service {
	return &Service{
		runner: common.NewRunner("description", sink),
		repo:   repo,
	}
}

// Insert creates a new description
func (s *Service) Insert(ctx context.Context, d *Description) common.Result[*Description] {
	return common.RunOperation(ctx, s.runner, "insert", d.DescriptionName, func(ctx context.Context) (*Description, error) {
		if v := d.Validate(); v != nil {
			return nil, v
		}
		return s.repo.Insert(ctx, d)
	})
}

// SelectByName looks up a description by name
func (s *Service) SelectByName(ctx context.Context, name string) common.Result[*Description] {
	return common.RunOperation(ctx, s.runner, "select_by_name", name, func(ctx context.Context) (*Description, error) {
		return s.repo.FindByName(ctx, name)
	})
}

// SelectAll lists every description
func (s *Service) SelectAll(ctx context.Context) common.Result[[]*Description] {
	return common.RunOperation(ctx, s.runner, "select_all", nil, func(ctx context.Context) ([]*Description, error) {
		return s.repo.FindAll(ctx)
	})
}

// SelectActive lists active descriptions
func (s *Service) SelectActive(ctx context.Context) common.Result[[]*Description] {
	return common.RunOperation(ctx, s.runner, "select_active", nil, func(ctx context.Context) ([]*Description, error) {
		return s.repo.FindActive(ctx)
	})
}

// Update replaces the mutable fields of an existing description
func (s *Service) Update(ctx context.Context, d *Description) common.Result[*Description] {
	return common.RunOperation(ctx, s.runner, "update", d.DescriptionName, func(ctx context.Context) (*Description, error) {
		if v := d.Validate(); v != nil {
			return nil, v
		}
		return s.repo.Update(ctx, d)
	})
}

// Delete removes a description
func (s *Service) Delete(ctx context.Context, name string) common.Result[bool] {
	return common.RunOperation(ctx, s.runner, "delete", name, func(ctx context.Context) (bool, error) {
		if err := s.repo.Delete(ctx, name); err != nil {
			return false, err
		}
		return true, nil
	})
}
