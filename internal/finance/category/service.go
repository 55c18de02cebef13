package category

import (
	"context"

	"go.ledgerline.dev/internal/common/metrics"
	"go.ledgerline.dev/internal/finance/common"
)

// Service exposes category operations as classified results.
type Service struct {
	runner *common.Runner
	repo   Repository
}

// NewService creates a category service
func NewService(repo Repository, sink metrics.Sink) *Service {
	return &Service{
		runner: common.NewRunner("category", sink),
		repo:   repo,
	}
}

// Insert creates a new category
func (s *Service) Insert(ctx context.Context, c *Category) common.Result[*Category] {
	return common.RunOperation(ctx, s.runner, "insert", c.CategoryName, func(ctx context.Context) (*Category, error) {
		if v := c.Validate(); v != nil {
			return nil, v
		}
		return s.repo.Insert(ctx, c)
	})
}

// SelectByName looks up a category by name
func (s *Service) SelectByName(ctx context.Context, name string) common.Result[*Category] {
	return common.RunOperation(ctx, s.runner, "select_by_name", name, func(ctx context.Context) (*Category, error) {
		return s.repo.FindByName(ctx, name)
	})
}

// SelectAll lists every category
func (s *Service) SelectAll(ctx context.Context) common.Result[[]*Category] {
	return common.RunOperation(ctx, s.runner, "select_all", nil, func(ctx context.Context) ([]*Category, error) {
		return s.repo.FindAll(ctx)
	})
}

// SelectActive lists active categories
func (s *Service) SelectActive(ctx context.Context) common.Result[[]*Category] {
	return common.RunOperation(ctx, s.runner, "select_active", nil, func(ctx context.Context) ([]*Category, error) {
		return s.repo.FindActive(ctx)
	})
}

// Update replaces the mutable fields of an existing category
func (s *Service) Update(ctx context.Context, c *Category) common.Result[*Category] {
	return common.RunOperation(ctx, s.runner, "update", c.CategoryName, func(ctx context.Context) (*Category, error) {
		if v := c.Validate(); v != nil {
			return nil, v
		}
		return s.repo.Update(ctx, c)
	})
}

// Delete removes a category
func (s *Service) Delete(ctx context.Context, name string) common.Result[bool] {
	return common.RunOperation(ctx, s.runner, "delete", name, func(ctx context.Context) (bool, error) {
		if err := s.repo.Delete(ctx, name); err != nil {
			return false, err
		}
		return true, nil
	})
}
