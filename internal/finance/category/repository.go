package category

import "context"

// Repository defines the interface for category data access.
// All implementations must be wrapped with instrumentation.
type Repository interface {
	Insert(ctx context.Context, c *Category) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	FindAll(ctx context.Context) ([]*Category, error)
	FindActive(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) (*Category, error)
	Delete(ctx context.Context, name string) error
}
