package description

import "context"

// Repository defines the interface for description data access.
// All implementations must be wrapped with instrumentation.
type Repository interface {
	Insert(ctx context.Context, d *Description) (*Description, error)
	FindByName(ctx context.Context, name string) (*Description, error)
	FindAll(ctx context.Context) ([]*Description, error)
	FindActive(ctx context.Context) ([]*Description, error)
	Update(ctx context.Context, d *Description) (*Description, error)
	Delete(ctx context.Context, name string) error
}
