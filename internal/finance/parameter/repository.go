package parameter

import "context"

// Repository defines the interface for parameter data access.
// All implementations must be wrapped with instrumentation.
type Repository interface {
	Insert(ctx context.Context, p *Parameter) (*Parameter, error)
	FindByName(ctx context.Context, name string) (*Parameter, error)
	FindAll(ctx context.Context) ([]*Parameter, error)
	Update(ctx context.Context, p *Parameter) (*Parameter, error)
	Delete(ctx context.Context, name string) error
}
