package competition

import "context"

// Repository describes competition persistence needs from use cases.
type Repository interface {
	GetByName(ctx context.Context, name string) (Competition, bool, error)
	List(ctx context.Context) ([]Competition, error)
	Upsert(ctx context.Context, item Competition) (Competition, error)
}
