package datasource

import "context"

// Repository describes data source persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]DataSource, error)
	ListByPlugin(ctx context.Context, pluginID string) ([]DataSource, error)
	GetByID(ctx context.Context, id string) (DataSource, bool, error)
	Save(ctx context.Context, item DataSource) (DataSource, error)
	Delete(ctx context.Context, id string) error
}
