package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByName(ctx context.Context, name string) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
	Upsert(ctx context.Context, item Team) (Team, error)
}
