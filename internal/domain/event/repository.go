package event

import "context"

// Repository describes event persistence needs from use cases. Upsert is
// keyed by the event natural key so repeat refreshes stay idempotent.
type Repository interface {
	Upsert(ctx context.Context, item *Event) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	GetByID(ctx context.Context, id string) (*Event, bool, error)
}
