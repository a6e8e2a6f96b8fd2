package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tomasbot/matchday/internal/domain/event"
)

type EventRepository struct {
	mu     sync.RWMutex
	events map[string]*event.Event
	// byKey maps natural keys to ids so repeat refreshes update in place.
	byKey map[string]string
}

func NewEventRepository(events []*event.Event) *EventRepository {
	r := &EventRepository{
		events: make(map[string]*event.Event, len(events)),
		byKey:  make(map[string]string, len(events)),
	}
	for _, item := range events {
		if item == nil || item.ID == "" {
			continue
		}
		r.events[item.ID] = item
		r.byKey[item.NaturalKey()] = item.ID
	}

	return r
}

func (r *EventRepository) Upsert(_ context.Context, item *event.Event) (*event.Event, error) {
	if item == nil || strings.TrimSpace(item.ID) == "" {
		return nil, errMissingID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := item.NaturalKey()
	if existingID, ok := r.byKey[key]; ok {
		item.ID = existingID
	}
	r.events[item.ID] = item
	r.byKey[key] = item.ID

	return item, nil
}

func (r *EventRepository) List(_ context.Context) ([]*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*event.Event, 0, len(r.events))
	for _, item := range r.events {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *EventRepository) GetByID(_ context.Context, id string) (*event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.events[id]
	return item, ok, nil
}
