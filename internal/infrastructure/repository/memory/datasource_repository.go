package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tomasbot/matchday/internal/domain/datasource"
)

type DataSourceRepository struct {
	mu      sync.RWMutex
	sources map[string]datasource.DataSource
}

func NewDataSourceRepository(sources []datasource.DataSource) *DataSourceRepository {
	byID := make(map[string]datasource.DataSource, len(sources))
	for _, item := range sources {
		byID[item.ID] = item
	}

	return &DataSourceRepository{sources: byID}
}

func (r *DataSourceRepository) List(_ context.Context) ([]datasource.DataSource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]datasource.DataSource, 0, len(r.sources))
	for _, item := range r.sources {
		out = append(out, item)
	}
	sortDataSources(out)

	return out, nil
}

func (r *DataSourceRepository) ListByPlugin(_ context.Context, pluginID string) ([]datasource.DataSource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []datasource.DataSource
	for _, item := range r.sources {
		if item.PluginID == pluginID {
			out = append(out, item)
		}
	}
	sortDataSources(out)

	return out, nil
}

func (r *DataSourceRepository) GetByID(_ context.Context, id string) (datasource.DataSource, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.sources[id]
	return item, ok, nil
}

func (r *DataSourceRepository) Save(_ context.Context, item datasource.DataSource) (datasource.DataSource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(item.ID) == "" {
		return datasource.DataSource{}, errMissingID
	}
	r.sources[item.ID] = item

	return item, nil
}

func (r *DataSourceRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sources, id)
	return nil
}

func sortDataSources(items []datasource.DataSource) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].PluginID != items[j].PluginID {
			return items[i].PluginID < items[j].PluginID
		}
		return items[i].ID < items[j].ID
	})
}
