package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tomasbot/matchday/internal/domain/competition"
)

type CompetitionRepository struct {
	mu           sync.RWMutex
	competitions map[string]competition.Competition
}

func NewCompetitionRepository(competitions []competition.Competition) *CompetitionRepository {
	byID := make(map[string]competition.Competition, len(competitions))
	for _, item := range competitions {
		byID[item.ID] = item
	}

	return &CompetitionRepository{competitions: byID}
}

func (r *CompetitionRepository) GetByName(_ context.Context, name string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.competitions {
		if strings.EqualFold(item.Name, name) {
			return item, true, nil
		}
	}

	return competition.Competition{}, false, nil
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.competitions))
	for _, item := range r.competitions {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *CompetitionRepository) Upsert(_ context.Context, item competition.Competition) (competition.Competition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(item.ID) == "" {
		return competition.Competition{}, errMissingID
	}
	r.competitions[item.ID] = item

	return item, nil
}
