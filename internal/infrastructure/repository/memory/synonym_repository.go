package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tomasbot/matchday/internal/domain/synonym"
)

// SynonymRepository enforces the same word uniqueness the postgres layer
// does with unique indexes: no word may appear twice, whether as a proper
// name or as a synonym of a different proper name.
type SynonymRepository struct {
	mu          sync.RWMutex
	properNames map[string]synonym.ProperName
}

func NewSynonymRepository(properNames []synonym.ProperName) *SynonymRepository {
	byID := make(map[string]synonym.ProperName, len(properNames))
	for _, item := range properNames {
		byID[item.ID] = item
	}

	return &SynonymRepository{properNames: byID}
}

func (r *SynonymRepository) SaveProperName(_ context.Context, item synonym.ProperName) (synonym.ProperName, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(item.ID) == "" {
		return synonym.ProperName{}, errMissingID
	}

	words := make([]string, 0, len(item.Synonyms)+1)
	words = append(words, item.Name)
	for _, syn := range item.Synonyms {
		words = append(words, syn.Name)
	}
	for _, word := range words {
		if owner, taken := r.ownerOf(word); taken && owner != item.ID {
			return synonym.ProperName{}, fmt.Errorf("%w: %q", synonym.ErrNameConflict, word)
		}
	}

	for i := range item.Synonyms {
		item.Synonyms[i].ProperNameID = item.ID
	}
	r.properNames[item.ID] = item

	return item, nil
}

func (r *SynonymRepository) ListProperNames(_ context.Context) ([]synonym.ProperName, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]synonym.ProperName, 0, len(r.properNames))
	for _, item := range r.properNames {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *SynonymRepository) FindProperNameByName(_ context.Context, name string) (synonym.ProperName, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.properNames {
		if strings.EqualFold(item.Name, name) {
			return item, true, nil
		}
	}

	return synonym.ProperName{}, false, nil
}

func (r *SynonymRepository) FindSynonymByName(_ context.Context, name string) (synonym.Synonym, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.properNames {
		for _, syn := range item.Synonyms {
			if strings.EqualFold(syn.Name, name) {
				return syn, true, nil
			}
		}
	}

	return synonym.Synonym{}, false, nil
}

func (r *SynonymRepository) FindProperNameBySynonym(_ context.Context, name string) (synonym.ProperName, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.properNames {
		for _, syn := range item.Synonyms {
			if strings.EqualFold(syn.Name, name) {
				return item, true, nil
			}
		}
	}

	return synonym.ProperName{}, false, nil
}

func (r *SynonymRepository) DeleteProperName(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.properNames, id)
	return nil
}

// ownerOf reports which proper name currently claims the word, either as
// its own label or as one of its synonyms.
func (r *SynonymRepository) ownerOf(word string) (string, bool) {
	for _, item := range r.properNames {
		if strings.EqualFold(item.Name, word) {
			return item.ID, true
		}
		for _, syn := range item.Synonyms {
			if strings.EqualFold(syn.Name, word) {
				return item.ID, true
			}
		}
	}

	return "", false
}
