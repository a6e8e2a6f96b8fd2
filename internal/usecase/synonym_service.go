package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomasbot/matchday/internal/domain/synonym"
	"github.com/tomasbot/matchday/internal/platform/id"
)

// SynonymService administers the canonical-name registry. Alias
// collisions are rejected with ErrConflict and never overwritten.
type SynonymService struct {
	repo  synonym.Repository
	idgen id.Generator
}

func NewSynonymService(repo synonym.Repository, idgen id.Generator) *SynonymService {
	if idgen == nil {
		idgen = id.NewRandomGenerator()
	}
	return &SynonymService{repo: repo, idgen: idgen}
}

func (s *SynonymService) AddProperName(ctx context.Context, item synonym.ProperName) (synonym.ProperName, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SynonymService.AddProperName")
	defer span.End()

	item.Name = strings.TrimSpace(item.Name)
	for i := range item.Synonyms {
		item.Synonyms[i].Name = strings.TrimSpace(item.Synonyms[i].Name)
	}
	if err := item.Validate(); err != nil {
		return synonym.ProperName{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if item.ID == "" {
		generated, err := s.idgen.NewID()
		if err != nil {
			return synonym.ProperName{}, fmt.Errorf("generate proper name id: %w", err)
		}
		item.ID = generated
	}

	saved, err := s.repo.SaveProperName(ctx, item)
	if errors.Is(err, synonym.ErrNameConflict) {
		return synonym.ProperName{}, fmt.Errorf("%w: %s", ErrConflict, err)
	}
	if err != nil {
		return synonym.ProperName{}, fmt.Errorf("save proper name %q: %w", item.Name, err)
	}

	return saved, nil
}

func (s *SynonymService) ListProperNames(ctx context.Context) ([]synonym.ProperName, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SynonymService.ListProperNames")
	defer span.End()

	items, err := s.repo.ListProperNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list proper names: %w", err)
	}
	return items, nil
}

func (s *SynonymService) FetchSynonymByName(ctx context.Context, name string) (synonym.Synonym, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SynonymService.FetchSynonymByName")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return synonym.Synonym{}, fmt.Errorf("%w: synonym name is required", ErrInvalidInput)
	}

	item, found, err := s.repo.FindSynonymByName(ctx, name)
	if err != nil {
		return synonym.Synonym{}, fmt.Errorf("find synonym %q: %w", name, err)
	}
	if !found {
		return synonym.Synonym{}, fmt.Errorf("%w: synonym %q", ErrNotFound, name)
	}

	return item, nil
}

func (s *SynonymService) FetchProperNameBySynonym(ctx context.Context, name string) (synonym.ProperName, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SynonymService.FetchProperNameBySynonym")
	defer span.End()

	item, found, err := s.repo.FindProperNameBySynonym(ctx, strings.TrimSpace(name))
	if err != nil {
		return synonym.ProperName{}, fmt.Errorf("find proper name for synonym %q: %w", name, err)
	}
	if !found {
		return synonym.ProperName{}, fmt.Errorf("%w: no proper name for synonym %q", ErrNotFound, name)
	}

	return item, nil
}

// MatchingNames returns every registered word equal to the given one,
// proper names and synonyms alike; used by admin search.
func (s *SynonymService) MatchingNames(ctx context.Context, word string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SynonymService.MatchingNames")
	defer span.End()

	word = strings.TrimSpace(word)
	if word == "" {
		return nil, fmt.Errorf("%w: word is required", ErrInvalidInput)
	}

	var out []string
	if syn, found, err := s.repo.FindSynonymByName(ctx, word); err != nil {
		return nil, fmt.Errorf("find synonym %q: %w", word, err)
	} else if found {
		out = append(out, syn.Name)
	}
	if properName, found, err := s.repo.FindProperNameByName(ctx, word); err != nil {
		return nil, fmt.Errorf("find proper name %q: %w", word, err)
	} else if found {
		out = append(out, properName.Name)
	}

	return out, nil
}

func (s *SynonymService) DeleteProperName(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SynonymService.DeleteProperName")
	defer span.End()

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: proper name id is required", ErrInvalidInput)
	}
	if err := s.repo.DeleteProperName(ctx, id); err != nil {
		return fmt.Errorf("delete proper name %q: %w", id, err)
	}

	return nil
}
