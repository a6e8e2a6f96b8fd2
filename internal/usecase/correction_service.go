package usecase

import (
	"context"
	"fmt"

	"github.com/tomasbot/matchday/internal/domain/correction"
	"github.com/tomasbot/matchday/internal/domain/synonym"
	"github.com/tomasbot/matchday/internal/platform/logging"
)

// NamedLookup finds an already-persisted canonical entity by exact name.
type NamedLookup func(ctx context.Context, name string) (correction.Named, bool, error)

// SynonymReader is the slice of the synonym registry correction needs.
type SynonymReader interface {
	FindSynonymByName(ctx context.Context, name string) (synonym.Synonym, bool, error)
	FindProperNameBySynonym(ctx context.Context, name string) (synonym.ProperName, bool, error)
}

// CorrectionService walks an entity's correctable fields and swaps freshly
// parsed values for their canonical, already-persisted counterparts. A
// parsed Team("Barca") becomes the existing Team("FC Barcelona") row when
// a synonym links them, so differently-spelled feeds never create
// duplicates. Runs inside the caller's transaction boundary.
type CorrectionService struct {
	synonyms SynonymReader
	lookups  map[string]NamedLookup
	logger   *logging.Logger
}

func NewCorrectionService(synonyms SynonymReader, logger *logging.Logger) *CorrectionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CorrectionService{
		synonyms: synonyms,
		lookups:  make(map[string]NamedLookup),
		logger:   logger,
	}
}

// RegisterLookup wires the canonical lookup for one field kind ("team",
// "competition"). Kinds without a lookup are left uncorrected.
func (s *CorrectionService) RegisterLookup(kind string, lookup NamedLookup) {
	if kind == "" || lookup == nil {
		return
	}
	s.lookups[kind] = lookup
}

// Correct resolves every correctable field of the entity. A required
// field that arrives nil fails the whole entity; an unmatched name is
// retained unchanged and will be inserted as new on persistence.
func (s *CorrectionService) Correct(ctx context.Context, entity correction.Correctable) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CorrectionService.Correct")
	defer span.End()

	if entity == nil {
		return fmt.Errorf("%w: correctable entity is required", ErrInvalidInput)
	}

	for _, field := range entity.CorrectableFields() {
		value := field.Get()
		if value == nil {
			if field.Mode == correction.ModeRequired {
				return fmt.Errorf("%w: required field %q is not set", ErrInvalidInput, field.Name)
			}
			continue
		}

		corrected, found, err := s.CorrectedEntity(ctx, field.Kind, value)
		if err != nil {
			return fmt.Errorf("correct field %q: %w", field.Name, err)
		}
		if !found {
			continue
		}
		if err := field.Set(corrected); err != nil {
			return fmt.Errorf("correct field %q: %w", field.Name, err)
		}
	}

	return nil
}

// CorrectedEntity resolves one value to its canonical form: first by
// exact name, then through the synonym registry. Reports found=false
// when no canonical counterpart exists.
func (s *CorrectionService) CorrectedEntity(ctx context.Context, kind string, value correction.Named) (correction.Named, bool, error) {
	lookup, ok := s.lookups[kind]
	if !ok {
		return value, false, nil
	}

	name := value.CanonicalName()
	if name == "" {
		return value, false, nil
	}

	if existing, found, err := lookup(ctx, name); err != nil {
		return nil, false, fmt.Errorf("lookup %s by name: %w", kind, err)
	} else if found {
		return existing, true, nil
	}

	syn, found, err := s.synonyms.FindSynonymByName(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("lookup synonym: %w", err)
	}
	if !found {
		return value, false, nil
	}

	properName, found, err := s.synonyms.FindProperNameBySynonym(ctx, syn.Name)
	if err != nil {
		return nil, false, fmt.Errorf("lookup proper name for synonym %q: %w", syn.Name, err)
	}
	if !found {
		s.logger.Warn("synonym has no proper name", "synonym", syn.Name)
		return value, false, nil
	}

	existing, found, err := lookup(ctx, properName.Name)
	if err != nil {
		return nil, false, fmt.Errorf("lookup %s by proper name: %w", kind, err)
	}
	if !found {
		return value, false, nil
	}

	return existing, true, nil
}
