package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/tomasbot/matchday/internal/domain/competition"
	"github.com/tomasbot/matchday/internal/domain/correction"
	"github.com/tomasbot/matchday/internal/domain/event"
	"github.com/tomasbot/matchday/internal/domain/synonym"
	"github.com/tomasbot/matchday/internal/domain/team"
	"github.com/tomasbot/matchday/internal/infrastructure/repository/memory"
	"github.com/tomasbot/matchday/internal/platform/logging"
)

func newCorrectionFixture(t *testing.T) (*CorrectionService, *memory.TeamRepository, *memory.CompetitionRepository) {
	t.Helper()

	synonymRepo := memory.NewSynonymRepository([]synonym.ProperName{
		{
			ID:   "pn-1",
			Name: "FC Barcelona",
			Synonyms: []synonym.Synonym{
				{ID: "syn-1", Name: "Barca", ProperNameID: "pn-1"},
				{ID: "syn-2", Name: "Barcelona", ProperNameID: "pn-1"},
			},
		},
	})
	teamRepo := memory.NewTeamRepository([]team.Team{
		{ID: "team-1", Name: "FC Barcelona", Country: "Spain"},
	})
	competitionRepo := memory.NewCompetitionRepository([]competition.Competition{
		{ID: "comp-1", Name: "La Liga", Country: "Spain"},
	})

	service := NewCorrectionService(synonymRepo, logging.NewNop())
	service.RegisterLookup("team", func(ctx context.Context, name string) (correction.Named, bool, error) {
		item, found, err := teamRepo.GetByName(ctx, name)
		if err != nil || !found {
			return nil, false, err
		}
		return &item, true, nil
	})
	service.RegisterLookup("competition", func(ctx context.Context, name string) (correction.Named, bool, error) {
		item, found, err := competitionRepo.GetByName(ctx, name)
		if err != nil || !found {
			return nil, false, err
		}
		return &item, true, nil
	})

	return service, teamRepo, competitionRepo
}

func TestCorrectionService_Correct_ResolvesSynonym(t *testing.T) {
	service, _, _ := newCorrectionFixture(t)

	ev := &event.Event{
		Kind:        event.KindMatch,
		Competition: &competition.Competition{Name: "La Liga"},
		HomeTeam:    &team.Team{Name: "Barca"},
		AwayTeam:    &team.Team{Name: "Getafe"},
	}

	if err := service.Correct(t.Context(), ev); err != nil {
		t.Fatalf("correct failed: %v", err)
	}

	if ev.HomeTeam.ID != "team-1" || ev.HomeTeam.Name != "FC Barcelona" {
		t.Fatalf("expected home team swapped for canonical row, got %+v", ev.HomeTeam)
	}
	if ev.Competition.ID != "comp-1" {
		t.Fatalf("expected competition swapped for canonical row, got %+v", ev.Competition)
	}
	// Unmatched names stay as parsed and are inserted as new later.
	if ev.AwayTeam.ID != "" || ev.AwayTeam.Name != "Getafe" {
		t.Fatalf("expected unknown away team untouched, got %+v", ev.AwayTeam)
	}
}

func TestCorrectionService_Correct_Idempotent(t *testing.T) {
	service, _, _ := newCorrectionFixture(t)

	ev := &event.Event{
		Kind:        event.KindMatch,
		Competition: &competition.Competition{Name: "La Liga"},
		HomeTeam:    &team.Team{Name: "Barcelona"},
		AwayTeam:    &team.Team{Name: "Getafe"},
	}

	for i := 0; i < 2; i++ {
		if err := service.Correct(t.Context(), ev); err != nil {
			t.Fatalf("correct pass %d failed: %v", i, err)
		}
	}
	if ev.HomeTeam.ID != "team-1" {
		t.Fatalf("expected stable canonical team after repeat correction, got %+v", ev.HomeTeam)
	}
}

func TestCorrectionService_Correct_RequiredFieldMissing(t *testing.T) {
	service, _, _ := newCorrectionFixture(t)

	ev := &event.Event{
		Kind:     event.KindMatch,
		HomeTeam: &team.Team{Name: "Barca"},
		AwayTeam: &team.Team{Name: "Getafe"},
	}

	if err := service.Correct(t.Context(), ev); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil competition, got %v", err)
	}
}
