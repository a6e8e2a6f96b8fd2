package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomasbot/matchday/internal/domain/competition"
	"github.com/tomasbot/matchday/internal/domain/correction"
	"github.com/tomasbot/matchday/internal/domain/team"
	"github.com/tomasbot/matchday/internal/domain/video"
)

// Kind discriminates the event variant. A match carries home and away
// teams; a highlight reel does not.
type Kind string

const (
	KindMatch     Kind = "MATCH"
	KindHighlight Kind = "HIGHLIGHT"
)

// Event is a catalogued broadcast: shared fields for every variant plus
// the match-only team pair. HomeTeam/AwayTeam are set only when Kind is
// KindMatch.
type Event struct {
	ID          string
	Kind        Kind
	Competition *competition.Competition
	Season      *Season
	Fixture     *Fixture
	Date        time.Time
	HomeTeam    *team.Team
	AwayTeam    *team.Team
	FileSources []*video.FileSource
}

func (e *Event) Title() string {
	if e == nil {
		return ""
	}

	comp := e.Competition.CanonicalName()
	if e.Kind == KindMatch {
		return fmt.Sprintf("%s: %s vs. %s", comp, e.HomeTeam.CanonicalName(), e.AwayTeam.CanonicalName())
	}
	if e.Fixture != nil && e.Fixture.Title != "" {
		return fmt.Sprintf("%s: %s", comp, e.Fixture.Title)
	}

	return comp
}

// NaturalKey identifies the event for idempotent upserts across repeat
// refreshes of the same source.
func (e *Event) NaturalKey() string {
	if e == nil {
		return ""
	}

	parts := []string{
		string(e.Kind),
		e.Competition.CanonicalName(),
		e.Season.String(),
		e.Fixture.Key(),
		e.HomeTeam.CanonicalName(),
		e.AwayTeam.CanonicalName(),
		e.Date.UTC().Format("2006-01-02"),
	}

	return strings.ToLower(strings.Join(parts, "|"))
}

func (e *Event) AddFileSource(src *video.FileSource) {
	if e == nil || src == nil {
		return
	}
	e.FileSources = append(e.FileSources, src)
}

// Complete reports whether the composite parse chain resolved everything
// a playable event needs. Partial chains are dropped by the parser.
func (e *Event) Complete() bool {
	if e == nil || e.Competition == nil || len(e.FileSources) == 0 {
		return false
	}
	if e.Kind == KindMatch && (e.HomeTeam == nil || e.AwayTeam == nil) {
		return false
	}
	for _, src := range e.FileSources {
		if len(src.Files) == 0 {
			return false
		}
	}

	return true
}

func (e *Event) Validate() error {
	if e == nil {
		return fmt.Errorf("event is required")
	}
	if err := e.Competition.Validate(); err != nil {
		return err
	}
	if e.Kind == KindMatch {
		if err := e.HomeTeam.Validate(); err != nil {
			return fmt.Errorf("home team: %w", err)
		}
		if err := e.AwayTeam.Validate(); err != nil {
			return fmt.Errorf("away team: %w", err)
		}
	}
	if len(e.FileSources) == 0 {
		return fmt.Errorf("event has no file sources")
	}

	return nil
}

// CorrectableFields exposes the alias-resolvable fields for the correction
// pass. Teams are required only for the match variant.
func (e *Event) CorrectableFields() []correction.FieldRef {
	fields := []correction.FieldRef{
		{
			Name: "competition",
			Kind: "competition",
			Mode: correction.ModeRequired,
			Get: func() correction.Named {
				if e.Competition == nil {
					return nil
				}
				return e.Competition
			},
			Set: func(v correction.Named) error {
				comp, ok := v.(*competition.Competition)
				if !ok {
					return fmt.Errorf("competition field: unexpected type %T", v)
				}
				e.Competition = comp
				return nil
			},
		},
	}

	if e.Kind != KindMatch {
		return fields
	}

	return append(fields,
		correction.FieldRef{
			Name: "homeTeam",
			Kind: "team",
			Mode: correction.ModeRequired,
			Get: func() correction.Named {
				if e.HomeTeam == nil {
					return nil
				}
				return e.HomeTeam
			},
			Set: func(v correction.Named) error {
				t, ok := v.(*team.Team)
				if !ok {
					return fmt.Errorf("homeTeam field: unexpected type %T", v)
				}
				e.HomeTeam = t
				return nil
			},
		},
		correction.FieldRef{
			Name: "awayTeam",
			Kind: "team",
			Mode: correction.ModeRequired,
			Get: func() correction.Named {
				if e.AwayTeam == nil {
					return nil
				}
				return e.AwayTeam
			},
			Set: func(v correction.Named) error {
				t, ok := v.(*team.Team)
				if !ok {
					return fmt.Errorf("awayTeam field: unexpected type %T", v)
				}
				e.AwayTeam = t
				return nil
			},
		},
	)
}
