// Package parsing applies pattern-kit packs to raw text blocks and
// assembles the typed candidates into complete events. Decoding is table
// driven: each target type registers a constructor and per-field setters,
// so kits reference fields by name without any runtime reflection.
package parsing

import (
	"fmt"
	"strings"

	"github.com/tomasbot/matchday/internal/domain/competition"
	"github.com/tomasbot/matchday/internal/domain/event"
	"github.com/tomasbot/matchday/internal/domain/team"
	"github.com/tomasbot/matchday/internal/domain/video"
)

// Target type discriminators used in pattern kits.
const (
	TypeMatch      = "match"
	TypeHighlight  = "highlight"
	TypeFileSource = "file-source"
	TypeFile       = "file"
	TypeURL        = "url"
)

// Setter assigns one captured substring to a field of an entity under
// construction. A returned error skips the field, not the entity.
type Setter func(entity any, raw string) error

// Decoder builds entities of one target type from captured text.
type Decoder struct {
	Type    string
	New     func() any
	Setters map[string]Setter
}

// Registry maps type discriminators to decoders.
type Registry struct {
	decoders map[string]*Decoder
}

// NewRegistry returns a registry with the built-in event, file-source and
// file decoders registered.
func NewRegistry() *Registry {
	r := &Registry{decoders: make(map[string]*Decoder)}
	r.Register(eventDecoder(TypeMatch, event.KindMatch))
	r.Register(eventDecoder(TypeHighlight, event.KindHighlight))
	r.Register(fileSourceDecoder())
	r.Register(fileDecoder())
	return r
}

func (r *Registry) Register(d *Decoder) {
	if d == nil || d.Type == "" {
		return
	}
	r.decoders[d.Type] = d
}

func (r *Registry) Decoder(typeName string) (*Decoder, bool) {
	d, ok := r.decoders[typeName]
	return d, ok
}

func eventDecoder(typeName string, kind event.Kind) *Decoder {
	return &Decoder{
		Type: typeName,
		New:  func() any { return &event.Event{Kind: kind} },
		Setters: map[string]Setter{
			"competition": func(entity any, raw string) error {
				ev := entity.(*event.Event)
				name := strings.TrimSpace(raw)
				if name == "" {
					return fmt.Errorf("competition name is empty")
				}
				ev.Competition = &competition.Competition{Name: name}
				return nil
			},
			"homeTeam": func(entity any, raw string) error {
				ev := entity.(*event.Event)
				name := strings.TrimSpace(raw)
				if name == "" {
					return fmt.Errorf("home team name is empty")
				}
				ev.HomeTeam = &team.Team{Name: name}
				return nil
			},
			"awayTeam": func(entity any, raw string) error {
				ev := entity.(*event.Event)
				name := strings.TrimSpace(raw)
				if name == "" {
					return fmt.Errorf("away team name is empty")
				}
				ev.AwayTeam = &team.Team{Name: name}
				return nil
			},
			"season": func(entity any, raw string) error {
				ev := entity.(*event.Event)
				season, err := coerceSeason(raw)
				if err != nil {
					return err
				}
				ev.Season = season
				return nil
			},
			"fixture": func(entity any, raw string) error {
				ev := entity.(*event.Event)
				if number, err := coerceInt(raw); err == nil {
					ev.Fixture = event.NewFixture("Matchday", number)
					return nil
				}
				title := strings.TrimSpace(raw)
				if title == "" {
					return fmt.Errorf("fixture text is empty")
				}
				ev.Fixture = event.NewFixture(title, 0)
				return nil
			},
			"date": func(entity any, raw string) error {
				ev := entity.(*event.Event)
				date, err := coerceDate(raw)
				if err != nil {
					return err
				}
				ev.Date = date
				return nil
			},
		},
	}
}

func fileSourceDecoder() *Decoder {
	return &Decoder{
		Type: TypeFileSource,
		New:  func() any { return &video.FileSource{} },
		Setters: map[string]Setter{
			"channel": func(entity any, raw string) error {
				src := entity.(*video.FileSource)
				src.Channel = strings.TrimSpace(raw)
				return nil
			},
			"source": func(entity any, raw string) error {
				src := entity.(*video.FileSource)
				src.Source = strings.TrimSpace(raw)
				return nil
			},
			"resolution": func(entity any, raw string) error {
				src := entity.(*video.FileSource)
				resolution, err := coerceResolution(raw)
				if err != nil {
					return err
				}
				src.Resolution = resolution
				return nil
			},
			"languages": func(entity any, raw string) error {
				src := entity.(*video.FileSource)
				src.Languages = coerceLanguages(raw)
				return nil
			},
			"bitrate": func(entity any, raw string) error {
				src := entity.(*video.FileSource)
				bitrate, err := coerceBitrate(raw)
				if err != nil {
					return err
				}
				src.Bitrate = bitrate
				return nil
			},
			"audioChannels": func(entity any, raw string) error {
				src := entity.(*video.FileSource)
				channels, err := coerceInt(raw)
				if err != nil {
					return err
				}
				src.AudioChannels = channels
				return nil
			},
			"fileSize": func(entity any, raw string) error {
				src := entity.(*video.FileSource)
				size, err := coerceFileSize(raw)
				if err != nil {
					return err
				}
				src.FileSize = size
				return nil
			},
			"approximateDuration": func(entity any, raw string) error {
				src := entity.(*video.FileSource)
				src.ApproximateDuration = strings.TrimSpace(raw)
				return nil
			},
		},
	}
}

func fileDecoder() *Decoder {
	return &Decoder{
		Type: TypeFile,
		// Part starts at the default sentinel, not the zero value, so a
		// kit without a part capture yields an unlabeled file instead of
		// a pre-match one.
		New: func() any { return &video.File{Part: video.PartDefault} },
		Setters: map[string]Setter{
			"part": func(entity any, raw string) error {
				f := entity.(*video.File)
				part, err := coercePart(raw)
				if err != nil {
					return err
				}
				f.Part = part
				return nil
			},
			"externalUrl": func(entity any, raw string) error {
				f := entity.(*video.File)
				parsed, err := coerceURL(raw)
				if err != nil {
					return err
				}
				f.ExternalURL = parsed
				f.ID = video.FileID(parsed)
				return nil
			},
		},
	}
}
