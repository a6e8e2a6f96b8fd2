package postgres

import (
	"fmt"
	"net/url"
	"time"

	"github.com/tomasbot/matchday/internal/domain/competition"
	"github.com/tomasbot/matchday/internal/domain/event"
	"github.com/tomasbot/matchday/internal/domain/team"
	"github.com/tomasbot/matchday/internal/domain/video"
)

type eventTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	NaturalKey string    `db:"natural_key"`
	Kind       string    `db:"kind"`
	EventDate  time.Time `db:"event_date"`
	Payload    []byte    `db:"payload"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// eventPayload is the JSONB shape of an event. URLs are stored as strings;
// the rest mirrors the domain model closely enough to round-trip.
type eventPayload struct {
	Kind        string              `json:"kind"`
	Competition *namedPayload       `json:"competition,omitempty"`
	Season      *seasonPayload      `json:"season,omitempty"`
	Fixture     *fixturePayload     `json:"fixture,omitempty"`
	Date        time.Time           `json:"date"`
	HomeTeam    *namedPayload       `json:"home_team,omitempty"`
	AwayTeam    *namedPayload       `json:"away_team,omitempty"`
	FileSources []fileSourcePayload `json:"file_sources"`
}

type namedPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

type seasonPayload struct {
	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`
}

type fixturePayload struct {
	Title  string `json:"title,omitempty"`
	Number int    `json:"number,omitempty"`
}

type fileSourcePayload struct {
	ID                  string        `json:"id"`
	Channel             string        `json:"channel,omitempty"`
	Source              string        `json:"source,omitempty"`
	Resolution          int           `json:"resolution"`
	Languages           []string      `json:"languages,omitempty"`
	Bitrate             int64         `json:"bitrate,omitempty"`
	AudioChannels       int           `json:"audio_channels,omitempty"`
	FileSize            int64         `json:"file_size,omitempty"`
	ApproximateDuration string        `json:"approximate_duration,omitempty"`
	Files               []filePayload `json:"files"`
}

type filePayload struct {
	ID            string           `json:"id"`
	Part          int              `json:"part"`
	ExternalURL   string           `json:"external_url,omitempty"`
	InternalURL   string           `json:"internal_url,omitempty"`
	Metadata      *metadataPayload `json:"metadata,omitempty"`
	LastRefreshed time.Time        `json:"last_refreshed,omitempty"`
}

type metadataPayload struct {
	Duration   float64 `json:"duration,omitempty"`
	VideoCodec string  `json:"video_codec,omitempty"`
	AudioCodec string  `json:"audio_codec,omitempty"`
}

func payloadFromEvent(ev *event.Event) eventPayload {
	p := eventPayload{
		Kind: string(ev.Kind),
		Date: ev.Date,
	}
	if ev.Competition != nil {
		p.Competition = &namedPayload{ID: ev.Competition.ID, Name: ev.Competition.Name, Country: ev.Competition.Country}
	}
	if ev.Season != nil {
		p.Season = &seasonPayload{StartYear: ev.Season.StartYear, EndYear: ev.Season.EndYear}
	}
	if ev.Fixture != nil {
		p.Fixture = &fixturePayload{Title: ev.Fixture.Title, Number: ev.Fixture.Number}
	}
	if ev.HomeTeam != nil {
		p.HomeTeam = &namedPayload{ID: ev.HomeTeam.ID, Name: ev.HomeTeam.Name, Country: ev.HomeTeam.Country}
	}
	if ev.AwayTeam != nil {
		p.AwayTeam = &namedPayload{ID: ev.AwayTeam.ID, Name: ev.AwayTeam.Name, Country: ev.AwayTeam.Country}
	}
	for _, src := range ev.FileSources {
		p.FileSources = append(p.FileSources, payloadFromFileSource(src))
	}
	return p
}

func payloadFromFileSource(src *video.FileSource) fileSourcePayload {
	p := fileSourcePayload{
		ID:                  src.ID,
		Channel:             src.Channel,
		Source:              src.Source,
		Resolution:          int(src.Resolution),
		Languages:           src.Languages,
		Bitrate:             src.Bitrate,
		AudioChannels:       src.AudioChannels,
		FileSize:            src.FileSize,
		ApproximateDuration: src.ApproximateDuration,
	}
	for _, f := range src.Files {
		fp := filePayload{
			ID:            f.ID,
			Part:          int(f.Part),
			LastRefreshed: f.LastRefreshed,
		}
		if f.ExternalURL != nil {
			fp.ExternalURL = f.ExternalURL.String()
		}
		if f.InternalURL != nil {
			fp.InternalURL = f.InternalURL.String()
		}
		if f.Metadata != nil {
			fp.Metadata = &metadataPayload{
				Duration:   f.Metadata.Duration,
				VideoCodec: f.Metadata.VideoCodec,
				AudioCodec: f.Metadata.AudioCodec,
			}
		}
		p.Files = append(p.Files, fp)
	}
	return p
}

func eventFromPayload(publicID string, p eventPayload) (*event.Event, error) {
	ev := &event.Event{
		ID:   publicID,
		Kind: event.Kind(p.Kind),
		Date: p.Date,
	}
	if p.Competition != nil {
		ev.Competition = &competition.Competition{ID: p.Competition.ID, Name: p.Competition.Name, Country: p.Competition.Country}
	}
	if p.Season != nil {
		ev.Season = event.NewSeason(p.Season.StartYear, p.Season.EndYear)
	}
	if p.Fixture != nil {
		ev.Fixture = event.NewFixture(p.Fixture.Title, p.Fixture.Number)
	}
	if p.HomeTeam != nil {
		ev.HomeTeam = &team.Team{ID: p.HomeTeam.ID, Name: p.HomeTeam.Name, Country: p.HomeTeam.Country}
	}
	if p.AwayTeam != nil {
		ev.AwayTeam = &team.Team{ID: p.AwayTeam.ID, Name: p.AwayTeam.Name, Country: p.AwayTeam.Country}
	}

	for _, sp := range p.FileSources {
		src := &video.FileSource{
			ID:                  sp.ID,
			Channel:             sp.Channel,
			Source:              sp.Source,
			Resolution:          video.Resolution(sp.Resolution),
			Languages:           sp.Languages,
			Bitrate:             sp.Bitrate,
			AudioChannels:       sp.AudioChannels,
			FileSize:            sp.FileSize,
			ApproximateDuration: sp.ApproximateDuration,
		}
		for _, fp := range sp.Files {
			f := &video.File{
				ID:            fp.ID,
				Part:          video.PartIdentifier(fp.Part),
				LastRefreshed: fp.LastRefreshed,
			}
			if fp.ExternalURL != "" {
				u, err := url.Parse(fp.ExternalURL)
				if err != nil {
					return nil, fmt.Errorf("event %q: bad external url: %w", publicID, err)
				}
				f.ExternalURL = u
			}
			if fp.InternalURL != "" {
				u, err := url.Parse(fp.InternalURL)
				if err != nil {
					return nil, fmt.Errorf("event %q: bad internal url: %w", publicID, err)
				}
				f.InternalURL = u
			}
			if fp.Metadata != nil {
				f.Metadata = &video.StreamMetadata{
					Duration:   fp.Metadata.Duration,
					VideoCodec: fp.Metadata.VideoCodec,
					AudioCodec: fp.Metadata.AudioCodec,
				}
			}
			src.Files = append(src.Files, f)
		}
		ev.FileSources = append(ev.FileSources, src)
	}

	return ev, nil
}
