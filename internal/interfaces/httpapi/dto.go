package httpapi

import (
	"time"

	"github.com/tomasbot/matchday/internal/domain/datasource"
	"github.com/tomasbot/matchday/internal/domain/event"
	"github.com/tomasbot/matchday/internal/domain/patternkit"
	"github.com/tomasbot/matchday/internal/domain/synonym"
	"github.com/tomasbot/matchday/internal/domain/video"
	"github.com/tomasbot/matchday/internal/usecase"
)

type patternKitDTO struct {
	ID         string         `json:"id,omitempty"`
	Type       string         `json:"type" validate:"required"`
	Expression string         `json:"expression" validate:"required"`
	Fields     map[int]string `json:"fields,omitempty"`
}

type dataSourceDTO struct {
	ID       string          `json:"id,omitempty"`
	PluginID string          `json:"plugin_id" validate:"required"`
	Title    string          `json:"title"`
	BaseURI  string          `json:"base_uri" validate:"required,url"`
	Type     string          `json:"type" validate:"required"`
	Enabled  bool            `json:"enabled"`
	Kits     []patternKitDTO `json:"kits" validate:"dive"`
}

func dataSourceToDTO(src datasource.DataSource) dataSourceDTO {
	dto := dataSourceDTO{
		ID:       src.ID,
		PluginID: src.PluginID,
		Title:    src.Title,
		BaseURI:  src.BaseURI,
		Type:     src.Type,
		Enabled:  src.Enabled,
	}
	if src.Pack != nil {
		for _, kit := range src.Pack.Kits {
			dto.Kits = append(dto.Kits, patternKitDTO{
				ID:         kit.ID,
				Type:       kit.Type,
				Expression: kit.Expression,
				Fields:     kit.Fields,
			})
		}
	}
	return dto
}

func dataSourceFromDTO(dto dataSourceDTO) datasource.DataSource {
	src := datasource.DataSource{
		ID:       dto.ID,
		PluginID: dto.PluginID,
		Title:    dto.Title,
		BaseURI:  dto.BaseURI,
		Type:     dto.Type,
		Enabled:  dto.Enabled,
	}
	if len(dto.Kits) > 0 {
		pack := patternkit.NewPack()
		for _, kit := range dto.Kits {
			k := patternkit.NewKit(kit.Type, kit.Expression, kit.Fields)
			k.ID = kit.ID
			pack.Add(k)
		}
		src.Pack = pack
	}
	return src
}

type properNameDTO struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name" validate:"required"`
	Synonyms []string `json:"synonyms" validate:"dive,required"`
}

func properNameToDTO(item synonym.ProperName) properNameDTO {
	dto := properNameDTO{ID: item.ID, Name: item.Name}
	for _, syn := range item.Synonyms {
		dto.Synonyms = append(dto.Synonyms, syn.Name)
	}
	return dto
}

type eventSummaryDTO struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Competition string `json:"competition,omitempty"`
	Season      string `json:"season,omitempty"`
	Fixture     string `json:"fixture,omitempty"`
	Date        string `json:"date,omitempty"`
	SourceCount int    `json:"source_count"`
}

func eventToSummaryDTO(ev *event.Event) eventSummaryDTO {
	dto := eventSummaryDTO{
		ID:          ev.ID,
		Kind:        string(ev.Kind),
		Title:       ev.Title(),
		Competition: ev.Competition.CanonicalName(),
		Season:      ev.Season.String(),
		Fixture:     ev.Fixture.String(),
		SourceCount: len(ev.FileSources),
	}
	if !ev.Date.IsZero() {
		dto.Date = ev.Date.Format(time.RFC3339)
	}
	return dto
}

type fileSourceDTO struct {
	ID            string   `json:"id"`
	Channel       string   `json:"channel,omitempty"`
	Resolution    string   `json:"resolution"`
	Languages     []string `json:"languages,omitempty"`
	Bitrate       int64    `json:"bitrate,omitempty"`
	AudioChannels int      `json:"audio_channels,omitempty"`
	FileCount     int      `json:"file_count"`
}

func fileSourceToDTO(src *video.FileSource) fileSourceDTO {
	return fileSourceDTO{
		ID:            src.ID,
		Channel:       src.Channel,
		Resolution:    src.Resolution.String(),
		Languages:     src.Languages,
		Bitrate:       src.Bitrate,
		AudioChannels: src.AudioChannels,
		FileCount:     len(src.Files),
	}
}

type eventDetailDTO struct {
	eventSummaryDTO
	HomeTeam string          `json:"home_team,omitempty"`
	AwayTeam string          `json:"away_team,omitempty"`
	Sources  []fileSourceDTO `json:"sources"`
}

func eventToDetailDTO(ev *event.Event) eventDetailDTO {
	dto := eventDetailDTO{
		eventSummaryDTO: eventToSummaryDTO(ev),
		HomeTeam:        ev.HomeTeam.CanonicalName(),
		AwayTeam:        ev.AwayTeam.CanonicalName(),
	}
	for _, src := range ev.FileSources {
		dto.Sources = append(dto.Sources, fileSourceToDTO(src))
	}
	return dto
}

type playlistFileDTO struct {
	ID          string  `json:"id"`
	Part        string  `json:"part"`
	ExternalURL string  `json:"external_url,omitempty"`
	InternalURL string  `json:"internal_url,omitempty"`
	Duration    float64 `json:"duration"`
}

type playlistDTO struct {
	EventID          string            `json:"event_id"`
	Title            string            `json:"title"`
	Source           fileSourceDTO     `json:"source"`
	Files            []playlistFileDTO `json:"files"`
	UnlabeledDropped int               `json:"unlabeled_dropped,omitempty"`
}

func playlistToDTO(p usecase.Playlist) playlistDTO {
	dto := playlistDTO{
		EventID:          p.Event.ID,
		Title:            p.Event.Title(),
		Source:           fileSourceToDTO(p.Source),
		UnlabeledDropped: p.UnlabeledDropped,
	}
	for _, f := range p.Files {
		item := playlistFileDTO{
			ID:       f.ID,
			Part:     f.Part.String(),
			Duration: f.Duration(),
		}
		if f.ExternalURL != nil {
			item.ExternalURL = f.ExternalURL.String()
		}
		if f.InternalURL != nil {
			item.InternalURL = f.InternalURL.String()
		}
		dto.Files = append(dto.Files, item)
	}
	return dto
}
