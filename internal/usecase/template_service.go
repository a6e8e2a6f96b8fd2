package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomasbot/matchday/internal/domain/patternkit"
	"github.com/tomasbot/matchday/internal/parsing"
)

// TemplateService serves pattern kit templates to the admin surface and
// seeds the built-in set at startup.
type TemplateService struct {
	repo patternkit.TemplateRepository
}

func NewTemplateService(repo patternkit.TemplateRepository) *TemplateService {
	return &TemplateService{repo: repo}
}

func (s *TemplateService) ListTemplates(ctx context.Context) ([]patternkit.Template, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TemplateService.ListTemplates")
	defer span.End()

	items, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return items, nil
}

func (s *TemplateService) FetchTemplateByType(ctx context.Context, typeName string) (patternkit.Template, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TemplateService.FetchTemplateByType")
	defer span.End()

	typeName = strings.TrimSpace(typeName)
	if typeName == "" {
		return patternkit.Template{}, fmt.Errorf("%w: template type is required", ErrInvalidInput)
	}

	item, found, err := s.repo.GetTemplateByType(ctx, typeName)
	if err != nil {
		return patternkit.Template{}, fmt.Errorf("get template %q: %w", typeName, err)
	}
	if !found {
		return patternkit.Template{}, fmt.Errorf("%w: template %q", ErrNotFound, typeName)
	}
	return item, nil
}

// SeedBuiltinTemplates installs the default templates for the built-in
// parse targets. Existing templates of the same type are left untouched,
// so admin edits survive restarts.
func (s *TemplateService) SeedBuiltinTemplates(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TemplateService.SeedBuiltinTemplates")
	defer span.End()

	for _, tmpl := range builtinTemplates() {
		if _, found, err := s.repo.GetTemplateByType(ctx, tmpl.Type); err != nil {
			return fmt.Errorf("check template %q: %w", tmpl.Type, err)
		} else if found {
			continue
		}
		if _, err := s.repo.SaveTemplate(ctx, tmpl); err != nil {
			return fmt.Errorf("seed template %q: %w", tmpl.Type, err)
		}
	}
	return nil
}

func builtinTemplates() []patternkit.Template {
	teamTemplate := patternkit.Template{Type: "team", Fields: []string{"name"}}
	competitionTemplate := patternkit.Template{Type: "competition", Fields: []string{"name"}}

	return []patternkit.Template{
		{
			Type:    parsing.TypeMatch,
			Fields:  []string{"competition", "homeTeam", "awayTeam", "season", "fixture", "date"},
			Related: []patternkit.Template{competitionTemplate, teamTemplate},
		},
		{
			Type:   parsing.TypeHighlight,
			Fields: []string{"competition", "season", "fixture", "date"},
			Related: []patternkit.Template{
				competitionTemplate,
			},
		},
		{
			Type: parsing.TypeFileSource,
			Fields: []string{
				"channel", "source", "resolution", "languages",
				"bitrate", "audioChannels", "fileSize", "approximateDuration",
			},
		},
		{
			Type:   parsing.TypeFile,
			Fields: []string{"part", "externalUrl"},
		},
	}
}
