package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tomasbot/matchday/internal/domain/patternkit"
)

type TemplateRepository struct {
	mu        sync.RWMutex
	templates map[string]patternkit.Template
}

func NewTemplateRepository(templates []patternkit.Template) *TemplateRepository {
	byType := make(map[string]patternkit.Template, len(templates))
	for _, item := range templates {
		byType[item.Type] = item
	}

	return &TemplateRepository{templates: byType}
}

func (r *TemplateRepository) ListTemplates(_ context.Context) ([]patternkit.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]patternkit.Template, 0, len(r.templates))
	for _, item := range r.templates {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })

	return out, nil
}

func (r *TemplateRepository) GetTemplateByType(_ context.Context, typeName string) (patternkit.Template, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.templates[typeName]
	return item, ok, nil
}

func (r *TemplateRepository) SaveTemplate(_ context.Context, item patternkit.Template) (patternkit.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(item.Type) == "" {
		return patternkit.Template{}, errMissingID
	}
	r.templates[item.Type] = item

	return item, nil
}
