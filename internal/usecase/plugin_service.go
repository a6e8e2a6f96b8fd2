package usecase

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tomasbot/matchday/internal/domain/datasource"
)

// PluginService keeps the registry of ingest plugins and their enabled
// state. State is process-local; a restart re-enables everything.
type PluginService struct {
	mu      sync.RWMutex
	plugins map[string]datasource.Plugin
	enabled map[string]bool
}

func NewPluginService(plugins ...datasource.Plugin) *PluginService {
	s := &PluginService{
		plugins: make(map[string]datasource.Plugin),
		enabled: make(map[string]bool),
	}
	for _, p := range plugins {
		s.Register(p)
	}
	return s
}

// Register adds a plugin and enables it. Re-registering under the same ID
// replaces the previous plugin.
func (s *PluginService) Register(p datasource.Plugin) {
	if p == nil || p.ID() == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plugins[p.ID()] = p
	s.enabled[p.ID()] = true
}

func (s *PluginService) Get(id string) (datasource.Plugin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.plugins[id]
	if !ok {
		return nil, fmt.Errorf("%w: plugin %q", ErrNotFound, id)
	}
	return p, nil
}

func (s *PluginService) Enable(id string) error {
	return s.setEnabled(id, true)
}

func (s *PluginService) Disable(id string) error {
	return s.setEnabled(id, false)
}

func (s *PluginService) setEnabled(id string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plugins[id]; !ok {
		return fmt.Errorf("%w: plugin %q", ErrNotFound, id)
	}
	s.enabled[id] = enabled
	return nil
}

func (s *PluginService) IsEnabled(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled[id]
}

// EnabledPlugins returns the enabled plugins sorted by ID for stable
// refresh ordering.
func (s *PluginService) EnabledPlugins() []datasource.Plugin {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]datasource.Plugin, 0, len(s.plugins))
	for id, p := range s.plugins {
		if s.enabled[id] {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// ValidateSource delegates source validation to the owning plugin.
func (s *PluginService) ValidateSource(src datasource.DataSource) error {
	if err := src.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	p, err := s.Get(src.PluginID)
	if err != nil {
		return err
	}
	if err := p.ValidateSource(src); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return nil
}
