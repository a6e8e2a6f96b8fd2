package datasource

import (
	"fmt"
	"strings"

	"github.com/tomasbot/matchday/internal/domain/patternkit"
)

// DataSource is one configured remote feed: which plugin fetches it, where
// it lives, what entity type it yields, and (for plaintext feeds) the
// pattern-kit pack used to extract entities from its posts. Multiple data
// sources may share a plugin.
type DataSource struct {
	ID       string
	PluginID string
	Title    string
	BaseURI  string
	Type     string
	Enabled  bool
	Pack     *patternkit.Pack
}

func (d *DataSource) Validate() error {
	if d == nil {
		return fmt.Errorf("data source is required")
	}
	if strings.TrimSpace(d.PluginID) == "" {
		return fmt.Errorf("data source plugin id is required")
	}
	if strings.TrimSpace(d.BaseURI) == "" {
		return fmt.Errorf("data source base uri is required")
	}
	if strings.TrimSpace(d.Type) == "" {
		return fmt.Errorf("data source type is required")
	}
	if err := d.Pack.Validate(); err != nil {
		return fmt.Errorf("data source %q: %w", d.ID, err)
	}

	return nil
}
