package patternkit

import (
	"fmt"
	"strings"
)

// Template is an admin-facing schema: the fields a target type expects a
// kit to extract, plus links to the templates of nested types (a match
// template references team and competition templates). Templates assist
// kit authoring only; parsing never consults them.
type Template struct {
	ID      string     `json:"id,omitempty"`
	Type    string     `json:"type"`
	Fields  []string   `json:"fields"`
	Related []Template `json:"related,omitempty"`
}

func (t Template) Validate() error {
	if strings.TrimSpace(t.Type) == "" {
		return fmt.Errorf("template type is required")
	}
	if len(t.Fields) == 0 {
		return fmt.Errorf("template %q: at least one field is required", t.Type)
	}

	return nil
}
