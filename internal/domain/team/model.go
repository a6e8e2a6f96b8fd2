package team

import (
	"fmt"
	"strings"
)

// Team is a football club appearing in catalogued events. Name holds the
// canonical (proper) name; source-feed spellings are mapped onto it by the
// correction pass.
type Team struct {
	ID      string
	Name    string
	Country string
}

func (t *Team) CanonicalName() string {
	if t == nil {
		return ""
	}
	return t.Name
}

func (t *Team) Validate() error {
	if t == nil {
		return fmt.Errorf("team is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
