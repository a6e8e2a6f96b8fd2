package competition

import (
	"fmt"
	"strings"
)

// Competition is a tournament or league that events belong to. Name holds
// the canonical (proper) name; source-feed spellings are mapped onto it by
// the correction pass.
type Competition struct {
	ID      string
	Name    string
	Country string
}

func (c *Competition) CanonicalName() string {
	if c == nil {
		return ""
	}
	return c.Name
}

func (c *Competition) Validate() error {
	if c == nil {
		return fmt.Errorf("competition is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("competition name is required")
	}

	return nil
}
