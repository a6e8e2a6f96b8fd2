// Package synonym holds the canonical-name registry: a ProperName is the
// single canonical label for a domain entity, owning the alternate
// spellings sources use for it.
package synonym

import (
	"fmt"
	"strings"
)

// ProperName is the canonical label for a team or competition. Synonym
// names must be globally unique and must not collide with any proper
// name; repositories enforce this at insert.
type ProperName struct {
	ID       string
	Name     string
	Synonyms []Synonym
}

// Synonym is one alternate spelling or abbreviation pointing back at its
// owning proper name.
type Synonym struct {
	ID           string
	Name         string
	ProperNameID string
}

func (p *ProperName) Validate() error {
	if p == nil {
		return fmt.Errorf("proper name is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("proper name text is required")
	}

	seen := make(map[string]struct{}, len(p.Synonyms))
	for _, syn := range p.Synonyms {
		name := strings.TrimSpace(syn.Name)
		if name == "" {
			return fmt.Errorf("proper name %q: synonym text is required", p.Name)
		}
		if name == p.Name {
			return fmt.Errorf("proper name %q: synonym duplicates the proper name itself", p.Name)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("proper name %q: duplicate synonym %q", p.Name, name)
		}
		seen[name] = struct{}{}
	}

	return nil
}
