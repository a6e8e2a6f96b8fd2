// Package patternkit holds the declarative extraction rules attached to a
// data source: a Kit is one compiled text pattern plus a capture-group to
// field-name map for one target type, a Pack groups kits per type, and a
// Template describes the fields a type expects for admin configuration.
package patternkit

import (
	"fmt"
	"regexp"
	"sync"
)

// Kit is a single typed extraction rule. Type names a decoder registered
// with the parsing registry; Fields maps 1-based capture-group ordinals to
// field names on that type. The pattern compiles lazily on first use and
// validation happens at pack registration, not construction.
type Kit struct {
	ID         string         `json:"id,omitempty"`
	Type       string         `json:"type"`
	Expression string         `json:"expression"`
	Fields     map[int]string `json:"fields,omitempty"`

	compileOnce sync.Once
	compiled    *regexp.Regexp
	compileErr  error
}

func NewKit(typeName, expression string, fields map[int]string) *Kit {
	return &Kit{Type: typeName, Expression: expression, Fields: fields}
}

// Pattern compiles the expression on first call and caches the result.
func (k *Kit) Pattern() (*regexp.Regexp, error) {
	k.compileOnce.Do(func() {
		k.compiled, k.compileErr = regexp.Compile(k.Expression)
	})
	if k.compileErr != nil {
		return nil, fmt.Errorf("pattern kit %q (type %s): %w", k.ID, k.Type, k.compileErr)
	}

	return k.compiled, nil
}

// Validate checks the expression compiles and every mapped group ordinal
// exists in the pattern. Called when a pack is registered on a data
// source; a failure here is a configuration error, not a parse failure.
func (k *Kit) Validate() error {
	if k == nil {
		return fmt.Errorf("pattern kit is required")
	}
	if k.Type == "" {
		return fmt.Errorf("pattern kit %q: type is required", k.ID)
	}

	pattern, err := k.Pattern()
	if err != nil {
		return err
	}

	groupCount := pattern.NumSubexp()
	for index, field := range k.Fields {
		if index < 1 || index > groupCount {
			return fmt.Errorf(
				"pattern kit %q (type %s): field %q mapped to group %d, pattern has %d groups",
				k.ID, k.Type, field, index, groupCount)
		}
	}

	return nil
}
