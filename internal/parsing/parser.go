package parsing

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/tomasbot/matchday/internal/domain/patternkit"
	"github.com/tomasbot/matchday/internal/platform/logging"
)

// Parser applies pattern kits to raw text blocks. It is pure and
// stateless per invocation: safe to share across goroutines as long as
// each call works on its own block.
type Parser struct {
	registry *Registry
	logger   *logging.Logger
}

func NewParser(registry *Registry, logger *logging.Logger) *Parser {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Parser{registry: registry, logger: logger}
}

// ValidatePack checks a pack against the decoder tables: every kit must
// compile, reference only existing capture groups, target a registered
// type, and map only fields that type knows. Called at pack registration
// so configuration errors surface to the administrator, not mid-refresh.
func (p *Parser) ValidatePack(pack *patternkit.Pack) error {
	if err := pack.Validate(); err != nil {
		return err
	}
	if pack == nil {
		return nil
	}

	for _, kit := range pack.Kits {
		if kit.Type == TypeURL {
			continue
		}
		decoder, ok := p.registry.Decoder(kit.Type)
		if !ok {
			return fmt.Errorf("pattern kit %q: unknown target type %q", kit.ID, kit.Type)
		}
		for _, field := range kit.Fields {
			if _, ok := decoder.Setters[field]; !ok {
				return fmt.Errorf("pattern kit %q (type %s): unknown field %q", kit.ID, kit.Type, field)
			}
		}
	}

	return nil
}

// ParseType runs every kit over the block in kit order and returns each
// match as a candidate entity. Candidates are not deduplicated; that is
// the correction/persistence stage's job. Parsing happens exactly once
// per call; the returned slice can be iterated any number of times.
func (p *Parser) ParseType(kits []*patternkit.Kit, block string) ([]any, error) {
	var out []any
	for _, kit := range kits {
		candidates, err := p.parseKit(kit, block)
		if err != nil {
			return nil, err
		}
		out = append(out, candidates...)
	}

	return out, nil
}

func (p *Parser) parseKit(kit *patternkit.Kit, block string) ([]any, error) {
	pattern, err := kit.Pattern()
	if err != nil {
		return nil, err
	}

	decoder, ok := p.registry.Decoder(kit.Type)
	if !ok {
		return nil, fmt.Errorf("pattern kit %q: unknown target type %q", kit.ID, kit.Type)
	}

	matches := pattern.FindAllStringSubmatch(block, -1)
	if matches == nil {
		return nil, nil
	}

	// Field indexes are applied in ordinal order for determinism.
	indexes := make([]int, 0, len(kit.Fields))
	for index := range kit.Fields {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	out := make([]any, 0, len(matches))
	for _, match := range matches {
		entity := decoder.New()
		for _, index := range indexes {
			field := kit.Fields[index]
			setter, ok := decoder.Setters[field]
			if !ok {
				return nil, fmt.Errorf("pattern kit %q (type %s): unknown field %q", kit.ID, kit.Type, field)
			}
			if index >= len(match) {
				continue
			}
			captured := match[index]
			if captured == "" {
				// Group did not participate; leave the field unset and
				// let downstream validation reject incomplete entities.
				continue
			}
			if err := setter(entity, captured); err != nil {
				p.logger.Debug("field coercion failed, leaving unset",
					"kit", kit.ID, "type", kit.Type, "field", field, "error", err)
			}
		}
		out = append(out, entity)
	}

	return out, nil
}

// ParseURLs extracts link candidates from the block using url-typed kits.
// A kit with capture groups yields group 1, otherwise the whole match.
// Malformed URLs are skipped.
func (p *Parser) ParseURLs(kits []*patternkit.Kit, block string) ([]*url.URL, error) {
	var out []*url.URL
	for _, kit := range kits {
		pattern, err := kit.Pattern()
		if err != nil {
			return nil, err
		}
		for _, match := range pattern.FindAllStringSubmatch(block, -1) {
			candidate := match[0]
			if pattern.NumSubexp() >= 1 && match[1] != "" {
				candidate = match[1]
			}
			parsed, err := coerceURL(candidate)
			if err != nil {
				p.logger.Debug("dropping malformed link", "kit", kit.ID, "error", err)
				continue
			}
			out = append(out, parsed)
		}
	}

	return out, nil
}
