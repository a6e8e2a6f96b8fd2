package parsing

import (
	"net/url"

	"github.com/tomasbot/matchday/internal/domain/datasource"
	"github.com/tomasbot/matchday/internal/domain/event"
	"github.com/tomasbot/matchday/internal/domain/video"
	"github.com/tomasbot/matchday/internal/platform/logging"
)

// Assembler chains the per-type candidates of one text block into a
// complete event: links are zipped onto files, files grouped into
// per-part packs, packs attached to file sources, and the sources hung
// off the first complete event candidate. A block whose chain does not
// fully resolve yields no event and is dropped quietly.
type Assembler struct {
	parser *Parser
	logger *logging.Logger
}

func NewAssembler(parser *Parser, logger *logging.Logger) *Assembler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Assembler{parser: parser, logger: logger}
}

// AssembleBlock parses one raw block with the source's pack and returns
// the assembled event, or nil when the block holds no complete event.
// Only configuration errors (bad kit) are returned as errors.
func (a *Assembler) AssembleBlock(src datasource.DataSource, block string) (*event.Event, error) {
	pack := src.Pack

	eventCandidates, err := a.parser.ParseType(pack.KitsFor(TypeMatch), block)
	if err != nil {
		return nil, err
	}
	highlightCandidates, err := a.parser.ParseType(pack.KitsFor(TypeHighlight), block)
	if err != nil {
		return nil, err
	}
	eventCandidates = append(eventCandidates, highlightCandidates...)

	sourceCandidates, err := a.parser.ParseType(pack.KitsFor(TypeFileSource), block)
	if err != nil {
		return nil, err
	}
	fileCandidates, err := a.parser.ParseType(pack.KitsFor(TypeFile), block)
	if err != nil {
		return nil, err
	}
	links, err := a.parser.ParseURLs(pack.KitsFor(TypeURL), block)
	if err != nil {
		return nil, err
	}

	files := zipLinks(toFiles(fileCandidates), links)
	packs := groupFilesByPart(files)
	sources := attachPacks(toFileSources(sourceCandidates), packs)

	for _, candidate := range eventCandidates {
		ev, ok := candidate.(*event.Event)
		if !ok {
			continue
		}
		ev.FileSources = sources
		if ev.Complete() {
			return ev, nil
		}
		ev.FileSources = nil
	}

	if len(eventCandidates) > 0 || len(sources) > 0 {
		a.logger.Debug("dropping incomplete parse chain",
			"source", src.ID,
			"events", len(eventCandidates),
			"fileSources", len(sources),
			"files", len(files))
	}

	return nil, nil
}

func toFiles(candidates []any) []*video.File {
	out := make([]*video.File, 0, len(candidates))
	for _, candidate := range candidates {
		if f, ok := candidate.(*video.File); ok {
			out = append(out, f)
		}
	}
	return out
}

func toFileSources(candidates []any) []*video.FileSource {
	out := make([]*video.FileSource, 0, len(candidates))
	for _, candidate := range candidates {
		if src, ok := candidate.(*video.FileSource); ok {
			out = append(out, src)
		}
	}
	return out
}

// zipLinks assigns extracted links, in document order, to files that did
// not capture their own external URL. Files left without a URL cannot be
// played and are dropped.
func zipLinks(files []*video.File, links []*url.URL) []*video.File {
	next := 0
	out := make([]*video.File, 0, len(files))
	for _, f := range files {
		if f.ExternalURL == nil && next < len(links) {
			f.ExternalURL = links[next]
			f.ID = video.FileID(f.ExternalURL)
			next++
		}
		if f.ExternalURL != nil {
			out = append(out, f)
		}
	}
	return out
}

// groupFilesByPart folds a flat file list into per-source packs: a new
// pack starts whenever a part identifier repeats, mirroring how feeds
// list one source's parts consecutively.
func groupFilesByPart(files []*video.File) [][]*video.File {
	var packs [][]*video.File
	var current []*video.File
	seen := make(map[video.PartIdentifier]struct{})

	for _, f := range files {
		if _, dup := seen[f.Part]; dup && f.Part != video.PartDefault {
			packs = append(packs, current)
			current = nil
			seen = make(map[video.PartIdentifier]struct{})
		}
		seen[f.Part] = struct{}{}
		current = append(current, f)
	}
	if len(current) > 0 {
		packs = append(packs, current)
	}

	return packs
}

// attachPacks pairs file sources with file packs by position and keeps
// only sources that ended up with files.
func attachPacks(sources []*video.FileSource, packs [][]*video.File) []*video.FileSource {
	out := make([]*video.FileSource, 0, len(sources))
	for i, src := range sources {
		if i < len(packs) {
			src.Files = packs[i]
		}
		if len(src.Files) > 0 {
			out = append(out, src)
		}
	}
	return out
}
