package usecase

import (
	"fmt"
	"sort"

	"github.com/tomasbot/matchday/internal/domain/event"
	"github.com/tomasbot/matchday/internal/domain/video"
)

// VideoSelectorService picks the single best file source for an event and
// the single best file per part within a source. Pure, synchronous and
// deterministic; inputs are never mutated. Empty candidate sets are a
// caller contract violation and panic.
type VideoSelectorService struct{}

func NewVideoSelectorService() *VideoSelectorService {
	return &VideoSelectorService{}
}

// BestFileSource returns the top quality variant: resolution first, then
// bitrate, then the joined language list compared lexicographically.
// The language tie-break is a known simplification kept from the original
// behavior; it is not preferred-language logic.
func (s *VideoSelectorService) BestFileSource(ev *event.Event) *video.FileSource {
	if ev == nil || len(ev.FileSources) == 0 {
		panic("BestFileSource called with no file sources; callers must guarantee a non-empty set")
	}

	sorted := make([]*video.FileSource, len(ev.FileSources))
	copy(sorted, ev.FileSources)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Resolution != b.Resolution {
			return a.Resolution > b.Resolution
		}
		if a.Bitrate != b.Bitrate {
			return a.Bitrate > b.Bitrate
		}
		return a.JoinedLanguages() < b.JoinedLanguages()
	})

	return sorted[0]
}

// PlaylistSelection is the result of best-file-per-part selection:
// playable files in fixed part order, plus how many unlabeled files were
// excluded (a data-quality signal, not silently played).
type PlaylistSelection struct {
	Files            []*video.File
	UnlabeledDropped int
}

// PlaylistFiles groups the source's files by part, keeps the best file of
// each group and returns them in playback order. Preference within a
// group: a file with a resolved internal URL beats one without; when both
// are resolved the earlier-listed file wins (shallow heuristic pending a
// file-server quality differentiator, preserved as-is).
func (s *VideoSelectorService) PlaylistFiles(src *video.FileSource) PlaylistSelection {
	if src == nil || len(src.Files) == 0 {
		panic("PlaylistFiles called with no files; callers must guarantee a non-empty set")
	}

	var order []video.PartIdentifier
	groups := make(map[video.PartIdentifier][]*video.File)
	for _, f := range src.Files {
		if _, seen := groups[f.Part]; !seen {
			order = append(order, f.Part)
		}
		groups[f.Part] = append(groups[f.Part], f)
	}

	selection := PlaylistSelection{Files: make([]*video.File, 0, len(order))}
	for _, part := range order {
		if part == video.PartDefault {
			selection.UnlabeledDropped += len(groups[part])
			continue
		}
		selection.Files = append(selection.Files, bestFile(groups[part]))
	}

	sort.SliceStable(selection.Files, func(i, j int) bool {
		return selection.Files[i].Part < selection.Files[j].Part
	})

	return selection
}

func bestFile(group []*video.File) *video.File {
	if len(group) == 0 {
		panic(fmt.Sprintf("empty part group: %v", group))
	}

	best := group[0]
	for _, candidate := range group[1:] {
		if candidate.Resolved() && !best.Resolved() {
			best = candidate
		}
	}

	return best
}
