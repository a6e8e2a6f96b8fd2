package usecase

import (
	"net/url"
	"testing"

	"github.com/tomasbot/matchday/internal/domain/event"
	"github.com/tomasbot/matchday/internal/domain/video"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url %q: %v", raw, err)
	}
	return parsed
}

func TestVideoSelectorService_BestFileSource_PrefersResolution(t *testing.T) {
	selector := NewVideoSelectorService()

	low := &video.FileSource{ID: "low", Resolution: video.Resolution720p, Bitrate: 8_000_000}
	high := &video.FileSource{ID: "high", Resolution: video.Resolution1080p, Bitrate: 4_000_000}
	ev := &event.Event{ID: "ev-1", FileSources: []*video.FileSource{low, high}}

	best := selector.BestFileSource(ev)
	if best.ID != "high" {
		t.Fatalf("expected 1080p source to win, got %s", best.ID)
	}
	if ev.FileSources[0].ID != "low" {
		t.Fatal("selection must not reorder the event's sources")
	}
}

func TestVideoSelectorService_BestFileSource_BitrateThenLanguages(t *testing.T) {
	selector := NewVideoSelectorService()

	ev := &event.Event{
		ID: "ev-1",
		FileSources: []*video.FileSource{
			{ID: "german", Resolution: video.Resolution1080p, Bitrate: 4_000_000, Languages: []string{"German"}},
			{ID: "english", Resolution: video.Resolution1080p, Bitrate: 4_000_000, Languages: []string{"English"}},
			{ID: "fat", Resolution: video.Resolution1080p, Bitrate: 6_000_000, Languages: []string{"Russian"}},
		},
	}

	best := selector.BestFileSource(ev)
	if best.ID != "fat" {
		t.Fatalf("expected higher bitrate to win, got %s", best.ID)
	}

	ev.FileSources = ev.FileSources[:2]
	best = selector.BestFileSource(ev)
	if best.ID != "english" {
		t.Fatalf("expected lexicographic language tie-break, got %s", best.ID)
	}
}

func TestVideoSelectorService_BestFileSource_PanicsOnEmpty(t *testing.T) {
	selector := NewVideoSelectorService()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for event without file sources")
		}
	}()
	selector.BestFileSource(&event.Event{ID: "ev-1"})
}

func TestVideoSelectorService_PlaylistFiles_PartOrderAndUnlabeled(t *testing.T) {
	selector := NewVideoSelectorService()

	src := &video.FileSource{
		ID: "src-1",
		Files: []*video.File{
			{ID: "f2", Part: video.PartSecondHalf, ExternalURL: mustURL(t, "http://host/2nd")},
			{ID: "fx", Part: video.PartDefault, ExternalURL: mustURL(t, "http://host/extra")},
			{ID: "f1", Part: video.PartFirstHalf, ExternalURL: mustURL(t, "http://host/1st")},
		},
	}

	selection := selector.PlaylistFiles(src)
	if selection.UnlabeledDropped != 1 {
		t.Fatalf("expected 1 unlabeled file dropped, got %d", selection.UnlabeledDropped)
	}
	if len(selection.Files) != 2 {
		t.Fatalf("expected 2 playable files, got %d", len(selection.Files))
	}
	if selection.Files[0].ID != "f1" || selection.Files[1].ID != "f2" {
		t.Fatalf("expected part order 1st,2nd, got %s,%s", selection.Files[0].ID, selection.Files[1].ID)
	}
}

func TestVideoSelectorService_PlaylistFiles_CountsEveryUnlabeledFile(t *testing.T) {
	selector := NewVideoSelectorService()

	src := &video.FileSource{
		ID: "src-1",
		Files: []*video.File{
			{ID: "x1", Part: video.PartDefault, ExternalURL: mustURL(t, "http://host/x1")},
			{ID: "x2", Part: video.PartDefault, ExternalURL: mustURL(t, "http://host/x2")},
			{ID: "f1", Part: video.PartFirstHalf, ExternalURL: mustURL(t, "http://host/1st")},
			{ID: "x3", Part: video.PartDefault, ExternalURL: mustURL(t, "http://host/x3")},
		},
	}

	selection := selector.PlaylistFiles(src)
	if selection.UnlabeledDropped != 3 {
		t.Fatalf("expected every unlabeled file counted, got %d", selection.UnlabeledDropped)
	}
	if len(selection.Files) != 1 || selection.Files[0].ID != "f1" {
		t.Fatalf("expected only the labeled file kept, got %+v", selection.Files)
	}
}

func TestVideoSelectorService_PlaylistFiles_ResolvedFileWins(t *testing.T) {
	selector := NewVideoSelectorService()

	unresolved := &video.File{ID: "raw", Part: video.PartFirstHalf, ExternalURL: mustURL(t, "http://host/a")}
	resolved := &video.File{
		ID:          "ready",
		Part:        video.PartFirstHalf,
		ExternalURL: mustURL(t, "http://host/b"),
		InternalURL: mustURL(t, "http://cdn/b"),
	}
	src := &video.FileSource{ID: "src-1", Files: []*video.File{unresolved, resolved}}

	selection := selector.PlaylistFiles(src)
	if len(selection.Files) != 1 || selection.Files[0].ID != "ready" {
		t.Fatalf("expected resolved file to win its part group, got %+v", selection.Files)
	}

	// Both resolved: the earlier-listed file is kept.
	unresolved.InternalURL = mustURL(t, "http://cdn/a")
	selection = selector.PlaylistFiles(src)
	if selection.Files[0].ID != "raw" {
		t.Fatalf("expected earlier file to win when both resolved, got %s", selection.Files[0].ID)
	}
}
