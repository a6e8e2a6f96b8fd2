package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomasbot/matchday/internal/domain/event"
	"github.com/tomasbot/matchday/internal/domain/video"
)

// EventService exposes the assembled catalog for the API surface:
// listing, lookup and best-source playlist preview.
type EventService struct {
	repo     event.Repository
	selector *VideoSelectorService
}

func NewEventService(repo event.Repository, selector *VideoSelectorService) *EventService {
	return &EventService{repo: repo, selector: selector}
}

func (s *EventService) ListEvents(ctx context.Context) ([]*event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.ListEvents")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return items, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (*event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.GetEvent")
	defer span.End()

	if strings.TrimSpace(eventID) == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	ev, found, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event %q: %w", eventID, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: event %q", ErrNotFound, eventID)
	}
	return ev, nil
}

// Playlist is the preview surface for one event: its best source and
// that source's playable files in part order.
type Playlist struct {
	Event            *event.Event
	Source           *video.FileSource
	Files            []*video.File
	UnlabeledDropped int
}

// PlaylistPreview selects the best source and its best file per part.
// Events with no sources or sources with no files are a catalog data
// error, reported as ErrNotFound rather than a panic at the API edge.
func (s *EventService) PlaylistPreview(ctx context.Context, eventID string) (Playlist, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.PlaylistPreview")
	defer span.End()

	ev, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return Playlist{}, err
	}
	if len(ev.FileSources) == 0 {
		return Playlist{}, fmt.Errorf("%w: event %q has no file sources", ErrNotFound, eventID)
	}

	best := s.selector.BestFileSource(ev)
	if len(best.Files) == 0 {
		return Playlist{}, fmt.Errorf("%w: source %q has no files", ErrNotFound, best.ID)
	}

	selection := s.selector.PlaylistFiles(best)
	return Playlist{
		Event:            ev,
		Source:           best,
		Files:            selection.Files,
		UnlabeledDropped: selection.UnlabeledDropped,
	}, nil
}
