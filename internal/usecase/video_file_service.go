package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/tomasbot/matchday/internal/domain/event"
	"github.com/tomasbot/matchday/internal/domain/video"
	"github.com/tomasbot/matchday/internal/platform/logging"
)

const videoRefreshWorkers = 12

// Resolver exchanges a file's external URL for a playable internal one
// and probes its stream metadata. Implementations talk to the file
// server at the system boundary.
type Resolver interface {
	Resolve(ctx context.Context, f *video.File) (*video.File, error)
}

// refreshTTL is how long a resolved internal URL is trusted before a
// refresh is considered due.
const refreshTTL = 4 * time.Hour

// VideoFileService refreshes the internal URLs of a file source's files
// through a shared worker pool. Only one refresh per source may be in
// flight; concurrent callers for the same source get
// ErrRefreshInProgress instead of queueing duplicate work.
type VideoFileService struct {
	resolver Resolver
	events   event.Repository
	selector *VideoSelectorService
	logger   *logging.Logger

	pool *ants.Pool

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewVideoFileService(resolver Resolver, events event.Repository, selector *VideoSelectorService, logger *logging.Logger) (*VideoFileService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if selector == nil {
		selector = NewVideoSelectorService()
	}
	pool, err := ants.NewPool(videoRefreshWorkers)
	if err != nil {
		return nil, fmt.Errorf("create video refresh pool: %w", err)
	}
	return &VideoFileService{
		resolver: resolver,
		events:   events,
		selector: selector,
		logger:   logger,
		pool:     pool,
		inFlight: make(map[string]struct{}),
	}, nil
}

// Close releases the worker pool. In-flight tasks finish first.
func (s *VideoFileService) Close() {
	s.pool.Release()
}

// RefreshSourceFiles resolves every stale file of the source and stamps
// LastRefreshed on success. Files refreshed within the TTL are left
// alone unless force is set. Returns the number of files refreshed.
func (s *VideoFileService) RefreshSourceFiles(ctx context.Context, src *video.FileSource, force bool) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VideoFileService.RefreshSourceFiles")
	defer span.End()

	if src == nil || src.ID == "" {
		return 0, fmt.Errorf("%w: file source is required", ErrInvalidInput)
	}
	if s.resolver == nil {
		return 0, fmt.Errorf("%w: no file resolver configured", ErrDependencyUnavailable)
	}

	if !s.acquire(src.ID) {
		return 0, fmt.Errorf("%w: file source %q", ErrRefreshInProgress, src.ID)
	}
	defer s.release(src.ID)

	now := time.Now()
	var stale []*video.File
	for _, f := range src.Files {
		if force || !f.Resolved() || now.Sub(f.LastRefreshed) > refreshTTL {
			stale = append(stale, f)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	var (
		workers   sync.WaitGroup
		mu        sync.Mutex
		refreshed int
	)
	for _, f := range stale {
		f := f
		workers.Add(1)
		if err := s.pool.Submit(func() {
			defer workers.Done()

			resolved, err := s.resolver.Resolve(ctx, f)
			if err != nil {
				s.logger.WarnContext(ctx, "file refresh failed",
					"source_id", src.ID,
					"file_id", f.ID,
					"error", err,
				)
				return
			}

			mu.Lock()
			f.InternalURL = resolved.InternalURL
			f.Metadata = resolved.Metadata
			f.LastRefreshed = time.Now()
			refreshed++
			mu.Unlock()
		}); err != nil {
			workers.Done()
			return 0, fmt.Errorf("submit file refresh: %w", err)
		}
	}
	workers.Wait()

	return refreshed, nil
}

// RefreshEventFiles refreshes the best source of an event and persists
// the updated file state.
func (s *VideoFileService) RefreshEventFiles(ctx context.Context, ev *event.Event, force bool) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VideoFileService.RefreshEventFiles")
	defer span.End()

	if ev == nil {
		return 0, fmt.Errorf("%w: event is required", ErrInvalidInput)
	}
	if len(ev.FileSources) == 0 {
		return 0, fmt.Errorf("%w: event %q has no file sources", ErrInvalidInput, ev.ID)
	}

	best := s.selector.BestFileSource(ev)
	refreshed, err := s.RefreshSourceFiles(ctx, best, force)
	if err != nil {
		return 0, err
	}

	if refreshed > 0 && s.events != nil {
		if _, err := s.events.Upsert(ctx, ev); err != nil {
			return refreshed, fmt.Errorf("persist refreshed event %q: %w", ev.ID, err)
		}
	}
	return refreshed, nil
}

func (s *VideoFileService) acquire(sourceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[sourceID]; busy {
		return false
	}
	s.inFlight[sourceID] = struct{}{}
	return true
}

func (s *VideoFileService) release(sourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sourceID)
}
