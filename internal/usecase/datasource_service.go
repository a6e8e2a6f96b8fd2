package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/iter"

	"github.com/tomasbot/matchday/internal/domain/competition"
	"github.com/tomasbot/matchday/internal/domain/datasource"
	"github.com/tomasbot/matchday/internal/domain/event"
	"github.com/tomasbot/matchday/internal/domain/team"
	"github.com/tomasbot/matchday/internal/parsing"
	"github.com/tomasbot/matchday/internal/platform/id"
	"github.com/tomasbot/matchday/internal/platform/logging"
)

const (
	refreshStatusSuccess = "success"
	refreshStatusFailed  = "failed"
	refreshStatusSkipped = "skipped"

	defaultRefreshWorkers = 4
	maxRefreshWorkers     = 16
	blockWorkers          = 4
)

type RefreshInput struct {
	Window     datasource.Window
	MaxWorkers int
	// PluginID narrows the refresh to one plugin's sources.
	PluginID string
}

type RefreshResult struct {
	SourceCount  int                `json:"source_count"`
	SuccessCount int                `json:"success_count"`
	FailedCount  int                `json:"failed_count"`
	SkippedCount int                `json:"skipped_count"`
	EventCount   int                `json:"event_count"`
	WorkerCount  int                `json:"worker_count"`
	Sources      []RefreshSourceRow `json:"sources"`
}

type RefreshSourceRow struct {
	SourceID   string `json:"source_id"`
	PluginID   string `json:"plugin_id"`
	Status     string `json:"status"`
	Blocks     int    `json:"blocks"`
	Events     int    `json:"events"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// DataSourceService administers pattern-driven data sources and runs the
// refresh cycle: fetch raw blocks from each source's plugin, assemble
// events, correct entity names against the catalog and persist. One bad
// source or block never aborts the cycle; it is logged, counted and
// skipped.
type DataSourceService struct {
	repo         datasource.Repository
	plugins      *PluginService
	parser       *parsing.Parser
	assembler    *parsing.Assembler
	correction   *CorrectionService
	events       event.Repository
	teams        team.Repository
	competitions competition.Repository
	idgen        id.Generator
	// workers is the pool size used when a refresh request does not ask
	// for one; comes from REFRESH_MAX_WORKERS.
	workers int
	logger  *logging.Logger
}

func NewDataSourceService(
	repo datasource.Repository,
	plugins *PluginService,
	parser *parsing.Parser,
	assembler *parsing.Assembler,
	correction *CorrectionService,
	events event.Repository,
	teams team.Repository,
	competitions competition.Repository,
	idgen id.Generator,
	workers int,
	logger *logging.Logger,
) *DataSourceService {
	if logger == nil {
		logger = logging.Default()
	}
	if idgen == nil {
		idgen = id.NewRandomGenerator()
	}
	if workers <= 0 {
		workers = defaultRefreshWorkers
	}
	return &DataSourceService{
		repo:         repo,
		plugins:      plugins,
		parser:       parser,
		assembler:    assembler,
		correction:   correction,
		events:       events,
		teams:        teams,
		competitions: competitions,
		idgen:        idgen,
		workers:      workers,
		logger:       logger,
	}
}

// AddDataSource validates the source against its plugin and its pattern
// pack against the parser registry before saving. An invalid pack is
// rejected up front rather than discovered mid-refresh.
func (s *DataSourceService) AddDataSource(ctx context.Context, src datasource.DataSource) (datasource.DataSource, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataSourceService.AddDataSource")
	defer span.End()

	if err := s.plugins.ValidateSource(src); err != nil {
		return datasource.DataSource{}, err
	}
	if src.Pack != nil {
		if err := s.parser.ValidatePack(src.Pack); err != nil {
			return datasource.DataSource{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
	}

	if src.ID == "" {
		generated, err := s.idgen.NewID()
		if err != nil {
			return datasource.DataSource{}, fmt.Errorf("generate data source id: %w", err)
		}
		src.ID = generated
	}

	saved, err := s.repo.Save(ctx, src)
	if err != nil {
		return datasource.DataSource{}, fmt.Errorf("save data source %q: %w", src.ID, err)
	}
	return saved, nil
}

// UpdateDataSource replaces an existing source after the same validation
// as AddDataSource.
func (s *DataSourceService) UpdateDataSource(ctx context.Context, src datasource.DataSource) (datasource.DataSource, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataSourceService.UpdateDataSource")
	defer span.End()

	if strings.TrimSpace(src.ID) == "" {
		return datasource.DataSource{}, fmt.Errorf("%w: data source id is required", ErrInvalidInput)
	}
	if _, err := s.GetDataSource(ctx, src.ID); err != nil {
		return datasource.DataSource{}, err
	}
	if err := s.plugins.ValidateSource(src); err != nil {
		return datasource.DataSource{}, err
	}
	if src.Pack != nil {
		if err := s.parser.ValidatePack(src.Pack); err != nil {
			return datasource.DataSource{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
	}

	saved, err := s.repo.Save(ctx, src)
	if err != nil {
		return datasource.DataSource{}, fmt.Errorf("save data source %q: %w", src.ID, err)
	}
	return saved, nil
}

func (s *DataSourceService) GetDataSource(ctx context.Context, sourceID string) (datasource.DataSource, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataSourceService.GetDataSource")
	defer span.End()

	src, found, err := s.repo.GetByID(ctx, sourceID)
	if err != nil {
		return datasource.DataSource{}, fmt.Errorf("get data source %q: %w", sourceID, err)
	}
	if !found {
		return datasource.DataSource{}, fmt.Errorf("%w: data source %q", ErrNotFound, sourceID)
	}
	return src, nil
}

func (s *DataSourceService) ListDataSources(ctx context.Context) ([]datasource.DataSource, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataSourceService.ListDataSources")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list data sources: %w", err)
	}
	return items, nil
}

func (s *DataSourceService) DeleteDataSource(ctx context.Context, sourceID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataSourceService.DeleteDataSource")
	defer span.End()

	if strings.TrimSpace(sourceID) == "" {
		return fmt.Errorf("%w: data source id is required", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, sourceID); err != nil {
		return fmt.Errorf("delete data source %q: %w", sourceID, err)
	}
	return nil
}

// RefreshAll runs the full refresh cycle over every enabled plugin's
// sources inside one worker pool. Disabled sources and sources of
// disabled plugins are skipped, not failed.
func (s *DataSourceService) RefreshAll(ctx context.Context, input RefreshInput) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataSourceService.RefreshAll")
	defer span.End()

	sources, err := s.refreshTargets(ctx, input.PluginID)
	if err != nil {
		return RefreshResult{}, err
	}

	requested := input.MaxWorkers
	if requested <= 0 {
		requested = s.workers
	}
	workerCount := normalizeRefreshWorkerCount(requested, len(sources))
	result := RefreshResult{
		SourceCount: len(sources),
		WorkerCount: workerCount,
		Sources:     make([]RefreshSourceRow, 0, len(sources)),
	}
	if len(sources) == 0 {
		return result, nil
	}

	rows := make(chan RefreshSourceRow, len(sources))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32
	var eventCount atomic.Int64

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, src := range sources {
		src := src
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.refreshOne(ctx, src, input.Window)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case refreshStatusSuccess:
				successCount.Add(1)
				eventCount.Add(int64(row.Events))
			case refreshStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			rows <- row
		}); err != nil {
			workers.Done()
			return RefreshResult{}, fmt.Errorf("submit source to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Sources = append(result.Sources, row)
	}
	sort.SliceStable(result.Sources, func(i, j int) bool {
		if result.Sources[i].PluginID != result.Sources[j].PluginID {
			return result.Sources[i].PluginID < result.Sources[j].PluginID
		}
		return result.Sources[i].SourceID < result.Sources[j].SourceID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.EventCount = int(eventCount.Load())
	return result, nil
}

// RefreshSource refreshes a single source by ID, regardless of the
// enabled state of sibling sources.
func (s *DataSourceService) RefreshSource(ctx context.Context, sourceID string, window datasource.Window) (RefreshSourceRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataSourceService.RefreshSource")
	defer span.End()

	src, err := s.GetDataSource(ctx, sourceID)
	if err != nil {
		return RefreshSourceRow{}, err
	}

	start := time.Now()
	row := s.refreshOne(ctx, src, window)
	row.DurationMs = time.Since(start).Milliseconds()
	return row, nil
}

func (s *DataSourceService) refreshTargets(ctx context.Context, pluginID string) ([]datasource.DataSource, error) {
	if pluginID != "" {
		if _, err := s.plugins.Get(pluginID); err != nil {
			return nil, err
		}
		items, err := s.repo.ListByPlugin(ctx, pluginID)
		if err != nil {
			return nil, fmt.Errorf("list data sources for plugin %q: %w", pluginID, err)
		}
		return items, nil
	}

	var out []datasource.DataSource
	for _, p := range s.plugins.EnabledPlugins() {
		items, err := s.repo.ListByPlugin(ctx, p.ID())
		if err != nil {
			return nil, fmt.Errorf("list data sources for plugin %q: %w", p.ID(), err)
		}
		out = append(out, items...)
	}
	return out, nil
}

func (s *DataSourceService) refreshOne(ctx context.Context, src datasource.DataSource, window datasource.Window) RefreshSourceRow {
	row := RefreshSourceRow{SourceID: src.ID, PluginID: src.PluginID}

	if !src.Enabled {
		row.Status = refreshStatusSkipped
		row.Message = "data source disabled"
		return row
	}
	if !s.plugins.IsEnabled(src.PluginID) {
		row.Status = refreshStatusSkipped
		row.Message = fmt.Sprintf("plugin %q disabled", src.PluginID)
		return row
	}

	plugin, err := s.plugins.Get(src.PluginID)
	if err != nil {
		row.Status = refreshStatusFailed
		row.Message = err.Error()
		return row
	}

	snapshot, err := plugin.Fetch(ctx, src, window)
	if err != nil {
		row.Status = refreshStatusFailed
		row.Message = fmt.Sprintf("fetch: %s", err)
		return row
	}
	row.Blocks = len(snapshot.Blocks)

	events := s.assembleBlocks(ctx, src, snapshot.Blocks)

	saved := 0
	for _, ev := range events {
		if err := s.ingestEvent(ctx, ev); err != nil {
			s.logger.WarnContext(ctx, "skipping event",
				"source_id", src.ID,
				"event", ev.Title(),
				"error", err,
			)
			continue
		}
		saved++
	}

	row.Events = saved
	row.Status = refreshStatusSuccess
	return row
}

// assembleBlocks fans block assembly out over a bounded mapper that
// keeps results aligned with block order. Failed blocks yield nil and
// are dropped.
func (s *DataSourceService) assembleBlocks(ctx context.Context, src datasource.DataSource, blocks []string) []*event.Event {
	mapper := iter.Mapper[string, *event.Event]{MaxGoroutines: blockWorkers}
	assembled := mapper.Map(blocks, func(block *string) *event.Event {
		ev, err := s.assembler.AssembleBlock(src, *block)
		if err != nil {
			s.logger.WarnContext(ctx, "block assembly failed",
				"source_id", src.ID,
				"error", err,
			)
			return nil
		}
		return ev
	})

	out := make([]*event.Event, 0, len(assembled))
	for _, ev := range assembled {
		if ev != nil {
			out = append(out, ev)
		}
	}
	return out
}

// ingestEvent corrects the event's entity references against the catalog,
// persists any genuinely new teams and competitions, and upserts the
// event keyed by its natural key.
func (s *DataSourceService) ingestEvent(ctx context.Context, ev *event.Event) error {
	if err := s.correction.Correct(ctx, ev); err != nil {
		return err
	}

	if ev.Competition != nil {
		if err := s.persistCompetition(ctx, ev.Competition); err != nil {
			return err
		}
	}
	for _, t := range []*team.Team{ev.HomeTeam, ev.AwayTeam} {
		if t == nil {
			continue
		}
		if err := s.persistTeam(ctx, t); err != nil {
			return err
		}
	}

	if ev.ID == "" {
		generated, err := s.idgen.NewID()
		if err != nil {
			return fmt.Errorf("generate event id: %w", err)
		}
		ev.ID = generated
	}
	if _, err := s.events.Upsert(ctx, ev); err != nil {
		return fmt.Errorf("upsert event %q: %w", ev.Title(), err)
	}
	return nil
}

func (s *DataSourceService) persistCompetition(ctx context.Context, c *competition.Competition) error {
	if c.ID == "" {
		generated, err := s.idgen.NewID()
		if err != nil {
			return fmt.Errorf("generate competition id: %w", err)
		}
		c.ID = generated
	}
	saved, err := s.competitions.Upsert(ctx, *c)
	if err != nil {
		return fmt.Errorf("upsert competition %q: %w", c.Name, err)
	}
	*c = saved
	return nil
}

func (s *DataSourceService) persistTeam(ctx context.Context, t *team.Team) error {
	if t.ID == "" {
		generated, err := s.idgen.NewID()
		if err != nil {
			return fmt.Errorf("generate team id: %w", err)
		}
		t.ID = generated
	}
	saved, err := s.teams.Upsert(ctx, *t)
	if err != nil {
		return fmt.Errorf("upsert team %q: %w", t.Name, err)
	}
	*t = saved
	return nil
}

func normalizeRefreshWorkerCount(requested, taskCount int) int {
	count := requested
	if count <= 0 {
		count = defaultRefreshWorkers
	}
	if count > maxRefreshWorkers {
		count = maxRefreshWorkers
	}
	if taskCount > 0 && count > taskCount {
		count = taskCount
	}
	if count < 1 {
		count = 1
	}
	return count
}
