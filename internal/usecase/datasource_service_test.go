package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tomasbot/matchday/internal/domain/datasource"
	"github.com/tomasbot/matchday/internal/domain/patternkit"
	"github.com/tomasbot/matchday/internal/infrastructure/repository/memory"
	"github.com/tomasbot/matchday/internal/parsing"
	"github.com/tomasbot/matchday/internal/platform/logging"
)

type sequenceIDGenerator struct {
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%03d", g.prefix, g.next), nil
}

const feedBlock = `Premier League 2023/24 - Matchday 6
21/09/2023 - Arsenal vs. Tottenham
Sky Sports - 1080p - 6 Mbps - English
1st Half: http://files.example/ars-tot-1.mkv
2nd Half: http://files.example/ars-tot-2.mkv`

func feedPack() *patternkit.Pack {
	return patternkit.NewPack(
		patternkit.NewKit("match",
			`(?m)^(.+?) (\d{4}/\d{2}) - Matchday (\d+)\n(\d{2}/\d{2}/\d{4}) - (.+?) vs\. (.+)$`,
			map[int]string{1: "competition", 2: "season", 3: "fixture", 4: "date", 5: "homeTeam", 6: "awayTeam"}),
		patternkit.NewKit("file-source",
			`(?m)^(.+?) - (\d+p) - (\d+ Mbps) - (\w+)$`,
			map[int]string{1: "channel", 2: "resolution", 3: "bitrate", 4: "languages"}),
		patternkit.NewKit("file",
			`(?m)^(\d\w+ Half): (http://\S+)$`,
			map[int]string{1: "part", 2: "externalUrl"}),
	)
}

func newRefreshFixture(t *testing.T, plugins ...datasource.Plugin) (*DataSourceService, *memory.EventRepository) {
	t.Helper()

	logger := logging.NewNop()
	registry := parsing.NewRegistry()
	parser := parsing.NewParser(registry, logger)
	assembler := parsing.NewAssembler(parser, logger)

	teamRepo := memory.NewTeamRepository(nil)
	competitionRepo := memory.NewCompetitionRepository(nil)
	eventRepo := memory.NewEventRepository(nil)
	synonymRepo := memory.NewSynonymRepository(nil)

	correctionSvc := NewCorrectionService(synonymRepo, logger)

	sources := []datasource.DataSource{
		{ID: "src-1", PluginID: "feed", BaseURI: "http://blog.example", Type: "match", Enabled: true, Pack: feedPack()},
		{ID: "src-2", PluginID: "feed", BaseURI: "http://blog.example/b", Type: "match", Enabled: false, Pack: feedPack()},
	}

	service := NewDataSourceService(
		memory.NewDataSourceRepository(sources),
		NewPluginService(plugins...),
		parser,
		assembler,
		correctionSvc,
		eventRepo,
		teamRepo,
		competitionRepo,
		&sequenceIDGenerator{prefix: "gen"},
		0,
		logger,
	)
	return service, eventRepo
}

func TestDataSourceService_RefreshAll_IngestsEvents(t *testing.T) {
	plugin := &fakePlugin{
		id: "feed",
		fetch: func(_ context.Context, _ datasource.DataSource, _ datasource.Window) (datasource.Snapshot, error) {
			return datasource.Snapshot{Blocks: []string{feedBlock, "noise without entities"}}, nil
		},
	}
	service, eventRepo := newRefreshFixture(t, plugin)

	result, err := service.RefreshAll(t.Context(), RefreshInput{})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if result.SourceCount != 2 || result.SuccessCount != 1 || result.SkippedCount != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if result.EventCount != 1 {
		t.Fatalf("expected 1 ingested event, got %d", result.EventCount)
	}
	if len(result.Sources) != 2 || result.Sources[0].SourceID != "src-1" {
		t.Fatalf("expected sorted per-source rows, got %+v", result.Sources)
	}
	if result.Sources[0].Blocks != 2 {
		t.Fatalf("expected 2 fetched blocks recorded, got %d", result.Sources[0].Blocks)
	}
	if result.Sources[1].Status != refreshStatusSkipped {
		t.Fatalf("expected disabled source skipped, got %s", result.Sources[1].Status)
	}

	events, err := eventRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 persisted event, got %d", len(events))
	}

	ev := events[0]
	if ev.Title() != "Premier League: Arsenal vs. Tottenham" {
		t.Fatalf("unexpected event title %q", ev.Title())
	}
	if ev.Season.String() != "2023/2024" {
		t.Fatalf("unexpected season %q", ev.Season.String())
	}
	if len(ev.FileSources) != 1 || len(ev.FileSources[0].Files) != 2 {
		t.Fatalf("expected 1 source with 2 files, got %+v", ev.FileSources)
	}
	if ev.FileSources[0].Bitrate != 6_000_000 {
		t.Fatalf("expected 6 Mbps coerced to bps, got %d", ev.FileSources[0].Bitrate)
	}
}

func TestDataSourceService_AssembleBlocks_KeepsBlockOrder(t *testing.T) {
	service, _ := newRefreshFixture(t, &fakePlugin{id: "feed"})
	src := datasource.DataSource{ID: "src-1", PluginID: "feed", Type: "match", Enabled: true, Pack: feedPack()}

	var blocks []string
	var wantHomeTeams []string
	for i := 0; i < 12; i++ {
		home := fmt.Sprintf("Club %02d", i)
		blocks = append(blocks, fmt.Sprintf(
			"Premier League 2023/24 - Matchday %d\n21/09/2023 - %s vs. Visitors\nSky Sports - 1080p - 6 Mbps - English\n1st Half: http://files.example/m%02d.mkv",
			i+1, home, i))
		wantHomeTeams = append(wantHomeTeams, home)
		// A block that assembles to nothing must not shift its neighbours.
		blocks = append(blocks, "noise without entities")
	}

	events := service.assembleBlocks(t.Context(), src, blocks)
	if len(events) != len(wantHomeTeams) {
		t.Fatalf("expected %d assembled events, got %d", len(wantHomeTeams), len(events))
	}
	for i, ev := range events {
		if ev.HomeTeam.Name != wantHomeTeams[i] {
			t.Fatalf("event %d out of block order: got %q, want %q", i, ev.HomeTeam.Name, wantHomeTeams[i])
		}
	}
}

func TestDataSourceService_RefreshAll_Idempotent(t *testing.T) {
	plugin := &fakePlugin{
		id: "feed",
		fetch: func(_ context.Context, _ datasource.DataSource, _ datasource.Window) (datasource.Snapshot, error) {
			return datasource.Snapshot{Blocks: []string{feedBlock}}, nil
		},
	}
	service, eventRepo := newRefreshFixture(t, plugin)

	for i := 0; i < 2; i++ {
		if _, err := service.RefreshAll(t.Context(), RefreshInput{}); err != nil {
			t.Fatalf("refresh %d failed: %v", i, err)
		}
	}

	events, err := eventRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("repeat refresh must upsert by natural key, got %d events", len(events))
	}
}

func TestDataSourceService_RefreshAll_FetchFailureDoesNotAbort(t *testing.T) {
	plugin := &fakePlugin{
		id: "feed",
		fetch: func(_ context.Context, src datasource.DataSource, _ datasource.Window) (datasource.Snapshot, error) {
			return datasource.Snapshot{}, errors.New("upstream 503")
		},
	}
	service, _ := newRefreshFixture(t, plugin)

	result, err := service.RefreshAll(t.Context(), RefreshInput{})
	if err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}
	if result.FailedCount != 1 || result.SkippedCount != 1 {
		t.Fatalf("expected failed=1 skipped=1, got %+v", result)
	}
	if !strings.Contains(result.Sources[0].Message, "upstream 503") {
		t.Fatalf("expected failure message recorded, got %q", result.Sources[0].Message)
	}
}

func TestDataSourceService_RefreshAll_UnknownPluginFilter(t *testing.T) {
	service, _ := newRefreshFixture(t, &fakePlugin{id: "feed"})

	if _, err := service.RefreshAll(t.Context(), RefreshInput{PluginID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown plugin filter, got %v", err)
	}
}

func TestDataSourceService_AddDataSource_RejectsBadPack(t *testing.T) {
	service, _ := newRefreshFixture(t, &fakePlugin{id: "feed"})

	src := datasource.DataSource{
		PluginID: "feed",
		BaseURI:  "http://blog.example",
		Type:     "match",
		Enabled:  true,
		Pack: patternkit.NewPack(
			patternkit.NewKit("match", `(.+) vs\. (.+)`, map[int]string{3: "homeTeam"}),
		),
	}
	if _, err := service.AddDataSource(t.Context(), src); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out-of-range group, got %v", err)
	}

	src.Pack = patternkit.NewPack(
		patternkit.NewKit("match", `(.+) vs\. (.+)`, map[int]string{1: "noSuchField"}),
	)
	if _, err := service.AddDataSource(t.Context(), src); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown field, got %v", err)
	}

	src.Pack = feedPack()
	saved, err := service.AddDataSource(t.Context(), src)
	if err != nil {
		t.Fatalf("expected valid source to save, got %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected generated data source id")
	}
}

func TestNormalizeRefreshWorkerCount(t *testing.T) {
	cases := []struct {
		requested, tasks, want int
	}{
		{0, 10, defaultRefreshWorkers},
		{100, 100, maxRefreshWorkers},
		{8, 3, 3},
		{-1, 0, defaultRefreshWorkers},
	}
	for _, tc := range cases {
		if got := normalizeRefreshWorkerCount(tc.requested, tc.tasks); got != tc.want {
			t.Fatalf("normalizeRefreshWorkerCount(%d, %d) = %d, want %d", tc.requested, tc.tasks, got, tc.want)
		}
	}
}
