package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/tomasbot/matchday/external/blogger"
	"github.com/tomasbot/matchday/external/fileserver"
	"github.com/tomasbot/matchday/internal/config"
	"github.com/tomasbot/matchday/internal/domain/correction"
	"github.com/tomasbot/matchday/internal/infrastructure/repository/postgres"
	"github.com/tomasbot/matchday/internal/interfaces/httpapi"
	"github.com/tomasbot/matchday/internal/parsing"
	idgen "github.com/tomasbot/matchday/internal/platform/id"
	"github.com/tomasbot/matchday/internal/platform/logging"
	"github.com/tomasbot/matchday/internal/usecase"
)

// NewHTTPServer wires repositories, services and the HTTP router. The
// returned cleanup closes the database pool and the refresh workers.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	platformLog := logging.Default()

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	ids := idgen.NewRandomGenerator()

	teamRepo := postgres.NewTeamRepository(db)
	competitionRepo := postgres.NewCompetitionRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	dataSourceRepo := postgres.NewDataSourceRepository(db)
	synonymRepo := postgres.NewSynonymRepository(db, ids)
	templateRepo := postgres.NewTemplateRepository(db)

	registry := parsing.NewRegistry()
	parser := parsing.NewParser(registry, platformLog)
	assembler := parsing.NewAssembler(parser, platformLog)

	correctionSvc := usecase.NewCorrectionService(synonymRepo, platformLog)
	correctionSvc.RegisterLookup("team", func(ctx context.Context, name string) (correction.Named, bool, error) {
		item, found, err := teamRepo.GetByName(ctx, name)
		if err != nil || !found {
			return nil, false, err
		}
		return &item, true, nil
	})
	correctionSvc.RegisterLookup("competition", func(ctx context.Context, name string) (correction.Named, bool, error) {
		item, found, err := competitionRepo.GetByName(ctx, name)
		if err != nil || !found {
			return nil, false, err
		}
		return &item, true, nil
	})

	pluginSvc := usecase.NewPluginService()
	if cfg.BloggerEnabled {
		client := blogger.NewClient(blogger.ClientConfig{
			Timeout:    cfg.BloggerTimeout,
			MaxRetries: cfg.BloggerMaxRetries,
			Logger:     platformLog,
		})
		pluginSvc.Register(blogger.NewPlugin(client))
	}

	synonymSvc := usecase.NewSynonymService(synonymRepo, ids)
	dataSourceSvc := usecase.NewDataSourceService(
		dataSourceRepo,
		pluginSvc,
		parser,
		assembler,
		correctionSvc,
		eventRepo,
		teamRepo,
		competitionRepo,
		ids,
		cfg.RefreshMaxWorkers,
		platformLog,
	)

	selector := usecase.NewVideoSelectorService()
	eventSvc := usecase.NewEventService(eventRepo, selector)

	resolver := fileserver.NewResolver(nil, platformLog)
	videoFileSvc, err := usecase.NewVideoFileService(resolver, eventRepo, selector, platformLog)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	templateSvc := usecase.NewTemplateService(templateRepo)
	if err := templateSvc.SeedBuiltinTemplates(context.Background()); err != nil {
		videoFileSvc.Close()
		db.Close()
		return nil, nil, fmt.Errorf("seed pattern kit templates: %w", err)
	}

	handler := httpapi.NewHandler(
		dataSourceSvc,
		pluginSvc,
		synonymSvc,
		eventSvc,
		templateSvc,
		videoFileSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		videoFileSvc.Close()
		db.Close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func() error {
		videoFileSvc.Close()
		return db.Close()
	}

	return server, cleanup, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
