package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/tomasbot/matchday/internal/usecase"
)

type Handler struct {
	dataSourceService *usecase.DataSourceService
	pluginService     *usecase.PluginService
	synonymService    *usecase.SynonymService
	eventService      *usecase.EventService
	templateService   *usecase.TemplateService
	videoFileService  *usecase.VideoFileService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	dataSourceService *usecase.DataSourceService,
	pluginService *usecase.PluginService,
	synonymService *usecase.SynonymService,
	eventService *usecase.EventService,
	templateService *usecase.TemplateService,
	videoFileService *usecase.VideoFileService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		dataSourceService: dataSourceService,
		pluginService:     pluginService,
		synonymService:    synonymService,
		eventService:      eventService,
		templateService:   templateService,
		videoFileService:  videoFileService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
