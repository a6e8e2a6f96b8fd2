package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/tomasbot/matchday/internal/domain/datasource"
	"github.com/tomasbot/matchday/internal/usecase"
)

func (h *Handler) ListDataSources(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDataSources")
	defer span.End()

	sources, err := h.dataSourceService.ListDataSources(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list data sources failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]dataSourceDTO, 0, len(sources))
	for _, src := range sources {
		items = append(items, dataSourceToDTO(src))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddDataSource(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddDataSource")
	defer span.End()

	var req dataSourceDTO
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.dataSourceService.AddDataSource(ctx, dataSourceFromDTO(req))
	if err != nil {
		h.logger.WarnContext(ctx, "add data source failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, dataSourceToDTO(saved))
}

func (h *Handler) GetDataSource(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDataSource")
	defer span.End()

	src, err := h.dataSourceService.GetDataSource(ctx, r.PathValue("sourceID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dataSourceToDTO(src))
}

func (h *Handler) UpdateDataSource(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateDataSource")
	defer span.End()

	var req dataSourceDTO
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	req.ID = r.PathValue("sourceID")

	saved, err := h.dataSourceService.UpdateDataSource(ctx, dataSourceFromDTO(req))
	if err != nil {
		h.logger.WarnContext(ctx, "update data source failed", "source_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dataSourceToDTO(saved))
}

func (h *Handler) DeleteDataSource(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteDataSource")
	defer span.End()

	sourceID := r.PathValue("sourceID")
	if err := h.dataSourceService.DeleteDataSource(ctx, sourceID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": sourceID})
}

func (h *Handler) RefreshDataSource(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshDataSource")
	defer span.End()

	window, err := windowFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	row, err := h.dataSourceService.RefreshSource(ctx, r.PathValue("sourceID"), window)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, row)
}

func (h *Handler) RefreshAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshAll")
	defer span.End()

	window, err := windowFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.RefreshInput{
		Window:   window,
		PluginID: r.URL.Query().Get("plugin_id"),
	}
	if raw := r.URL.Query().Get("max_workers"); raw != "" {
		workers, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: max_workers must be an integer", usecase.ErrInvalidInput))
			return
		}
		input.MaxWorkers = workers
	}

	result, err := h.dataSourceService.RefreshAll(ctx, input)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) EnablePlugin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnablePlugin")
	defer span.End()

	pluginID := r.PathValue("pluginID")
	if err := h.pluginService.Enable(pluginID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"plugin_id": pluginID, "enabled": true})
}

func (h *Handler) DisablePlugin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DisablePlugin")
	defer span.End()

	pluginID := r.PathValue("pluginID")
	if err := h.pluginService.Disable(pluginID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"plugin_id": pluginID, "enabled": false})
}

func windowFromQuery(r *http.Request) (datasource.Window, error) {
	var window datasource.Window
	if raw := r.URL.Query().Get("from"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return datasource.Window{}, fmt.Errorf("%w: from must be RFC3339", usecase.ErrInvalidInput)
		}
		window.From = ts
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return datasource.Window{}, fmt.Errorf("%w: to must be RFC3339", usecase.ErrInvalidInput)
		}
		window.To = ts
	}

	return window, nil
}
