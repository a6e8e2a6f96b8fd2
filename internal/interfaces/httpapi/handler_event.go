package httpapi

import (
	"net/http"
)

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	events, err := h.eventService.ListEvents(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list events failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventSummaryDTO, 0, len(events))
	for _, ev := range events {
		items = append(items, eventToSummaryDTO(ev))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEvent")
	defer span.End()

	ev, err := h.eventService.GetEvent(ctx, r.PathValue("eventID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventToDetailDTO(ev))
}

func (h *Handler) GetEventPlaylist(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEventPlaylist")
	defer span.End()

	playlist, err := h.eventService.PlaylistPreview(ctx, r.PathValue("eventID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playlistToDTO(playlist))
}

func (h *Handler) RefreshEventFiles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshEventFiles")
	defer span.End()

	ev, err := h.eventService.GetEvent(ctx, r.PathValue("eventID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	force := r.URL.Query().Get("force") == "true"
	refreshed, err := h.videoFileService.RefreshEventFiles(ctx, ev, force)
	if err != nil {
		h.logger.WarnContext(ctx, "event file refresh failed", "event_id", ev.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"event_id": ev.ID, "refreshed": refreshed})
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTemplates")
	defer span.End()

	items, err := h.templateService.ListTemplates(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTemplateByType(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTemplateByType")
	defer span.End()

	item, err := h.templateService.FetchTemplateByType(ctx, r.PathValue("type"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}
