package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/tomasbot/matchday/internal/domain/synonym"
	"github.com/tomasbot/matchday/internal/usecase"
)

func (h *Handler) ListProperNames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListProperNames")
	defer span.End()

	items, err := h.synonymService.ListProperNames(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list proper names failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]properNameDTO, 0, len(items))
	for _, item := range items {
		out = append(out, properNameToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) AddProperName(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddProperName")
	defer span.End()

	var req properNameDTO
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item := synonym.ProperName{ID: req.ID, Name: req.Name}
	for _, name := range req.Synonyms {
		item.Synonyms = append(item.Synonyms, synonym.Synonym{Name: name})
	}

	saved, err := h.synonymService.AddProperName(ctx, item)
	if err != nil {
		h.logger.WarnContext(ctx, "add proper name failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, properNameToDTO(saved))
}

func (h *Handler) DeleteProperName(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteProperName")
	defer span.End()

	properNameID := r.PathValue("properNameID")
	if err := h.synonymService.DeleteProperName(ctx, properNameID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": properNameID})
}

func (h *Handler) GetSynonymByName(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSynonymByName")
	defer span.End()

	item, err := h.synonymService.FetchProperNameBySynonym(ctx, r.PathValue("name"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, properNameToDTO(item))
}

func (h *Handler) ListMatchingNames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchingNames")
	defer span.End()

	names, err := h.synonymService.MatchingNames(ctx, r.PathValue("word"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, names)
}
