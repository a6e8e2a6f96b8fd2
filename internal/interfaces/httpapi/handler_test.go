package httpapi

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/tomasbot/matchday/internal/domain/competition"
	"github.com/tomasbot/matchday/internal/domain/event"
	"github.com/tomasbot/matchday/internal/domain/synonym"
	"github.com/tomasbot/matchday/internal/domain/team"
	"github.com/tomasbot/matchday/internal/domain/video"
	"github.com/tomasbot/matchday/internal/infrastructure/repository/memory"
	"github.com/tomasbot/matchday/internal/usecase"
)

const testAdminToken = "test-admin-token"

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	hdURL, err := url.Parse("http://files.example/hd1.mkv")
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	ev := &event.Event{
		ID:          "ev-1",
		Kind:        event.KindMatch,
		Competition: &competition.Competition{Name: "Premier League"},
		Season:      event.NewSeason(2023, 2024),
		Date:        time.Date(2023, 9, 21, 0, 0, 0, 0, time.UTC),
		HomeTeam:    &team.Team{Name: "Arsenal"},
		AwayTeam:    &team.Team{Name: "Tottenham"},
		FileSources: []*video.FileSource{{
			ID:         "src-hd",
			Resolution: video.Resolution1080p,
			Files:      []*video.File{video.NewFile(video.PartFirstHalf, hdURL)},
		}},
	}

	eventRepo := memory.NewEventRepository([]*event.Event{ev})
	eventService := usecase.NewEventService(eventRepo, usecase.NewVideoSelectorService())
	templateService := usecase.NewTemplateService(memory.NewTemplateRepository(nil))
	if err := templateService.SeedBuiltinTemplates(t.Context()); err != nil {
		t.Fatalf("seed templates: %v", err)
	}
	synonymService := usecase.NewSynonymService(memory.NewSynonymRepository([]synonym.ProperName{
		{ID: "pn-1", Name: "FC Barcelona", Synonyms: []synonym.Synonym{{ID: "syn-1", Name: "Barca"}}},
	}), nil)

	handler := NewHandler(nil, nil, synonymService, eventService, templateService, nil, slog.Default())
	return NewRouter(handler, slog.Default(), nil, testAdminToken)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_GetEvent(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/events/ev-1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]any)
	if data["title"] != "Premier League: Arsenal vs. Tottenham" {
		t.Fatalf("unexpected title %v", data["title"])
	}
	if data["home_team"] != "Arsenal" {
		t.Fatalf("unexpected home team %v", data["home_team"])
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/events/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown event, got %d", rec.Code)
	}
}

func TestRouter_GetEventPlaylist(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/events/ev-1/playlist", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]any)
	if data["event_id"] != "ev-1" {
		t.Fatalf("unexpected playlist %v", data)
	}
	files := data["files"].([]any)
	if len(files) != 1 {
		t.Fatalf("expected 1 playable file, got %d", len(files))
	}
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/synonyms/Barca", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/synonyms/Barca", nil)
	req.Header.Set("X-Admin-Token", testAdminToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]any)
	if data["name"] != "FC Barcelona" {
		t.Fatalf("expected canonical name resolved, got %v", data)
	}
}

func TestRouter_AddProperName(t *testing.T) {
	router := testRouter(t)

	payload := `{"name": "Internazionale", "synonyms": ["Inter", "Inter Milan"]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/proper-names", strings.NewReader(payload))
	req.Header.Set("X-Admin-Token", testAdminToken)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// A synonym owned by another proper name is rejected as a conflict.
	payload = `{"name": "Barcelona B", "synonyms": ["Barca"]}`
	req = httptest.NewRequest(http.MethodPost, "/v1/admin/proper-names", strings.NewReader(payload))
	req.Header.Set("X-Admin-Token", testAdminToken)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_GetTemplateByType(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/templates/match", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/templates/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown type, got %d", rec.Code)
	}
}
