package blogger

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomasbot/matchday/internal/platform/logging"
)

const feedFixture = `{
	"feed": {
		"title": {"$t": "Matchday Links"},
		"entry": [{
			"id": {"$t": "post-1"},
			"title": {"$t": "Arsenal vs. Tottenham"},
			"published": {"$t": "2023-09-21T18:00:00Z"},
			"content": {"$t": "Sky Sports<br/>1st Half"}
		}]
	}
}`

func TestClient_FetchFeed(t *testing.T) {
	var gotQuery atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != feedPath {
			http.NotFound(w, r)
			return
		}
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})
	min := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)

	feed, err := client.FetchFeed(t.Context(), server.URL+"/", min, time.Time{})
	if err != nil {
		t.Fatalf("fetch feed failed: %v", err)
	}
	if feed.Title != "Matchday Links" || len(feed.Posts) != 1 {
		t.Fatalf("unexpected feed %+v", feed)
	}
	if feed.Posts[0].Body != "Sky Sports\n1st Half" {
		t.Fatalf("expected flattened body, got %q", feed.Posts[0].Body)
	}

	query := gotQuery.Load().(url.Values)
	if got := query.Get("alt"); got != "json" {
		t.Fatalf("expected alt=json, got %q", got)
	}
	if got := query.Get("published-min"); got != "2023-09-01T00:00:00Z" {
		t.Fatalf("expected published-min window, got %q", got)
	}
}

func TestClient_FetchFeed_RetriesTransientStatus(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(feedFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{MaxRetries: 2, Logger: logging.NewNop()})
	feed, err := client.FetchFeed(t.Context(), server.URL, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("fetch after retry failed: %v", err)
	}
	if len(feed.Posts) != 1 {
		t.Fatalf("unexpected feed %+v", feed)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected exactly one retry, got %d hits", hits.Load())
	}
}

func TestClient_FetchFeed_ClientErrorFailsImmediately(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{MaxRetries: 3, Logger: logging.NewNop()})
	_, err := client.FetchFeed(t.Context(), server.URL, time.Time{}, time.Time{})
	if err == nil {
		t.Fatal("expected error for 403")
	}
	if IsTransient(err) {
		t.Fatal("4xx must not be marked transient")
	}
	if hits.Load() != 1 {
		t.Fatalf("4xx must not retry, got %d hits", hits.Load())
	}
}

func TestClient_FetchFeed_RequiresBaseURI(t *testing.T) {
	client := NewClient(ClientConfig{Logger: logging.NewNop()})
	if _, err := client.FetchFeed(t.Context(), "   ", time.Time{}, time.Time{}); err == nil {
		t.Fatal("expected error for blank base uri")
	}
}
