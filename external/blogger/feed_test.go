package blogger

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
)

func TestFlattenHTML(t *testing.T) {
	body := `<div><b>Premier League</b> - Arsenal vs. Tottenham<br/>` +
		`Sky Sports &amp; Main Event<br />` +
		`<a href="http://files.example/a.mkv">1st Half</a></div>`

	got := flattenHTML(body)
	want := "Premier League - Arsenal vs. Tottenham\nSky Sports & Main Event\n1st Half"
	if got != want {
		t.Fatalf("flattenHTML mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestFlattenHTML_DropsBlankLines(t *testing.T) {
	got := flattenHTML("<p>first</p><p>   </p><p>second</p>")
	if got != "first\nsecond" {
		t.Fatalf("expected blank lines dropped, got %q", got)
	}
	if flattenHTML("") != "" {
		t.Fatal("empty body flattens to empty string")
	}
}

func TestFeedFromEnvelope(t *testing.T) {
	raw := `{
		"feed": {
			"title": {"$t": "Matchday Links"},
			"entry": [
				{
					"id": {"$t": "post-1"},
					"title": {"$t": "Arsenal vs. Tottenham"},
					"published": {"$t": "2023-09-21T18:00:00Z"},
					"content": {"$t": "Sky Sports<br/>1st Half"}
				},
				{
					"id": {"$t": "post-2"},
					"title": {"$t": "Roma vs. Lazio"},
					"published": {"$t": "not a timestamp"},
					"content": {"$t": "plain"}
				}
			]
		}
	}`

	var envelope feedEnvelope
	if err := sonic.Unmarshal([]byte(raw), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}

	feed := feedFromEnvelope(envelope)
	if feed.Title != "Matchday Links" {
		t.Fatalf("unexpected feed title %q", feed.Title)
	}
	if len(feed.Posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(feed.Posts))
	}

	first := feed.Posts[0]
	if first.ID != "post-1" || first.Body != "Sky Sports\n1st Half" {
		t.Fatalf("unexpected first post %+v", first)
	}
	if !first.Published.Equal(time.Date(2023, 9, 21, 18, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected published time %v", first.Published)
	}

	// Unparseable timestamps are tolerated, the post still lands.
	if !feed.Posts[1].Published.IsZero() {
		t.Fatalf("expected zero time for bad timestamp, got %v", feed.Posts[1].Published)
	}
}
