package blogger

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
)

// Feed is the decoded, de-HTML-ed view of a blog's post feed.
type Feed struct {
	Title string
	Posts []Post
}

type Post struct {
	ID        string
	Title     string
	Body      string
	Published time.Time
}

// feedEnvelope mirrors the legacy GData JSON shape ("$t" text nodes).
type feedEnvelope struct {
	Feed struct {
		Title   textNode `json:"title"`
		Entries []struct {
			ID        textNode `json:"id"`
			Title     textNode `json:"title"`
			Published textNode `json:"published"`
			Content   textNode `json:"content"`
		} `json:"entry"`
	} `json:"feed"`
}

type textNode struct {
	T string `json:"$t"`
}

var (
	breakTagRegex = regexp.MustCompile(`(?i)<\s*(br|/p|/div|/tr)\s*/?\s*>`)
	htmlTagRegex  = regexp.MustCompile(`<[^>]*>`)
)

func feedFromEnvelope(envelope feedEnvelope) Feed {
	feed := Feed{Title: envelope.Feed.Title.T}
	for _, entry := range envelope.Feed.Entries {
		post := Post{
			ID:    entry.ID.T,
			Title: entry.Title.T,
			Body:  flattenHTML(entry.Content.T),
		}
		if ts, err := time.Parse(time.RFC3339, entry.Published.T); err == nil {
			post.Published = ts
		}
		feed.Posts = append(feed.Posts, post)
	}

	return feed
}

// flattenHTML renders a post body to plain text, one line per block-level
// element, so pattern kits can match line-oriented content.
func flattenHTML(body string) string {
	withBreaks := breakTagRegex.ReplaceAllString(body, "\n")
	stripped := htmlTagRegex.ReplaceAllString(withBreaks, "")
	decoded := html.UnescapeString(stripped)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, line := range strings.Split(decoded, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if buf.Len() > 0 {
			_, _ = buf.WriteString("\n")
		}
		_, _ = buf.WriteString(line)
	}

	return buf.String()
}
