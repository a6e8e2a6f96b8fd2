package blogger

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tomasbot/matchday/internal/domain/datasource"
)

const PluginID = "blogger"

// Plugin adapts the feed client to the data source plugin contract: each
// blog post body becomes one raw text block of the snapshot. Posts whose
// titles and bodies are both empty are dropped before parsing.
type Plugin struct {
	client *Client
}

func NewPlugin(client *Client) *Plugin {
	return &Plugin{client: client}
}

func (p *Plugin) ID() string    { return PluginID }
func (p *Plugin) Title() string { return "Blogger" }

func (p *Plugin) Fetch(ctx context.Context, src datasource.DataSource, window datasource.Window) (datasource.Snapshot, error) {
	feed, err := p.client.FetchFeed(ctx, src.BaseURI, window.From, window.To)
	if err != nil {
		return datasource.Snapshot{}, fmt.Errorf("fetch blog feed for source %q: %w", src.ID, err)
	}

	snapshot := datasource.Snapshot{FetchedAt: time.Now()}
	for _, post := range feed.Posts {
		block := post.Body
		if strings.TrimSpace(post.Title) != "" {
			block = post.Title + "\n" + block
		}
		if strings.TrimSpace(block) == "" {
			continue
		}
		snapshot.Blocks = append(snapshot.Blocks, block)
	}

	return snapshot, nil
}

func (p *Plugin) ValidateSource(src datasource.DataSource) error {
	parsed, err := url.Parse(src.BaseURI)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("base uri %q is not an absolute url", src.BaseURI)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base uri %q: unsupported scheme %q", src.BaseURI, parsed.Scheme)
	}
	if src.Pack == nil || len(src.Pack.Kits) == 0 {
		return fmt.Errorf("a pattern kit pack is required for plaintext feeds")
	}

	return nil
}
