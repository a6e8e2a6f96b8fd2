package fileserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomasbot/matchday/internal/domain/video"
	"github.com/tomasbot/matchday/internal/platform/logging"
)

const defaultTimeout = 15 * time.Second

// Resolver turns a file's external link into a playable internal one by
// probing the remote host. Hosts that need a session handshake get their
// own resolver; this one covers direct-link hosts.
type Resolver struct {
	httpClient *http.Client
	logger     *logging.Logger
}

func NewResolver(httpClient *http.Client, logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Resolver{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Resolve probes the external URL and records the final URL after
// redirects as the internal link. The input file is not mutated.
func (r *Resolver) Resolve(ctx context.Context, f *video.File) (*video.File, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	resp, err := r.probe(ctx, http.MethodHead, f)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented {
		resp.Body.Close()
		resp, err = r.probe(ctx, http.MethodGet, f)
		if err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("probe %s: unexpected status %d", f.ExternalURL, resp.StatusCode)
	}

	resolved := *f
	resolved.InternalURL = f.ExternalURL
	if resp.Request != nil && resp.Request.URL != nil {
		resolved.InternalURL = resp.Request.URL
	}

	r.logger.DebugContext(ctx, "file resolved",
		"file_id", f.ID,
		"internal_url", resolved.InternalURL.String(),
	)

	return &resolved, nil
}

func (r *Resolver) probe(ctx context.Context, method string, f *video.File) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, f.ExternalURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build probe request for %s: %w", f.ExternalURL, err)
	}
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", f.ExternalURL, err)
	}

	return resp, nil
}
