package blogger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/tomasbot/matchday/internal/platform/logging"
)

const (
	feedPath       = "/feeds/posts/default"
	maxBodyBytes   = 6 << 20
	defaultTimeout = 20 * time.Second
)

var errBloggerTransient = crerr.New("blogger transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
}

// Client fetches a blog's JSON post feed. Retries are limited to
// transient failures (network errors, 5xx, 429); a 4xx other than 429 is
// a configuration problem and fails immediately.
type Client struct {
	httpClient *http.Client
	maxRetries int
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	return &Client{
		httpClient: httpClient,
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
	}
}

// FetchFeed retrieves the post feed of the blog at baseURI, bounded by
// the optional published-min/published-max window.
func (c *Client) FetchFeed(ctx context.Context, baseURI string, publishedMin, publishedMax time.Time) (Feed, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURI), "/")
	if base == "" {
		return Feed{}, fmt.Errorf("blog base uri is required")
	}

	values := url.Values{}
	values.Set("alt", "json")
	values.Set("max-results", "25")
	if !publishedMin.IsZero() {
		values.Set("published-min", publishedMin.Format(time.RFC3339))
	}
	if !publishedMax.IsZero() {
		values.Set("published-max", publishedMax.Format(time.RFC3339))
	}

	fullURL := base + feedPath + "?" + values.Encode()

	raw, err := c.executeRequest(ctx, fullURL)
	if err != nil {
		return Feed{}, err
	}

	var envelope feedEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return Feed{}, fmt.Errorf("decode blog feed: %w", err)
	}

	return feedFromEnvelope(envelope), nil
}

// IsTransient reports whether the error was marked retryable by the
// client; callers may reschedule instead of disabling the source.
func IsTransient(err error) bool {
	return crerr.Is(err, errBloggerTransient)
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Mark(fmt.Errorf("send request: %v", err), errBloggerTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(fmt.Errorf("read response body: %v", readErr), errBloggerTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(fmt.Errorf("feed status=%d", resp.StatusCode), errBloggerTransient)
			default:
				return nil, fmt.Errorf("feed status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "blog feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
