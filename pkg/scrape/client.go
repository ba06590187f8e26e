// Package scrape fetches raw menu data from the configured sources: the
// structured ISS feed and kvartersmenyn.se pages. It owns the HTTP
// plumbing (timeouts, rate limiting, robots politeness, caching) so the
// parsing core never touches the network.
package scrape

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

const defaultUserAgent = "rhlunch/1.0 (+https://github.com/rhlunch/rhlunch)"

// Client is the shared HTTP fetcher. Requests are rate limited per host
// and checked against robots.txt before they go out.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *hostLimiter
	robots     *robotsGate
}

// ClientConfig tunes the fetcher. Zero values get sensible defaults.
type ClientConfig struct {
	Timeout        time.Duration
	UserAgent      string
	MaxBodyBytes   int64
	RequestsPerSec float64
}

// NewClient creates a fetcher with the given configuration.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 4 << 20
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 2
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		limiter:   newHostLimiter(cfg.RequestsPerSec, 3),
	}
	c.robots = newRobotsGate(c.httpClient, cfg.UserAgent)
	return c
}

// Get fetches a URL and returns the body as UTF-8 text. Bodies declared
// in another charset by Content-Type are transcoded. Responses are capped
// at MaxBodyBytes.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	if !c.robots.Allowed(ctx, rawURL) {
		return nil, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "sv-SE,sv;q=0.9,en;q=0.8")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	var reader io.Reader = io.LimitReader(resp.Body, c.maxBytes)
	if enc := charsetOf(resp.Header.Get("Content-Type")); enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported charset %q: %w", enc, err)
		}
		reader = transform.NewReader(reader, e.NewDecoder())
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func charsetOf(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
