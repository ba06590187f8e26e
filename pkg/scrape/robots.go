package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/temoto/robotstxt"
)

// robotsGate checks robots.txt before a page fetch. Menu sites are small
// and the fetch volume is a handful of pages per week, but a scraper still
// honors the host's rules. The gate fails open: an unreachable or broken
// robots.txt never blocks the fetch.
type robotsGate struct {
	mu         sync.RWMutex
	cache      map[string]*robotstxt.RobotsData
	httpClient *http.Client
	agent      string
}

func newRobotsGate(httpClient *http.Client, userAgent string) *robotsGate {
	// robots.txt matches on the product token, not the full UA string.
	agent := userAgent
	if parts := strings.Fields(userAgent); len(parts) > 0 {
		agent = strings.Split(parts[0], "/")[0]
	}
	return &robotsGate{
		cache:      make(map[string]*robotstxt.RobotsData),
		httpClient: httpClient,
		agent:      agent,
	}
}

// Allowed reports whether robots.txt permits fetching rawURL.
func (g *robotsGate) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	data, err := g.robotsFor(ctx, u)
	if err != nil {
		return true // fail open
	}
	return data.TestAgent(u.Path, g.agent)
}

func (g *robotsGate) robotsFor(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	g.mu.RLock()
	data, ok := g.cache[u.Host]
	g.mu.RUnlock()
	if ok {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.agent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.cache[u.Host] = data
	g.mu.Unlock()
	return data, nil
}
