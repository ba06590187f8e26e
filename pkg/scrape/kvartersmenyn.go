package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rhlunch/rhlunch/pkg/classify"
	"github.com/rhlunch/rhlunch/pkg/menu"
	"golang.org/x/net/html"
)

// Kvartersmenyn scrapes a restaurant's kvartersmenyn.se page. The page
// carries the whole current week in one "meny" block: <b>/<strong> weekday
// headers followed by text-node dish lines, with invisible <i> elements
// holding internal codes. Extraction returns the raw lines per weekday;
// all dish-level cleanup and classification happens in the parsing core.
type Kvartersmenyn struct {
	client *Client
	cache  Cache
	ttl    time.Duration
	url    string
}

// NewKvartersmenyn creates a page source for one restaurant. cache may be nil.
func NewKvartersmenyn(client *Client, cache Cache, ttl time.Duration, r menu.Restaurant) *Kvartersmenyn {
	return &Kvartersmenyn{client: client, cache: cache, ttl: ttl, url: r.URL}
}

// FetchWeek implements menu.WeekSource. The page always shows the current
// week; weekStart only keys the cache window.
func (k *Kvartersmenyn) FetchWeek(ctx context.Context, weekStart time.Time) (menu.RawWeek, error) {
	key := CacheKey(k.url, weekStart)
	if k.cache != nil {
		if page, ok := k.cache.Get(key); ok {
			return extractWeekText(page)
		}
	}

	page, err := k.client.Get(ctx, k.url, nil)
	if err != nil {
		return menu.RawWeek{}, err
	}

	week, err := extractWeekText(page)
	if err != nil {
		return menu.RawWeek{}, err
	}
	if k.cache != nil {
		_ = k.cache.Set(key, page, k.ttl)
	}
	return week, nil
}

// extractWeekText splits the page's menu block into per-weekday raw text.
func extractWeekText(page []byte) (menu.RawWeek, error) {
	var week menu.RawWeek

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(page)))
	if err != nil {
		return week, fmt.Errorf("parse page: %w", err)
	}

	block := doc.Find("div.meny").First()
	if block.Length() == 0 {
		return week, fmt.Errorf("no menu block on page")
	}

	// Invisible code markers, not menu content.
	block.Find("i").Remove()

	day := -1
	var lines [7][]string
	block.Contents().Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		switch {
		case node.Type == html.ElementNode && (node.Data == "b" || node.Data == "strong"):
			name := classify.Fold(strings.TrimSpace(s.Text()))
			if idx := weekdayIndexFolded(name); idx >= 0 {
				day = idx
			}
		case node.Type == html.TextNode:
			text := strings.TrimSpace(node.Data)
			if text != "" && day >= 0 {
				lines[day] = append(lines[day], text)
			}
		}
	})

	for i, dayLines := range lines {
		week[i] = strings.Join(dayLines, "\n")
	}
	return week, nil
}

// weekdayIndexFolded matches folded Swedish weekday names; day headers on
// the page vary in case and sometimes lose their diacritics.
func weekdayIndexFolded(folded string) int {
	for i := 0; i < 7; i++ {
		if classify.Fold(menu.WeekdayName(i)) == folded {
			return i
		}
	}
	return -1
}
