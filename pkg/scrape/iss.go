package scrape

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rhlunch/rhlunch/pkg/menu"
)

// ErrEmptyFeed means the feed answered but carried no menu for the week.
var ErrEmptyFeed = errors.New("no menu items in feed response")

const (
	issAPIURL     = "https://www.iss-menyer.se/_api/cloud-data/v2/items/query"
	issAppID      = "16d45e35-d3d8-4d5e-b24d-2a680b7e5089"
	issMetaSiteID = "5e5cfbed-93b8-4425-8938-b96c735bd6c1"
)

// ISSFeed fetches weekly menus from the ISS menu feed (a Wix cloud-data
// collection). One payload covers a full week: the "menuSwedish" array
// holds seven Monday-to-Sunday entries of category-labeled text, with the
// empty string standing for a no-menu day. That shape is the feed's
// contract and is passed through bit-exact as the raw week.
type ISSFeed struct {
	client  *Client
	cache   Cache
	ttl     time.Duration
	pageURL string
	feedID  string

	sessionOnce sync.Once
	authToken   string
}

// NewISSFeed creates a feed source for one restaurant. cache may be nil.
func NewISSFeed(client *Client, cache Cache, ttl time.Duration, r menu.Restaurant) *ISSFeed {
	return &ISSFeed{
		client:  client,
		cache:   cache,
		ttl:     ttl,
		pageURL: r.URL,
		feedID:  r.FeedID,
	}
}

// FetchWeek implements menu.WeekSource.
func (f *ISSFeed) FetchWeek(ctx context.Context, weekStart time.Time) (menu.RawWeek, error) {
	key := CacheKey(f.pageURL, weekStart)
	if f.cache != nil {
		if payload, ok := f.cache.Get(key); ok {
			return parseFeedPayload(payload)
		}
	}

	payload, err := f.fetchPayload(ctx, menu.WeekNumber(weekStart))
	if err != nil {
		return menu.RawWeek{}, err
	}

	week, err := parseFeedPayload(payload)
	if err != nil {
		return menu.RawWeek{}, err
	}
	if f.cache != nil {
		_ = f.cache.Set(key, payload, f.ttl)
	}
	return week, nil
}

func (f *ISSFeed) fetchPayload(ctx context.Context, weekNumber int) ([]byte, error) {
	// Best effort: the feed often answers without the token too.
	f.sessionOnce.Do(func() { f.establishSession(ctx) })

	headers := map[string]string{
		"Accept":             "application/json, text/plain, */*",
		"Referer":            f.pageURL,
		"Origin":             "https://www.iss-menyer.se",
		"X-Wix-Meta-Site-Id": issMetaSiteID,
	}
	if f.authToken != "" {
		headers["Authorization"] = f.authToken
	}

	url := issAPIURL + "?.r=" + buildFeedQuery(f.feedID, weekNumber)
	payload, err := f.client.Get(ctx, url, headers)
	if err != nil {
		return nil, fmt.Errorf("iss feed week %d: %w", weekNumber, err)
	}
	return payload, nil
}

// buildFeedQuery encodes the cloud-data query parameter. The feed's
// restaurant filter field is misspelled upstream ("restrauntId").
func buildFeedQuery(feedID string, weekNumber int) string {
	type paging struct {
		Offset int `json:"offset"`
		Limit  int `json:"limit"`
	}
	query := struct {
		DataCollectionID string `json:"dataCollectionId"`
		Query            struct {
			Filter map[string]any `json:"filter"`
			Paging paging         `json:"paging"`
			Fields []string       `json:"fields"`
		} `json:"query"`
		ReferencedItemOptions []any  `json:"referencedItemOptions"`
		ReturnTotalCount      bool   `json:"returnTotalCount"`
		Environment           string `json:"environment"`
		AppID                 string `json:"appId"`
	}{
		DataCollectionID:      "Meny",
		ReferencedItemOptions: []any{},
		ReturnTotalCount:      true,
		Environment:           "LIVE",
		AppID:                 issAppID,
	}
	query.Query.Filter = map[string]any{
		"restrauntId": feedID,
		"weekNumber":  weekNumber,
	}
	query.Query.Paging = paging{Offset: 0, Limit: 1}
	query.Query.Fields = []string{}

	data, _ := json.Marshal(query)
	return base64.URLEncoding.EncodeToString(data)
}

// establishSession visits the restaurant page and digs the feed's
// Authorization header out of the embedded wix-viewer-model JSON.
// Any failure leaves the token empty; the query is attempted regardless.
func (f *ISSFeed) establishSession(ctx context.Context) {
	page, err := f.client.Get(ctx, f.pageURL, nil)
	if err != nil {
		return
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(page)))
	if err != nil {
		return
	}
	raw := doc.Find("script#wix-viewer-model").First().Text()
	if raw == "" {
		return
	}

	var viewer struct {
		SiteFeaturesConfigs struct {
			DynamicPages struct {
				PrefixToRouterFetchData map[string]struct {
					OptionsData struct {
						Headers map[string]string `json:"headers"`
					} `json:"optionsData"`
				} `json:"prefixToRouterFetchData"`
			} `json:"dynamicPages"`
		} `json:"siteFeaturesConfigs"`
	}
	if err := json.Unmarshal([]byte(raw), &viewer); err != nil {
		return
	}
	for _, fetchData := range viewer.SiteFeaturesConfigs.DynamicPages.PrefixToRouterFetchData {
		if auth := fetchData.OptionsData.Headers["Authorization"]; auth != "" {
			f.authToken = auth
			return
		}
	}
}

// parseFeedPayload extracts the seven raw day texts from a feed response.
func parseFeedPayload(payload []byte) (menu.RawWeek, error) {
	var resp struct {
		DataItems []struct {
			Data struct {
				MenuSwedish []struct {
					Menu string `json:"menu"`
				} `json:"menuSwedish"`
			} `json:"data"`
		} `json:"dataItems"`
	}

	var week menu.RawWeek
	if err := json.Unmarshal(payload, &resp); err != nil {
		return week, fmt.Errorf("decode feed response: %w", err)
	}
	if len(resp.DataItems) == 0 {
		return week, ErrEmptyFeed
	}

	days := resp.DataItems[0].Data.MenuSwedish
	if len(days) == 0 {
		return week, ErrEmptyFeed
	}
	for i := 0; i < len(week) && i < len(days); i++ {
		week[i] = days[i].Menu
	}
	return week, nil
}
