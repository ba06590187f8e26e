package scrape

import (
	"fmt"
	"time"

	"github.com/rhlunch/rhlunch/pkg/menu"
)

// NewSource builds the week source for a configured restaurant.
func NewSource(client *Client, cache Cache, ttl time.Duration, r menu.Restaurant) (menu.WeekSource, error) {
	switch r.Kind {
	case menu.KindISSFeed:
		if r.FeedID == "" {
			return nil, fmt.Errorf("restaurant %s: ISS feed source needs feed_id", r.ID)
		}
		return NewISSFeed(client, cache, ttl, r), nil
	case menu.KindKvartersmenyn:
		return NewKvartersmenyn(client, cache, ttl, r), nil
	default:
		return nil, fmt.Errorf("restaurant %s: unknown source kind %q", r.ID, r.Kind)
	}
}
