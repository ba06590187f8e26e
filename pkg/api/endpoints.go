// Package api exposes the menu engine over HTTP and MCP. Both transports
// dispatch to the same transport-agnostic endpoints.
package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rhlunch/rhlunch/pkg/classify"
	"github.com/rhlunch/rhlunch/pkg/kit"
	"github.com/rhlunch/rhlunch/pkg/menu"
)

// Shared request/response types used by both HTTP and MCP transports.

type menuReq struct {
	Date   time.Time
	Filter menu.Filter
}

type classifyReq struct {
	Dish string
}

type classifyResponse struct {
	Dish     string        `json:"dish"`
	Category menu.Category `json:"category"`
}

type restaurantsResponse struct {
	Restaurants []menu.Restaurant `json:"restaurants"`
}

func dailyMenuEndpoint(agg *menu.Aggregator) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*menuReq)
		if err := req.Filter.Validate(agg); err != nil {
			return nil, err
		}
		view := agg.BuildWeek(ctx, req.Date)
		return req.Filter.ApplyDay(menu.SelectDay(view, req.Date)), nil
	}
}

func weeklyMenuEndpoint(agg *menu.Aggregator) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*menuReq)
		if err := req.Filter.Validate(agg); err != nil {
			return nil, err
		}
		return req.Filter.ApplyWeek(agg.BuildWeek(ctx, req.Date)), nil
	}
}

func listRestaurantsEndpoint(agg *menu.Aggregator) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return restaurantsResponse{Restaurants: agg.Restaurants()}, nil
	}
}

func classifyDishEndpoint(cls *classify.Classifier) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*classifyReq)
		dish := strings.TrimSpace(req.Dish)
		if dish == "" {
			return nil, fmt.Errorf("dish name is empty")
		}
		return classifyResponse{Dish: dish, Category: cls.Classify(dish)}, nil
	}
}

// parseDate accepts YYYY-MM-DD; the empty string means today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// parseFilter builds a menu filter from restaurant and category strings.
func parseFilter(restaurants, category string) (menu.Filter, error) {
	var f menu.Filter
	if restaurants != "" {
		for _, id := range strings.Split(restaurants, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				f.Restaurants = append(f.Restaurants, menu.ID(id))
			}
		}
	}
	cat, ok := menu.ParseCategory(category)
	if !ok {
		return f, fmt.Errorf("unknown category %q", category)
	}
	f.Category = cat
	return f, nil
}
