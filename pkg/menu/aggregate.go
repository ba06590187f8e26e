package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ErrUnknownRestaurant is returned when a filter names no known restaurant.
var ErrUnknownRestaurant = errors.New("unknown restaurant")

// RawWeek is one source's raw day texts, Monday first. An empty string
// means no menu that day.
type RawWeek [7]string

// WeekSource produces a restaurant's raw week texts. Fetching is the only
// blocking operation in the engine; implementations honor ctx.
type WeekSource interface {
	FetchWeek(ctx context.Context, weekStart time.Time) (RawWeek, error)
}

// DayParser turns one day's raw text into classified dishes in source order.
// Parsers are pure: empty input yields an empty slice, never an error.
type DayParser func(raw string) []Dish

// Aggregator owns the restaurant → source wiring and builds the unified
// weekly view. Each restaurant/day is independent, so week building fans
// out per restaurant with no shared mutable state beyond result collection.
type Aggregator struct {
	restaurants map[ID]Restaurant
	sources     map[ID]WeekSource
	parsers     map[ID]DayParser
	logger      *slog.Logger
}

// NewAggregator creates an empty aggregator. A nil logger falls back to
// slog.Default().
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		restaurants: make(map[ID]Restaurant),
		sources:     make(map[ID]WeekSource),
		parsers:     make(map[ID]DayParser),
		logger:      logger,
	}
}

// Register wires one restaurant to its week source and parser shape.
func (a *Aggregator) Register(r Restaurant, src WeekSource, parse DayParser) {
	a.restaurants[r.ID] = r
	a.sources[r.ID] = src
	a.parsers[r.ID] = parse
}

// Restaurants returns the registered restaurants sorted by ID.
func (a *Aggregator) Restaurants() []Restaurant {
	ids := make([]ID, 0, len(a.restaurants))
	for id := range a.restaurants {
		ids = append(ids, id)
	}
	out := make([]Restaurant, 0, len(ids))
	for _, id := range SortIDs(ids) {
		out = append(out, a.restaurants[id])
	}
	return out
}

// Known reports whether id is a registered restaurant.
func (a *Aggregator) Known(id ID) bool {
	_, ok := a.restaurants[id]
	return ok
}

// WeekView is the unified weekly menu across restaurants. Warnings carry
// per-source degradations (failed fetch or parse); a warning never removes
// a restaurant from the view, it only leaves empty days behind.
type WeekView struct {
	WeekStart time.Time        `json:"week_start"`
	Menus     map[ID]*WeekMenu `json:"menus"`
	Warnings  []string         `json:"warnings,omitempty"`
}

// DayView is the unified view for a single day.
type DayView struct {
	Date     time.Time      `json:"date"`
	Menus    map[ID]DayMenu `json:"menus"`
	Warnings []string       `json:"warnings,omitempty"`
}

// BuildWeek fetches and parses every registered restaurant's week for the
// ISO week containing date. Sources run concurrently; a failed source
// degrades to seven empty days and a warning rather than failing the view.
func (a *Aggregator) BuildWeek(ctx context.Context, date time.Time) *WeekView {
	weekStart, _ := ResolveWeek(date)

	view := &WeekView{
		WeekStart: weekStart,
		Menus:     make(map[ID]*WeekMenu, len(a.sources)),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for id := range a.sources {
		wg.Add(1)
		go func(id ID) {
			defer wg.Done()
			week, warn := a.buildRestaurantWeek(ctx, id, weekStart)
			mu.Lock()
			view.Menus[id] = week
			if warn != "" {
				view.Warnings = append(view.Warnings, warn)
			}
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	return view
}

func (a *Aggregator) buildRestaurantWeek(ctx context.Context, id ID, weekStart time.Time) (*WeekMenu, string) {
	week := EmptyWeek(id, weekStart)

	raw, err := a.sources[id].FetchWeek(ctx, weekStart)
	if err != nil {
		a.logger.Warn("source unavailable, serving empty week",
			"restaurant", id, "week_start", weekStart.Format("2006-01-02"), "error", err)
		return week, fmt.Sprintf("%s: %v", id, err)
	}

	parse := a.parsers[id]
	for i, text := range raw {
		if strings.TrimSpace(text) == "" {
			continue // closed or no menu that day
		}
		week.Days[i].Dishes = parse(text)
	}
	return week, ""
}

// SelectDay reduces a week view to the single day containing date.
func SelectDay(view *WeekView, date time.Time) *DayView {
	_, index := ResolveWeek(date)
	day := &DayView{
		Date:     view.WeekStart.AddDate(0, 0, index),
		Menus:    make(map[ID]DayMenu, len(view.Menus)),
		Warnings: view.Warnings,
	}
	for id, week := range view.Menus {
		day.Menus[id] = week.Days[index]
	}
	return day
}

// Filter narrows a view to a restaurant subset and/or one category.
// The zero Filter is the identity.
type Filter struct {
	Restaurants []ID
	Category    Category
}

// Validate checks the filter against the aggregator's known restaurants.
// Naming only unknown restaurants is an invalid-filter condition; a mix of
// known and unknown is allowed so one typo does not blank unrelated output.
func (f Filter) Validate(a *Aggregator) error {
	if len(f.Restaurants) == 0 {
		return nil
	}
	for _, id := range f.Restaurants {
		if a.Known(id) {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrUnknownRestaurant, f.Restaurants)
}

func (f Filter) wantRestaurant(id ID) bool {
	if len(f.Restaurants) == 0 {
		return true
	}
	for _, want := range f.Restaurants {
		if want == id {
			return true
		}
	}
	return false
}

func (f Filter) filterDishes(dishes []Dish) []Dish {
	if f.Category == CategoryNone {
		return dishes
	}
	// Preserve relative order; an emptied day stays in the view so callers
	// can tell "no matching dish" from "restaurant closed".
	out := make([]Dish, 0, len(dishes))
	for _, d := range dishes {
		if d.Category == f.Category {
			out = append(out, d)
		}
	}
	return out
}

// ApplyWeek returns a filtered copy of the view. The input is not mutated.
func (f Filter) ApplyWeek(view *WeekView) *WeekView {
	out := &WeekView{
		WeekStart: view.WeekStart,
		Menus:     make(map[ID]*WeekMenu),
		Warnings:  view.Warnings,
	}
	for id, week := range view.Menus {
		if !f.wantRestaurant(id) {
			continue
		}
		filtered := &WeekMenu{WeekStart: week.WeekStart}
		for i, day := range week.Days {
			filtered.Days[i] = DayMenu{
				Date:       day.Date,
				Restaurant: day.Restaurant,
				Dishes:     f.filterDishes(day.Dishes),
			}
		}
		out.Menus[id] = filtered
	}
	return out
}

// ApplyDay returns a filtered copy of the day view.
func (f Filter) ApplyDay(view *DayView) *DayView {
	out := &DayView{
		Date:     view.Date,
		Menus:    make(map[ID]DayMenu),
		Warnings: view.Warnings,
	}
	for id, day := range view.Menus {
		if !f.wantRestaurant(id) {
			continue
		}
		out.Menus[id] = DayMenu{
			Date:       day.Date,
			Restaurant: day.Restaurant,
			Dishes:     f.filterDishes(day.Dishes),
		}
	}
	return out
}
