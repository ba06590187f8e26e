// Package menu defines the unified lunch menu model: classified dishes,
// per-day and per-week menus, the known restaurant set, and the aggregator
// that combines per-source results into one filterable view.
package menu

import (
	"strings"
	"time"
)

// Category is the food classification of a dish. A dish has exactly one.
type Category string

const (
	CategoryVegetarian   Category = "vegetarian"
	CategoryFish         Category = "fish"
	CategoryMeat         Category = "meat"
	CategoryUnclassified Category = "unclassified"

	// CategoryNone is the zero value, used as "no marker hint" by parsers
	// and "no category filter" by the aggregator.
	CategoryNone Category = ""
)

// ParseCategory maps user input (CLI flags, query params, MCP arguments)
// to a Category. The empty string parses to CategoryNone.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return CategoryNone, true
	case "vegetarian", "vego", "veg":
		return CategoryVegetarian, true
	case "fish":
		return CategoryFish, true
	case "meat":
		return CategoryMeat, true
	case "unclassified":
		return CategoryUnclassified, true
	default:
		return CategoryNone, false
	}
}

// Dish is one menu item with its assigned category. Value type, immutable
// once classified.
type Dish struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// DayMenu holds one restaurant's dishes for one calendar day, in source
// presentation order. An empty Dishes slice means no menu that day
// (closed, weekend, or failed source) and is a valid state, not an error.
type DayMenu struct {
	Date       time.Time `json:"date"`
	Restaurant ID        `json:"restaurant"`
	Dishes     []Dish    `json:"dishes"`
}

// WeekMenu is one restaurant's menu for a full ISO week.
// Days always has 7 entries, Monday first; days without a menu are
// present as empty DayMenus, never absent.
type WeekMenu struct {
	WeekStart time.Time  `json:"week_start"`
	Days      [7]DayMenu `json:"days"`
}

// EmptyWeek returns a WeekMenu with 7 empty days for the given restaurant,
// dated Monday through Sunday from weekStart.
func EmptyWeek(id ID, weekStart time.Time) *WeekMenu {
	w := &WeekMenu{WeekStart: weekStart}
	for i := range w.Days {
		w.Days[i] = DayMenu{
			Date:       weekStart.AddDate(0, 0, i),
			Restaurant: id,
			Dishes:     []Dish{},
		}
	}
	return w
}
