// Package parse turns one restaurant's raw per-day text into an ordered
// list of classified dishes. Two source shapes exist: the marker-delimited
// feed (explicit "Kött:"/"Fisk:"/"Vegetariskt:" labels scoping following
// lines) and the unmarked page list (one dish per line, heuristics only).
package parse

import (
	"strings"

	"github.com/rhlunch/rhlunch/pkg/classify"
	"github.com/rhlunch/rhlunch/pkg/menu"
)

// MarkedDay returns the parser for marker-delimited feed text.
//
// The scan is an explicit state machine: the state is the last seen
// category label, None initially. A label line updates the state and is
// consumed, not emitted. Every other non-empty line becomes a dish
// classified with the current label as marker hint; with no label seen
// yet, classification falls through to keyword heuristics. Unrecognized
// label text is a plain dish line, since source formatting is not
// contractually guaranteed. Empty input is an empty day, not an error.
func MarkedDay(c *classify.Classifier) menu.DayParser {
	return func(raw string) []menu.Dish {
		dishes := []menu.Dish{}
		marker := menu.CategoryNone

		for _, line := range feedLines(raw) {
			if cat, ok := c.Marker(line); ok {
				marker = cat
				continue
			}
			dishes = append(dishes, menu.Dish{
				Name:     line,
				Category: c.ClassifyWithHint(line, marker),
			})
		}
		return dishes
	}
}

// feedLines splits feed text into dish-candidate lines. The feed packs
// several entries on one line separated by tabs, so tabs count as line
// breaks on top of the usual normalization.
func feedLines(raw string) []string {
	var lines []string
	for _, line := range classify.NormalizeLines(raw) {
		for _, part := range strings.Split(line, "\t") {
			part = strings.TrimSpace(part)
			if part != "" {
				lines = append(lines, part)
			}
		}
	}
	return lines
}

// UnmarkedDay returns the parser for page-extracted dish lists: no labels,
// no state, each cleaned line classified by keyword heuristics alone.
func UnmarkedDay(c *classify.Classifier) menu.DayParser {
	return func(raw string) []menu.Dish {
		dishes := []menu.Dish{}
		for _, line := range CleanPageLines(classify.NormalizeLines(raw)) {
			dishes = append(dishes, menu.Dish{
				Name:     line,
				Category: c.Classify(line),
			})
		}
		return dishes
	}
}

// ForKind returns the parser variant for a restaurant's source shape.
// The set of shapes is closed; an unknown kind gets the unmarked parser,
// which makes no assumptions about structure.
func ForKind(kind menu.SourceKind, c *classify.Classifier) menu.DayParser {
	switch kind {
	case menu.KindISSFeed:
		return MarkedDay(c)
	case menu.KindKvartersmenyn:
		return UnmarkedDay(c)
	default:
		return UnmarkedDay(c)
	}
}
