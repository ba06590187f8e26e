package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kvartersmenyn pages wrap dishes in presentation noise: a climate rating
// letter starts each dish, long dishes continue onto following lines, and
// the menu block mixes in price/opening/campaign lines. These rules undo
// that, leaving one dish per line.

var (
	climatePrefix = regexp.MustCompile(`^[A-E]\.?\s+`)
	dietaryCode   = regexp.MustCompile(`_[a-z]+_`)
	multiSpace    = regexp.MustCompile(`\s+`)
)

// Lines carrying page metadata rather than dishes.
var skipMarkers = []string{
	"Klimato",
	"CO2e-data",
	"PRIS:",
	"Öppet:",
	"Veckans",
	"VEGO HELA VECKAN",
}

// minDishLen drops leftovers too short to be a dish name.
const minDishLen = 5

// CleanPageLines rewrites extracted kvartersmenyn lines into dish lines:
// continuation lines are joined onto the climate-rated line that started
// the dish, rating prefixes and _x_ dietary codes are stripped, metadata
// lines are dropped. Order is preserved.
func CleanPageLines(lines []string) []string {
	var joined []string
	var current []string

	for _, line := range lines {
		if utf8.RuneCountInString(line) < 2 {
			continue
		}
		switch {
		case isMetadata(line):
			// Metadata ends any dish in progress and is never part of one.
			if len(current) > 0 {
				joined = append(joined, strings.Join(current, " "))
				current = nil
			}
		case climatePrefix.MatchString(line):
			// A rating letter starts a new dish.
			if len(current) > 0 {
				joined = append(joined, strings.Join(current, " "))
			}
			current = []string{line}
		case len(current) > 0:
			current = append(current, line)
		default:
			joined = append(joined, line)
		}
	}
	if len(current) > 0 {
		joined = append(joined, strings.Join(current, " "))
	}

	var cleaned []string
	for _, dish := range joined {
		dish = dietaryCode.ReplaceAllString(dish, "")
		dish = climatePrefix.ReplaceAllString(dish, "")
		dish = strings.TrimSpace(multiSpace.ReplaceAllString(dish, " "))
		if utf8.RuneCountInString(dish) >= minDishLen {
			cleaned = append(cleaned, dish)
		}
	}
	return cleaned
}

func isMetadata(line string) bool {
	for _, m := range skipMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}
