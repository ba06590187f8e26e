package menu

import "time"

// Swedish weekday names, Monday first. Presentation order and the ISS
// feed's day indexing both follow this order.
var weekdayNames = [7]string{
	"måndag", "tisdag", "onsdag", "torsdag", "fredag", "lördag", "söndag",
}

// ResolveWeek maps a target date to its Monday-anchored week window.
// weekStart is the Monday of the ISO week containing t (truncated to
// midnight in t's location); index is the weekday offset, 0 = Monday,
// 6 = Sunday. Weekend dates resolve to a valid, possibly menu-less day.
func ResolveWeek(t time.Time) (weekStart time.Time, index int) {
	index = (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -index), index
}

// WeekNumber returns the ISO week number containing t, as used by the
// ISS feed's weekNumber filter.
func WeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// WeekdayName returns the Swedish name for a weekday index (0 = måndag).
// Out-of-range indices return the empty string.
func WeekdayName(index int) string {
	if index < 0 || index >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[index]
}
