package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rhlunch/rhlunch/pkg/menu"
)

var (
	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true).Padding(1, 0, 0, 0)
	restaurantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dayStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	warnStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	categoryStyles = map[menu.Category]lipgloss.Style{
		menu.CategoryVegetarian:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		menu.CategoryFish:         lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		menu.CategoryMeat:         lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		menu.CategoryUnclassified: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}

	categoryLabels = map[menu.Category]string{
		menu.CategoryVegetarian:   "vego",
		menu.CategoryFish:         "fisk",
		menu.CategoryMeat:         "kött",
		menu.CategoryUnclassified: "övrigt",
	}
)

func renderDay(w io.Writer, agg *menu.Aggregator, view *menu.DayView) {
	_, index := menu.ResolveWeek(view.Date)
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Lunch %s %s",
		menu.WeekdayName(index), view.Date.Format("2006-01-02"))))

	for _, r := range agg.Restaurants() {
		day, ok := view.Menus[r.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", restaurantStyle.Render(r.Name))
		renderDishes(w, day)
	}
	renderWarnings(w, view.Warnings)
}

func renderWeek(w io.Writer, agg *menu.Aggregator, view *menu.WeekView) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Lunch week of %s",
		view.WeekStart.Format("2006-01-02"))))

	for _, r := range agg.Restaurants() {
		week, ok := view.Menus[r.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", restaurantStyle.Render(r.Name))
		for i, day := range week.Days {
			// Weekends are routinely closed; only show them when they
			// actually have dishes.
			if len(day.Dishes) == 0 && isWeekend(i) {
				continue
			}
			fmt.Fprintf(w, "  %s\n", dayStyle.Render(menu.WeekdayName(i)))
			renderDishesIndented(w, day, "    ")
		}
	}
	renderWarnings(w, view.Warnings)
}

func renderDishes(w io.Writer, day menu.DayMenu) {
	renderDishesIndented(w, day, "  ")
}

func renderDishesIndented(w io.Writer, day menu.DayMenu, indent string) {
	if len(day.Dishes) == 0 {
		fmt.Fprintf(w, "%s%s\n", indent, emptyStyle.Render("no menu"))
		return
	}
	for _, dish := range day.Dishes {
		tag := categoryStyles[dish.Category].Render("[" + categoryLabels[dish.Category] + "]")
		fmt.Fprintf(w, "%s• %s %s\n", indent, dish.Name, tag)
	}
}

func renderWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "\n%s\n", warnStyle.Render("! "+warning))
	}
}

func isWeekend(index int) bool {
	return index == 5 || index == 6
}
