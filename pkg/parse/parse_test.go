package parse

import (
	"reflect"
	"testing"

	"github.com/rhlunch/rhlunch/pkg/classify"
	"github.com/rhlunch/rhlunch/pkg/menu"
)

func TestMarkedDay(t *testing.T) {
	parse := MarkedDay(classify.New(nil))

	tests := []struct {
		name string
		raw  string
		want []menu.Dish
	}{
		{
			name: "labels scope following lines",
			raw:  "Kött:\nBiff\nVegetariskt:\nFalafel",
			want: []menu.Dish{
				{Name: "Biff", Category: menu.CategoryMeat},
				{Name: "Falafel", Category: menu.CategoryVegetarian},
			},
		},
		{
			name: "label covers several dishes until the next label",
			raw:  "Fisk:\nLax med dillsås\nPanerad torsk\nKött:\nSchnitzel",
			want: []menu.Dish{
				{Name: "Lax med dillsås", Category: menu.CategoryFish},
				{Name: "Panerad torsk", Category: menu.CategoryFish},
				{Name: "Schnitzel", Category: menu.CategoryMeat},
			},
		},
		{
			name: "marker wins over keyword evidence",
			raw:  "Vegetariskt:\nPasta med svamp och bacon",
			want: []menu.Dish{
				{Name: "Pasta med svamp och bacon", Category: menu.CategoryVegetarian},
			},
		},
		{
			name: "lines before any label fall back to heuristics",
			raw:  "Lax med dillsås\nPasta pomodoro",
			want: []menu.Dish{
				{Name: "Lax med dillsås", Category: menu.CategoryFish},
				{Name: "Pasta pomodoro", Category: menu.CategoryUnclassified},
			},
		},
		{
			name: "unrecognized label text is a plain dish line",
			raw:  "Dagens soppa:\nMinestrone",
			want: []menu.Dish{
				{Name: "Dagens soppa:", Category: menu.CategoryUnclassified},
				{Name: "Minestrone", Category: menu.CategoryUnclassified},
			},
		},
		{
			name: "tab-packed feed line splits into entries",
			raw:  "Kött:\tBiff\tFisk:\tStekt sej",
			want: []menu.Dish{
				{Name: "Biff", Category: menu.CategoryMeat},
				{Name: "Stekt sej", Category: menu.CategoryFish},
			},
		},
		{
			name: "empty day",
			raw:  "",
			want: []menu.Dish{},
		},
		{
			name: "whitespace-only day",
			raw:  "  \n\t\n",
			want: []menu.Dish{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parse(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MarkedDay(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMarkedDayPreservesSourceOrder(t *testing.T) {
	parse := MarkedDay(classify.New(nil))
	got := parse("Fisk:\nTorsk\nVegetariskt:\nHalloumi\nFisk:\nLax")

	names := make([]string, len(got))
	for i, d := range got {
		names[i] = d.Name
	}
	want := []string{"Torsk", "Halloumi", "Lax"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("dish order = %v, want %v", names, want)
	}
}

func TestUnmarkedDay(t *testing.T) {
	parse := UnmarkedDay(classify.New(nil))

	got := parse("A. Lax med dillsås\nserveras med kokt potatis\nB. Kycklinggryta med ris\nPRIS: 125 kr")
	want := []menu.Dish{
		// Climate prefixes are page noise, continuation lines join their
		// dish, metadata lines disappear.
		{Name: "Lax med dillsås serveras med kokt potatis", Category: menu.CategoryFish},
		{Name: "Kycklinggryta med ris", Category: menu.CategoryMeat},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnmarkedDay = %v, want %v", got, want)
	}
}

func TestUnmarkedDayPlainList(t *testing.T) {
	parse := UnmarkedDay(classify.New(nil))

	got := parse("Lax med dillsås\nPasta pomodoro med basilika")
	want := []menu.Dish{
		{Name: "Lax med dillsås", Category: menu.CategoryFish},
		{Name: "Pasta pomodoro med basilika", Category: menu.CategoryUnclassified},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnmarkedDay = %v, want %v", got, want)
	}
}

func TestUnmarkedDayIgnoresLabels(t *testing.T) {
	// The unmarked shape has no marker state: a line that happens to look
	// like a label is cleaned away or classified like any other line.
	parse := UnmarkedDay(classify.New(nil))
	got := parse("Vegetariskt:\nLax med dillsås")
	for _, d := range got {
		if d.Name == "Lax med dillsås" && d.Category != menu.CategoryFish {
			t.Errorf("dish after label line = %s, want %s", d.Category, menu.CategoryFish)
		}
	}
}

func TestUnmarkedDayEmpty(t *testing.T) {
	parse := UnmarkedDay(classify.New(nil))
	if got := parse(""); len(got) != 0 {
		t.Errorf("UnmarkedDay(\"\") = %v, want empty", got)
	}
}

func TestForKind(t *testing.T) {
	c := classify.New(nil)
	marked := "Vegetariskt:\nPasta med bacon"

	// The feed shape honors the marker; the page shape has no marker state
	// and classifies the same text by keywords.
	if got := ForKind(menu.KindISSFeed, c)(marked); got[0].Category != menu.CategoryVegetarian {
		t.Errorf("iss parser ignored marker: %v", got)
	}
	if got := ForKind(menu.KindKvartersmenyn, c)(marked); len(got) != 2 || got[1].Category != menu.CategoryMeat {
		t.Errorf("kvartersmenyn parser = %v", got)
	}
	// Unknown kinds get the assumption-free unmarked parser.
	if got := ForKind(menu.SourceKind("bogus"), c)("Lax med dillsås"); len(got) != 1 || got[0].Category != menu.CategoryFish {
		t.Errorf("unknown kind parser = %v", got)
	}
}
