package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rhlunch/rhlunch/pkg/menu"
)

const testTableYAML = `
min_token_len: 4
markers:
  fish: ["Fisk", "Dagens fisk"]
  meat: ["Kött"]
  vegetarian: ["Vegetariskt", "Vego"]
keywords:
  fish: ["lax", "torsk", "fisk"]
  meat: ["kyckling", "biff", "ko"]
  vegetarian: ["halloumi", "vego"]
`

func testTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := parseTable([]byte(testTableYAML))
	if err != nil {
		t.Fatalf("parseTable: %v", err)
	}
	return tbl
}

func TestDefaultTable(t *testing.T) {
	tbl := DefaultTable()
	for _, cat := range matchOrder {
		if len(tbl.keywords[cat]) == 0 {
			t.Errorf("embedded table has no keywords for %s", cat)
		}
	}
	if len(tbl.markers) == 0 {
		t.Error("embedded table has no markers")
	}
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	if err := os.WriteFile(path, []byte(testTableYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if got, ok := tbl.Marker("Kött:"); !ok || got != menu.CategoryMeat {
		t.Errorf("Marker(Kött:) = %v, %v", got, ok)
	}
}

func TestLoadTableErrors(t *testing.T) {
	if _, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadTable on missing file: want error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("keywords: {soup: [minestrone]}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTable(path); err == nil {
		t.Error("LoadTable with unknown category: want error")
	}
}

func TestParseTableRejectsEmpty(t *testing.T) {
	if _, err := parseTable([]byte("markers: {fish: [Fisk]}")); err == nil {
		t.Error("parseTable without keywords: want error")
	}
}

func TestMarker(t *testing.T) {
	tbl := testTable(t)
	tests := []struct {
		line string
		want menu.Category
		ok   bool
	}{
		{"Kött:", menu.CategoryMeat, true},
		{"kött", menu.CategoryMeat, true},
		{"VEGETARISKT:", menu.CategoryVegetarian, true},
		{"Dagens fisk:", menu.CategoryFish, true},
		{"  Fisk  ", menu.CategoryFish, true},
		{"Veckans soppa:", menu.CategoryNone, false},
		{"Biff med lök", menu.CategoryNone, false},
	}
	for _, tt := range tests {
		got, ok := tbl.Marker(tt.line)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Marker(%q) = %v, %v; want %v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMatchModes(t *testing.T) {
	tbl := testTable(t)
	tests := []struct {
		dish string
		cat  menu.Category
		want bool
	}{
		// >= min_token_len matches anywhere.
		{"kycklingfilé med ris", menu.CategoryMeat, true},
		// 3-rune keywords match compound edges but not interiors.
		{"laxfilé", menu.CategoryFish, true},
		{"gravlax", menu.CategoryFish, true},
		{"relaxering", menu.CategoryFish, false},
		// < 3 runes must be the whole token.
		{"ko på grillen", menu.CategoryMeat, true},
		{"kokosgryta", menu.CategoryMeat, false},
	}
	for _, tt := range tests {
		folded := Fold(tt.dish)
		got := tbl.match(tt.cat, folded, tokens(folded))
		if got != tt.want {
			t.Errorf("match(%s, %q) = %v, want %v", tt.cat, tt.dish, got, tt.want)
		}
	}
}
