package classify

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rhlunch/rhlunch/pkg/menu"
	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var defaultKeywordsYAML []byte

// tableDoc is the YAML schema for a keyword table.
type tableDoc struct {
	MinTokenLen int                 `yaml:"min_token_len"`
	Markers     map[string][]string `yaml:"markers"`
	Keywords    map[string][]string `yaml:"keywords"`
}

// matchMode controls how a keyword may appear in dish text. Keywords at
// or above min_token_len match as substrings (Swedish compounds:
// "fisksoppa" contains "fisk"). Shorter keywords are restricted to token
// boundaries so fragments don't misfire inside unrelated words: three-rune
// keywords may still sit at a compound's edge ("laxfilé", "gravlax"),
// anything shorter must be the whole token.
type matchMode int

const (
	matchSubstring matchMode = iota
	matchTokenEdge
	matchTokenExact
)

// keyword is one match pattern, pre-folded at load time.
type keyword struct {
	folded string
	mode   matchMode
}

// Table is a loaded, read-only keyword table: per-category keyword sets
// plus the marker-label vocabulary. Build once, share freely.
type Table struct {
	keywords map[menu.Category][]keyword
	markers  map[string]menu.Category
}

// matchOrder is the fixed precedence for simultaneous keyword matches.
// Fish and meat keywords are the more specific ones, so protein content
// wins over generic vegetarian qualifiers.
var matchOrder = [3]menu.Category{
	menu.CategoryFish,
	menu.CategoryMeat,
	menu.CategoryVegetarian,
}

var categoryKeys = map[string]menu.Category{
	"fish":       menu.CategoryFish,
	"meat":       menu.CategoryMeat,
	"vegetarian": menu.CategoryVegetarian,
}

// LoadTable reads and compiles a keyword table from a YAML file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword table %s: %w", path, err)
	}
	t, err := parseTable(data)
	if err != nil {
		return nil, fmt.Errorf("parse keyword table %s: %w", path, err)
	}
	return t, nil
}

// DefaultTable compiles the embedded vocabulary. The embedded file is part
// of the build, so a parse failure is a programming error.
func DefaultTable() *Table {
	t, err := parseTable(defaultKeywordsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded keywords.yaml: %v", err))
	}
	return t
}

func parseTable(data []byte) (*Table, error) {
	var doc tableDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.MinTokenLen <= 0 {
		doc.MinTokenLen = 4
	}

	t := &Table{
		keywords: make(map[menu.Category][]keyword),
		markers:  make(map[string]menu.Category),
	}

	for key, words := range doc.Keywords {
		cat, ok := categoryKeys[key]
		if !ok {
			return nil, fmt.Errorf("unknown keyword category %q", key)
		}
		for _, w := range words {
			folded := Fold(strings.TrimSpace(w))
			if folded == "" {
				continue
			}
			mode := matchSubstring
			switch n := utf8.RuneCountInString(folded); {
			case n < 3:
				mode = matchTokenExact
			case n < doc.MinTokenLen:
				mode = matchTokenEdge
			}
			t.keywords[cat] = append(t.keywords[cat], keyword{folded: folded, mode: mode})
		}
	}
	if len(t.keywords) == 0 {
		return nil, fmt.Errorf("no keywords defined")
	}

	for key, labels := range doc.Markers {
		cat, ok := categoryKeys[key]
		if !ok {
			return nil, fmt.Errorf("unknown marker category %q", key)
		}
		for _, l := range labels {
			folded := Fold(strings.TrimSpace(l))
			if folded == "" {
				continue
			}
			t.markers[folded] = cat
		}
	}

	return t, nil
}

// Marker reports whether line is an explicit category label
// ("Kött:", "Vegetariskt", "Dagens fisk:"). A trailing colon is optional.
// Unrecognized label-ish text is not a marker; the caller treats it as a
// plain dish line.
func (t *Table) Marker(line string) (menu.Category, bool) {
	folded := strings.TrimSpace(Fold(line))
	folded = strings.TrimSuffix(folded, ":")
	folded = strings.TrimSpace(folded)
	cat, ok := t.markers[folded]
	return cat, ok
}

// match reports whether the folded dish text contains any keyword of cat.
func (t *Table) match(cat menu.Category, folded string, toks []string) bool {
	for _, kw := range t.keywords[cat] {
		switch kw.mode {
		case matchSubstring:
			if strings.Contains(folded, kw.folded) {
				return true
			}
		case matchTokenEdge:
			for _, tok := range toks {
				if tok == kw.folded ||
					strings.HasPrefix(tok, kw.folded) ||
					strings.HasSuffix(tok, kw.folded) {
					return true
				}
			}
		case matchTokenExact:
			for _, tok := range toks {
				if tok == kw.folded {
					return true
				}
			}
		}
	}
	return false
}
