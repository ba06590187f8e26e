package classify

import (
	"sync"

	"github.com/rhlunch/rhlunch/pkg/menu"
)

// Classifier assigns exactly one category to a dish name. Classification
// is a pure function of the loaded table and the input: deterministic,
// idempotent, and total. The table can be hot-swapped (SIGHUP reload in
// the server), hence the lock.
type Classifier struct {
	mu    sync.RWMutex
	table *Table
}

// New creates a classifier over the given table. A nil table uses the
// embedded default vocabulary.
func New(table *Table) *Classifier {
	if table == nil {
		table = DefaultTable()
	}
	return &Classifier{table: table}
}

// Reload replaces the vocabulary from a YAML file. On error the previous
// table stays active.
func (c *Classifier) Reload(path string) error {
	table, err := LoadTable(path)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.table = table
	c.mu.Unlock()
	return nil
}

// Classify categorizes a dish name by keyword heuristics alone.
func (c *Classifier) Classify(name string) menu.Category {
	return c.ClassifyWithHint(name, menu.CategoryNone)
}

// ClassifyWithHint categorizes a dish name. A non-empty hint is the
// explicit marker the source put before this dish and is authoritative:
// sources are trusted about their own labels, so the hint is returned
// unconditionally. Without a hint, the folded name is scanned against the
// keyword table with precedence Fish > Meat > Vegetarian; no match means
// Unclassified.
func (c *Classifier) ClassifyWithHint(name string, hint menu.Category) menu.Category {
	if hint != menu.CategoryNone {
		return hint
	}

	c.mu.RLock()
	table := c.table
	c.mu.RUnlock()

	folded := Fold(name)
	toks := tokens(folded)
	for _, cat := range matchOrder {
		if table.match(cat, folded, toks) {
			return cat
		}
	}
	return menu.CategoryUnclassified
}

// Marker reports whether line is an explicit category label in the
// currently loaded vocabulary.
func (c *Classifier) Marker(line string) (menu.Category, bool) {
	c.mu.RLock()
	table := c.table
	c.mu.RUnlock()
	return table.Marker(line)
}
