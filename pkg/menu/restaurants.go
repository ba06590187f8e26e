package menu

import "sort"

// ID identifies a known restaurant source. The set of valid IDs is closed:
// it is the join key between source parsers and the aggregator, so an ID
// only exists if a source is registered for it.
type ID string

// SourceKind selects the parser shape for a restaurant's raw day text.
type SourceKind string

const (
	// KindISSFeed is the structured ISS feed: category-labeled text per
	// weekday ("Kött:", "Fisk:", "Vegetariskt:"), parsed as the marked shape.
	KindISSFeed SourceKind = "iss"

	// KindKvartersmenyn is a kvartersmenyn.se page: one dish per extracted
	// line, no category labels, parsed as the unmarked shape.
	KindKvartersmenyn SourceKind = "kvartersmenyn"
)

// Restaurant describes one configured menu source.
type Restaurant struct {
	ID   ID         `yaml:"id" json:"id"`
	Name string     `yaml:"name" json:"name"`
	Kind SourceKind `yaml:"kind" json:"kind"`
	URL  string     `yaml:"url" json:"url"`

	// FeedID is the restaurant's identifier inside the ISS feed
	// (unused for page sources). The feed's field name is misspelled
	// upstream ("restrauntId"); the value here is what that field expects.
	FeedID string `yaml:"feed_id,omitempty" json:"feed_id,omitempty"`
}

// DefaultRestaurants is the built-in source set, used when the config
// file does not override it.
func DefaultRestaurants() []Restaurant {
	return []Restaurant{
		{
			ID:     "gourmedia",
			Name:   "Gourmedia",
			Kind:   KindISSFeed,
			URL:    "https://www.iss-menyer.se/restaurants/restaurang-gourmedia",
			FeedID: "Restaurang Gourmedia",
		},
		{
			ID:   "filmhuset",
			Name: "Filmhuset",
			Kind: KindKvartersmenyn,
			URL:  "https://filmhuset.kvartersmenyn.se/",
		},
		{
			ID:   "karavan",
			Name: "Karavan",
			Kind: KindKvartersmenyn,
			URL:  "https://karavan.kvartersmenyn.se/",
		},
	}
}

// SortIDs returns the IDs in deterministic order for stable output.
func SortIDs(ids []ID) []ID {
	sorted := make([]ID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}
