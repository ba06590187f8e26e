// Package classify assigns food categories to dish names using a
// data-driven keyword table: explicit source markers win, keyword
// heuristics decide the rest.
package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases and strips accents for keyword matching
// (e.g. Grönsaker -> gronsaker). Matching happens on folded text only;
// dish names keep their exact source spelling.
func Fold(s string) string {
	result, _, _ := transform.String(stripAccents, strings.ToLower(s))
	return result
}

// NormalizeLines splits raw source text into trimmed, non-empty lines.
// Line endings are normalized, per-line whitespace trimmed, empty lines
// dropped. Swedish letters and case pass through untouched: normalization
// only removes incidental formatting, never dish content. Total over any
// input; the empty string yields no lines.
func NormalizeLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// tokens splits folded text into letter/digit runs for whole-token matching.
func tokens(folded string) []string {
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
