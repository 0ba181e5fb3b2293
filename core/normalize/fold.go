// ABOUTME: Text folding shared by search and ranking
// ABOUTME: Lower-cases, strips diacritics and collapses whitespace so comparisons ignore accents

package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s lower-cased, without combining marks, with single spaces.
// "Institut Català del Sòl" folds to "institut catala del sol".
func Fold(s string) string {
	if s == "" {
		return ""
	}
	// transform.Chain is stateful, build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ReplaceAll(folded, "·", "")
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
