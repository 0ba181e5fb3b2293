// ABOUTME: Query tokenization for accent and case insensitive matching
// ABOUTME: Tokens are folded the same way record fields are folded

package search

import (
	"strings"

	"contractes-api/core/domain"
	"contractes-api/core/normalize"
)

// Tokenize splits a raw query on whitespace, folds each token and drops duplicates
func Tokenize(raw string) domain.SearchQuery {
	q := domain.SearchQuery{Raw: raw}
	seen := make(map[string]struct{})
	for _, field := range strings.Fields(raw) {
		tok := normalize.Fold(field)
		if tok == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		q.Tokens = append(q.Tokens, tok)
	}
	return q
}
