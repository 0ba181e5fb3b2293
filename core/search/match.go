// ABOUTME: Local snapshot matching and ordering of normalized records
// ABOUTME: Every token must appear in at least one searchable field of a record

package search

import (
	"sort"
	"strings"

	"contractes-api/core/domain"
	"contractes-api/core/normalize"
)

// Matches reports whether every token is a substring of at least one
// folded searchable field of the record.
func Matches(rec *domain.NormalizedRecord, tokens []string, scope domain.FieldScope) bool {
	fields := searchableFields(rec, scope)
	for _, tok := range tokens {
		found := false
		for _, f := range fields {
			if strings.Contains(f, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func searchableFields(rec *domain.NormalizedRecord, scope domain.FieldScope) []string {
	var fields []string
	add := func(s string) {
		if s = normalize.Fold(s); s != "" {
			fields = append(fields, s)
		}
	}

	if scope.IsAll() {
		for _, name := range rec.Raw.Fields() {
			add(normalize.Text(rec.Raw[name]))
		}
		for _, role := range domain.AllRoles {
			add(rec.Text(role))
		}
		return fields
	}

	for _, role := range scope.Roles {
		add(rec.Text(role))
	}
	return fields
}

// Sort orders records in place with a stable sort.
// Date ordering drops records without a contract date.
func Sort(records []domain.NormalizedRecord, order domain.SortOrder) []domain.NormalizedRecord {
	switch order {
	case domain.SortDateDesc:
		dated := records[:0:0]
		for _, r := range records {
			if r.Date(domain.RoleFormalizationDate, true) != nil {
				dated = append(dated, r)
			}
		}
		sort.SliceStable(dated, func(i, j int) bool {
			return dated[i].Date(domain.RoleFormalizationDate, true).After(*dated[j].Date(domain.RoleFormalizationDate, true))
		})
		return dated
	case domain.SortAmountDesc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Amount > records[j].Amount
		})
	}
	return records
}

// ParseSort converts a sort name
func ParseSort(name string) (domain.SortOrder, bool) {
	switch domain.SortOrder(strings.ToLower(strings.TrimSpace(name))) {
	case domain.SortNone:
		return domain.SortNone, true
	case domain.SortDateDesc:
		return domain.SortDateDesc, true
	case domain.SortAmountDesc:
		return domain.SortAmountDesc, true
	}
	return "", false
}
