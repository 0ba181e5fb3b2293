// ABOUTME: Top-N aggregation of contract amounts grouped by a label role
// ABOUTME: Labels are cleaned of sentinels, multi-value joins and excess width before grouping

package ranking

import (
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"contractes-api/core/domain"
	"contractes-api/core/normalize"
)

// DefaultLabelWidth is the display width labels are truncated to
const DefaultLabelWidth = 60

const ellipsis = "…"

var sentinels = map[string]struct{}{
	"":           {},
	"-":          {},
	"desconegut": {},
	"unknown":    {},
	"n/a":        {},
	"null":       {},
}

// delimiters are tried longest first so "||" is not split as "|"
var delimiters = []string{"||", "|", ";", "\n"}

// Ranker groups records and sums their amounts
type Ranker struct {
	labelWidth int
}

// NewRanker creates a ranker; width <= 0 uses DefaultLabelWidth
func NewRanker(width int) *Ranker {
	if width <= 0 {
		width = DefaultLabelWidth
	}
	return &Ranker{labelWidth: width}
}

// RankTopN sums amountRole per cleaned groupRole label and returns the n
// largest groups, ties broken by ascending label. Empty input, n <= 0 or a
// schema without the roles yields an empty, non-nil slice.
func (r *Ranker) RankTopN(records []domain.NormalizedRecord, sch domain.LogicalSchema, groupRole, amountRole domain.Role, n int) []domain.RankingRow {
	rows := []domain.RankingRow{}
	if len(records) == 0 || n <= 0 || len(sch.Missing(groupRole, amountRole)) > 0 {
		return rows
	}

	index := make(map[string]int)
	for i := range records {
		label, ok := r.CleanLabel(records[i].Text(groupRole))
		if !ok {
			continue
		}
		pos, seen := index[label]
		if !seen {
			pos = len(rows)
			index[label] = pos
			rows = append(rows, domain.RankingRow{Label: label})
		}
		rows[pos].Total += records[i].AmountFor(amountRole)
		rows[pos].Count++
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Label < rows[j].Label
	})

	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// CleanLabel reduces a raw group value to a display label.
// It reports false for empty values and "unknown" sentinels.
func (r *Ranker) CleanLabel(raw string) (string, bool) {
	label := firstSegment(raw)
	label = strings.Join(strings.Fields(label), " ")
	if IsSentinel(label) {
		return "", false
	}
	if runewidth.StringWidth(label) > r.labelWidth {
		label = runewidth.Truncate(label, r.labelWidth, ellipsis)
	}
	return label, true
}

// IsSentinel reports whether a value means "no value"
func IsSentinel(s string) bool {
	_, ok := sentinels[normalize.Fold(s)]
	return ok
}

func firstSegment(s string) string {
	for _, d := range delimiters {
		if i := strings.Index(s, d); i >= 0 {
			s = s[:i]
		}
	}
	return s
}
