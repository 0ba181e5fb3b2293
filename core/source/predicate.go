// ABOUTME: Small SoQL expression builder for $where clauses
// ABOUTME: Every literal is quoted and escaped, callers never interpolate raw input

package source

import "strings"

// Predicate renders a SoQL boolean expression
type Predicate interface {
	SoQL() string
}

type containsPredicate struct {
	field string
	value string
}

// Contains matches rows whose field contains value, ignoring case
func Contains(field, value string) Predicate {
	return containsPredicate{field: field, value: value}
}

func (p containsPredicate) SoQL() string {
	v := strings.ToUpper(p.value)
	v = escapeLike(v)
	return "upper(" + quoteIdent(p.field) + ") like " + quote("%"+v+"%")
}

type equalsPredicate struct {
	field string
	value string
}

// Equals matches rows whose field equals value exactly
func Equals(field, value string) Predicate {
	return equalsPredicate{field: field, value: value}
}

func (p equalsPredicate) SoQL() string {
	return quoteIdent(p.field) + " = " + quote(p.value)
}

type junction struct {
	op    string
	terms []Predicate
}

// And joins predicates that must all hold
func And(terms ...Predicate) Predicate {
	return junction{op: " AND ", terms: compact(terms)}
}

// Or joins predicates of which at least one must hold
func Or(terms ...Predicate) Predicate {
	return junction{op: " OR ", terms: compact(terms)}
}

func (j junction) SoQL() string {
	switch len(j.terms) {
	case 0:
		return ""
	case 1:
		return j.terms[0].SoQL()
	}
	parts := make([]string, len(j.terms))
	for i, t := range j.terms {
		parts[i] = "(" + t.SoQL() + ")"
	}
	return strings.Join(parts, j.op)
}

func compact(terms []Predicate) []Predicate {
	out := make([]Predicate, 0, len(terms))
	for _, t := range terms {
		if t != nil && t.SoQL() != "" {
			out = append(out, t)
		}
	}
	return out
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// escapeLike drops the multi-character LIKE wildcard from user input
func escapeLike(s string) string {
	return strings.ReplaceAll(s, "%", "")
}

// quoteIdent keeps field names to the characters SoQL accepts unquoted
func quoteIdent(field string) string {
	var b strings.Builder
	for _, r := range field {
		if r == '_' || r == ':' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
