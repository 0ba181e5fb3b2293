// ABOUTME: Query parameters for a dataset page request
// ABOUTME: Encodes SoQL parameters in a fixed order so equal requests produce equal URLs

package source

import (
	"net/url"
	"strconv"
	"strings"
)

// OrderBy is one $order term
type OrderBy struct {
	Field string
	Desc  bool
}

// Params describes a dataset page request
type Params struct {
	// Select restricts returned columns ($select)
	Select []string

	// Where filters rows server-side ($where)
	Where Predicate

	// Query is forwarded verbatim as full-text search ($q)
	Query string

	// Order sorts rows server-side ($order)
	Order []OrderBy

	// Limit caps the number of rows ($limit); zero leaves the provider default
	Limit int

	// Offset skips rows for paging ($offset)
	Offset int
}

// Encode renders the parameters as a query string.
// Parameters always appear in the order $select, $where, $q, $order, $limit, $offset.
func (p Params) Encode() string {
	var parts []string
	add := func(key, value string) {
		parts = append(parts, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}

	if len(p.Select) > 0 {
		fields := make([]string, 0, len(p.Select))
		for _, f := range p.Select {
			if f = quoteIdent(f); f != "" {
				fields = append(fields, f)
			}
		}
		if len(fields) > 0 {
			add("$select", strings.Join(fields, ","))
		}
	}
	if p.Where != nil {
		if where := p.Where.SoQL(); where != "" {
			add("$where", where)
		}
	}
	if q := strings.TrimSpace(p.Query); q != "" {
		add("$q", q)
	}
	if len(p.Order) > 0 {
		terms := make([]string, 0, len(p.Order))
		for _, o := range p.Order {
			field := quoteIdent(o.Field)
			if field == "" {
				continue
			}
			if o.Desc {
				field += " DESC"
			}
			terms = append(terms, field)
		}
		if len(terms) > 0 {
			add("$order", strings.Join(terms, ","))
		}
	}
	if p.Limit > 0 {
		add("$limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		add("$offset", strconv.Itoa(p.Offset))
	}
	return strings.Join(parts, "&")
}
