// ABOUTME: Schema resolver detecting which physical columns fulfil each logical role
// ABOUTME: Resolution is a pure function of the set of field names in a sample

package schema

import (
	"sort"
	"strings"

	"contractes-api/core/domain"
	"contractes-api/core/errors"
)

// Resolver maps physical dataset columns to logical roles
type Resolver struct {
	table Table
}

// NewResolver creates a resolver over the given alias table.
// A nil table uses DefaultTable.
func NewResolver(table Table) *Resolver {
	if table == nil {
		table = DefaultTable()
	}
	return &Resolver{table: table}
}

// Table returns the alias table the resolver uses
func (r *Resolver) Table() Table {
	return r.table
}

// Resolve builds a logical schema from a sample of records.
// The field set is the union over the sample because rows omit null columns.
func (r *Resolver) Resolve(sample []domain.Record) domain.LogicalSchema {
	return r.ResolveFields(fieldSet(sample))
}

// ResolveFields builds a logical schema from a list of physical field names
func (r *Resolver) ResolveFields(fields []string) domain.LogicalSchema {
	// lower-cased name -> physical name, first in sorted order wins
	byLower := make(map[string]string, len(fields))
	sorted := append([]string(nil), fields...)
	sort.Strings(sorted)
	lowered := make([]string, 0, len(sorted))
	for _, f := range sorted {
		l := strings.ToLower(f)
		if _, seen := byLower[l]; seen {
			continue
		}
		byLower[l] = f
		lowered = append(lowered, l)
	}
	sort.Strings(lowered)

	schema := make(domain.LogicalSchema)
	claimed := make(map[string]bool)

	for _, a := range r.table {
		for _, alias := range a.Exact {
			if physical, ok := byLower[alias]; ok {
				schema[a.Role] = physical
				claimed[alias] = true
				break
			}
		}
	}

	for _, a := range r.table {
		if schema.Has(a.Role) {
			continue
		}
	rules:
		for _, rule := range a.Contains {
			for _, l := range lowered {
				if claimed[l] || !rule.Matches(l) {
					continue
				}
				schema[a.Role] = byLower[l]
				claimed[l] = true
				break rules
			}
		}
	}

	return schema
}

// Gaps returns a SchemaResolutionGap naming the required roles the schema
// lacks, or nil when every one is resolved.
func Gaps(schema domain.LogicalSchema, required ...domain.Role) error {
	missing := schema.Missing(required...)
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, role := range missing {
		names[i] = string(role)
	}
	return &errors.SchemaResolutionGap{Roles: names}
}

func fieldSet(sample []domain.Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range sample {
		for k := range rec {
			seen[k] = struct{}{}
		}
	}
	fields := make([]string, 0, len(seen))
	for k := range seen {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}
