// ABOUTME: Search domain models for contract lookups
// ABOUTME: Defines queries, scopes, strategies and the result envelope returned to consumers

package domain

import "strings"

// Strategy selects how a search is executed
type Strategy string

const (
	// StrategySnapshot scans an already fetched snapshot locally
	StrategySnapshot Strategy = "snapshot"

	// StrategyDelegated forwards the query to the remote full-text search
	StrategyDelegated Strategy = "delegated"
)

// ParseStrategy converts a strategy name, defaulting to snapshot for empty input
func ParseStrategy(s string) (Strategy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(StrategySnapshot):
		return StrategySnapshot, true
	case string(StrategyDelegated):
		return StrategyDelegated, true
	}
	return "", false
}

// EmptyQueryPolicy states what an empty query matches.
// The zero value is deliberately invalid so every call site picks one.
type EmptyQueryPolicy int

const (
	policyUnset EmptyQueryPolicy = iota

	// MatchNothing makes an empty query return no records
	MatchNothing

	// MatchAll makes an empty query return every record
	MatchAll
)

// Valid reports whether the policy was set explicitly
func (p EmptyQueryPolicy) Valid() bool {
	return p == MatchNothing || p == MatchAll
}

// SortOrder requests an explicit ordering of search results
type SortOrder string

const (
	// SortNone preserves input order
	SortNone SortOrder = ""

	// SortDateDesc orders by formalization date, newest first
	SortDateDesc SortOrder = "date_desc"

	// SortAmountDesc orders by amount, largest first
	SortAmountDesc SortOrder = "amount_desc"
)

// FieldScope lists the roles a snapshot search looks at.
// An empty scope means every field of the record.
type FieldScope struct {
	Roles []Role
}

var (
	// ScopeAll searches every field
	ScopeAll = FieldScope{}

	// ScopeCompany searches only the company name and identifier
	ScopeCompany = FieldScope{Roles: []Role{RoleCompany, RoleCompanyID}}

	// ScopeTitle searches only the contract object
	ScopeTitle = FieldScope{Roles: []Role{RoleTitle}}

	// ScopeBuyer searches only the contracting body
	ScopeBuyer = FieldScope{Roles: []Role{RoleBuyer}}
)

// IsAll reports whether the scope covers every field
func (s FieldScope) IsAll() bool {
	return len(s.Roles) == 0
}

// ParseScope converts a scope name into a FieldScope
func ParseScope(name string) (FieldScope, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all":
		return ScopeAll, true
	case "company":
		return ScopeCompany, true
	case "title":
		return ScopeTitle, true
	case "buyer":
		return ScopeBuyer, true
	}
	return FieldScope{}, false
}

// SearchQuery is a tokenized free-text query
type SearchQuery struct {
	// Raw is the query as typed by the user
	Raw string

	// Tokens are folded, deduplicated whitespace-separated terms
	Tokens []string
}

// IsEmpty reports whether the query has no tokens
func (q SearchQuery) IsEmpty() bool {
	return len(q.Tokens) == 0
}

// SearchResult is the outcome of a search.
// A nil error with no records is the explicit zero-results state.
type SearchResult struct {
	// Records are the matches in their final order
	Records []NormalizedRecord

	// Strategy is how the search was executed
	Strategy Strategy

	// Schema is the logical schema resolved for the searched batch
	Schema LogicalSchema

	// Gaps lists roles the requested scope needed but the batch lacked
	Gaps []Role
}

// Empty reports whether the search matched nothing
func (r *SearchResult) Empty() bool {
	return r == nil || len(r.Records) == 0
}
