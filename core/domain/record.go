// ABOUTME: Record domain models for raw and normalized contract rows
// ABOUTME: Raw records keep the remote shape, normalized records carry parsed values

package domain

import (
	"sort"
	"time"

	"contractes-api/core/errors"
)

// Record is a raw dataset row: physical field name to loosely typed value.
// Values are strings, json.Number, float64, bool, nil or nested map[string]any.
// A Record is never mutated after it leaves the source adapter.
type Record map[string]any

// Fields returns the record's field names in sorted order
func (r Record) Fields() []string {
	fields := make([]string, 0, len(r))
	for k := range r {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// Value returns the raw value of a field
func (r Record) Value(field string) (any, bool) {
	v, ok := r[field]
	return v, ok
}

// NormalizedRecord is a raw record plus values derived through the logical schema
type NormalizedRecord struct {
	// Raw is the record as returned by the remote source
	Raw Record `json:"raw"`

	// Company is the awarded company name
	Company string `json:"company,omitempty"`

	// CompanyID is the awarded company identifier
	CompanyID string `json:"companyId,omitempty"`

	// Title is the contract object
	Title string `json:"title,omitempty"`

	// Buyer is the contracting body
	Buyer string `json:"buyer,omitempty"`

	// Procedure is the award procedure
	Procedure string `json:"procedure,omitempty"`

	// Amount is the award amount with VAT, zero when unparsable
	Amount float64 `json:"amount"`

	// AmountNoVAT is the award amount without VAT, zero when unparsable
	AmountNoVAT float64 `json:"amountNoVat"`

	// FormalizationDate is nil when absent or unparsable
	FormalizationDate *time.Time `json:"formalizationDate,omitempty"`

	// AwardDate is nil when absent or unparsable
	AwardDate *time.Time `json:"awardDate,omitempty"`

	// Link is a plain publication URL
	Link string `json:"link,omitempty"`

	// Warnings lists fields that fell back to a safe default
	Warnings []errors.ParseWarning `json:"warnings,omitempty"`
}

// Date returns the date for the requested role.
// When fallback is true and that date is absent, the other contract date is used.
func (n *NormalizedRecord) Date(role Role, fallback bool) *time.Time {
	var primary, secondary *time.Time
	switch role {
	case RoleAwardDate:
		primary, secondary = n.AwardDate, n.FormalizationDate
	default:
		primary, secondary = n.FormalizationDate, n.AwardDate
	}
	if primary != nil || !fallback {
		return primary
	}
	return secondary
}

// Text returns the normalized text value for a text role
func (n *NormalizedRecord) Text(role Role) string {
	switch role {
	case RoleCompany:
		return n.Company
	case RoleCompanyID:
		return n.CompanyID
	case RoleTitle:
		return n.Title
	case RoleBuyer:
		return n.Buyer
	case RoleProcedure:
		return n.Procedure
	case RoleLink:
		return n.Link
	}
	return ""
}

// AmountFor returns the numeric value for an amount role
func (n *NormalizedRecord) AmountFor(role Role) float64 {
	if role == RoleAmountNoVAT {
		return n.AmountNoVAT
	}
	return n.Amount
}

// RankingRow is one group in a top-N leaderboard
type RankingRow struct {
	// Label is the cleaned group label
	Label string `json:"label"`

	// Total is the summed amount for the group
	Total float64 `json:"total"`

	// Count is the number of records contributing to the group
	Count int `json:"count"`
}

// Summary holds headline figures for a result set
type Summary struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Summarize sums amounts over normalized records
func Summarize(records []NormalizedRecord, role Role) Summary {
	s := Summary{Count: len(records)}
	for i := range records {
		s.Total += records[i].AmountFor(role)
	}
	return s
}
