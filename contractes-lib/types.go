// ABOUTME: Public types for the Contractes library API
// ABOUTME: Provides user-friendly types that wrap internal domain models

package contractes

import (
	"time"

	"contractes-api/core/domain"
)

// Contract is one normalized public contract
type Contract struct {
	Company           string         `json:"company,omitempty"`
	CompanyID         string         `json:"company_id,omitempty"`
	Title             string         `json:"title,omitempty"`
	Buyer             string         `json:"buyer,omitempty"`
	Procedure         string         `json:"procedure,omitempty"`
	Amount            float64        `json:"amount"`
	AmountNoVAT       float64        `json:"amount_no_vat"`
	FormalizationDate *time.Time     `json:"formalization_date,omitempty"`
	AwardDate         *time.Time     `json:"award_date,omitempty"`
	Link              string         `json:"link,omitempty"`
	Fields            map[string]any `json:"fields,omitempty"`
}

// SearchResult is the outcome of a search
type SearchResult struct {
	Contracts []Contract `json:"contracts"`
	Count     int        `json:"count"`
	Total     float64    `json:"total"`

	// Gaps lists fields the search needed but the dataset did not provide
	Gaps []string `json:"gaps,omitempty"`
}

// Empty reports whether the search matched nothing
func (r *SearchResult) Empty() bool {
	return r == nil || len(r.Contracts) == 0
}

// CompanyTotal is one row of a company ranking
type CompanyTotal struct {
	Company string  `json:"company"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
}

func toContract(rec *domain.NormalizedRecord) Contract {
	return Contract{
		Company:           rec.Company,
		CompanyID:         rec.CompanyID,
		Title:             rec.Title,
		Buyer:             rec.Buyer,
		Procedure:         rec.Procedure,
		Amount:            rec.Amount,
		AmountNoVAT:       rec.AmountNoVAT,
		FormalizationDate: rec.FormalizationDate,
		AwardDate:         rec.AwardDate,
		Link:              rec.Link,
		Fields:            rec.Raw,
	}
}

func toSearchResult(result *domain.SearchResult) *SearchResult {
	out := &SearchResult{Contracts: make([]Contract, 0, len(result.Records))}
	for i := range result.Records {
		out.Contracts = append(out.Contracts, toContract(&result.Records[i]))
	}
	summary := domain.Summarize(result.Records, result.Schema.AmountRole())
	out.Count, out.Total = summary.Count, summary.Total
	for _, g := range result.Gaps {
		out.Gaps = append(out.Gaps, string(g))
	}
	return out
}
