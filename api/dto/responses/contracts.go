// ABOUTME: Response DTOs for contract search, rankings and the company directory
// ABOUTME: Every list response carries an explicit state so empty results are never ambiguous

package responses

import "time"

// Result states
const (
	StateOK              = "ok"
	StateEmpty           = "empty"
	StateDataUnavailable = "data_unavailable"
)

// ContractResponse is one normalized contract
type ContractResponse struct {
	Company           string         `json:"company,omitempty"`
	CompanyID         string         `json:"companyId,omitempty"`
	Title             string         `json:"title,omitempty"`
	Buyer             string         `json:"buyer,omitempty"`
	Procedure         string         `json:"procedure,omitempty"`
	Amount            float64        `json:"amount"`
	AmountNoVAT       float64        `json:"amountNoVat"`
	FormalizationDate string         `json:"formalizationDate,omitempty" doc:"YYYY-MM-DD"`
	AwardDate         string         `json:"awardDate,omitempty" doc:"YYYY-MM-DD"`
	Link              string         `json:"link,omitempty"`
	Warnings          []string       `json:"warnings,omitempty" doc:"Fields that fell back to a default during normalization"`
	Fields            map[string]any `json:"fields,omitempty" doc:"Raw dataset row"`
}

// SearchResponse is the outcome of a contract search
type SearchResponse struct {
	State     string             `json:"state" enum:"ok,empty"`
	Query     string             `json:"query"`
	Strategy  string             `json:"strategy"`
	Count     int                `json:"count"`
	Total     float64            `json:"total" doc:"Sum of award amounts with VAT"`
	Contracts []ContractResponse `json:"contracts"`
	Gaps      []string           `json:"gaps,omitempty" doc:"Roles the search scope needed but the dataset lacked"`
	Hint      string             `json:"hint,omitempty"`
}

// RankingRowResponse is one leaderboard row
type RankingRowResponse struct {
	Rank  int     `json:"rank"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// RankingResponse is a top-N leaderboard
type RankingResponse struct {
	State     string               `json:"state" enum:"ok,empty"`
	Companies []RankingRowResponse `json:"companies"`
}

// CompaniesResponse is the company directory
type CompaniesResponse struct {
	State     string   `json:"state" enum:"ok,empty"`
	Count     int      `json:"count"`
	Companies []string `json:"companies"`
}

// RefreshResponse confirms a cache invalidation
type RefreshResponse struct {
	Status      string    `json:"status"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

// HealthResponse reports service status
type HealthResponse struct {
	Status     string                 `json:"status"`
	Cache      string                 `json:"cache"`
	CacheStats map[string]interface{} `json:"cache_stats,omitempty"`
	Flags      map[string]bool        `json:"flags"`
}

// ErrorResponse is returned when the dataset cannot be reached
type ErrorResponse struct {
	Status  int    `json:"-"`
	State   string `json:"state"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ErrorResponse) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError
func (e *ErrorResponse) GetStatus() int {
	return e.Status
}
