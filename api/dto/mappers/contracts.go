// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Provides clean separation between the dataset engine and the API layer

package mappers

import (
	"time"

	"contractes-api/api/dto/responses"
	"contractes-api/core/domain"
)

const dateLayout = "2006-01-02"

// CompanySearchHint is shown when a company search matches nothing
const CompanySearchHint = "No contracts found. Try a shorter keyword from the company name, e.g. SOL or INSTITUT instead of the full legal name."

// ToContractResponse converts a normalized record to a DTO
func ToContractResponse(rec *domain.NormalizedRecord, includeRaw bool) responses.ContractResponse {
	resp := responses.ContractResponse{
		Company:           rec.Company,
		CompanyID:         rec.CompanyID,
		Title:             rec.Title,
		Buyer:             rec.Buyer,
		Procedure:         rec.Procedure,
		Amount:            rec.Amount,
		AmountNoVAT:       rec.AmountNoVAT,
		FormalizationDate: formatDate(rec.FormalizationDate),
		AwardDate:         formatDate(rec.AwardDate),
		Link:              rec.Link,
	}
	for _, w := range rec.Warnings {
		resp.Warnings = append(resp.Warnings, w.String())
	}
	if includeRaw {
		resp.Fields = rec.Raw
	}
	return resp
}

// ToSearchResponse converts a search result to a DTO
func ToSearchResponse(query string, result *domain.SearchResult, summary domain.Summary, includeRaw bool) responses.SearchResponse {
	resp := responses.SearchResponse{
		State:     responses.StateEmpty,
		Query:     query,
		Contracts: []responses.ContractResponse{},
	}
	if result == nil {
		return resp
	}

	resp.Strategy = string(result.Strategy)
	resp.Count = summary.Count
	resp.Total = summary.Total
	for i := range result.Records {
		resp.Contracts = append(resp.Contracts, ToContractResponse(&result.Records[i], includeRaw))
	}
	for _, g := range result.Gaps {
		resp.Gaps = append(resp.Gaps, string(g))
	}
	if len(resp.Contracts) > 0 {
		resp.State = responses.StateOK
	}
	return resp
}

// ToRankingResponse converts ranking rows to a DTO with 1-based ranks
func ToRankingResponse(rows []domain.RankingRow) responses.RankingResponse {
	resp := responses.RankingResponse{
		State:     responses.StateEmpty,
		Companies: make([]responses.RankingRowResponse, 0, len(rows)),
	}
	for i, r := range rows {
		resp.Companies = append(resp.Companies, responses.RankingRowResponse{
			Rank:  i + 1,
			Label: r.Label,
			Total: r.Total,
			Count: r.Count,
		})
	}
	if len(rows) > 0 {
		resp.State = responses.StateOK
	}
	return resp
}

// ToCompaniesResponse converts the company directory to a DTO
func ToCompaniesResponse(names []string) responses.CompaniesResponse {
	if names == nil {
		names = []string{}
	}
	state := responses.StateEmpty
	if len(names) > 0 {
		state = responses.StateOK
	}
	return responses.CompaniesResponse{State: state, Count: len(names), Companies: names}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
