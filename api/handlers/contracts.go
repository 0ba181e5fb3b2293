// ABOUTME: Contract handlers for the Huma API
// ABOUTME: Exposes search, company lookup, rankings, the company directory and cache refresh

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"contractes-api/api/dto/mappers"
	"contractes-api/api/dto/requests"
	"contractes-api/api/dto/responses"
	"contractes-api/core/dataset"
	"contractes-api/core/domain"
)

// ContractService defines the methods needed from the dataset service
type ContractService interface {
	Search(ctx context.Context, req dataset.SearchRequest) (*domain.SearchResult, error)
	SearchCompany(ctx context.Context, name string) (*domain.SearchResult, error)
	TopCompanies(ctx context.Context, n int) ([]domain.RankingRow, error)
	Companies(ctx context.Context) ([]string, error)
	Summary(records []domain.NormalizedRecord, sch domain.LogicalSchema) domain.Summary
	Refresh(ctx context.Context) error
}

// ContractHandler handles contract-related HTTP requests
type ContractHandler struct {
	service ContractService
	now     func() time.Time
}

// NewContractHandler creates a new contract handler
func NewContractHandler(service ContractService) *ContractHandler {
	return &ContractHandler{service: service, now: time.Now}
}

// RegisterRoutes registers all contract-related routes
func (h *ContractHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "searchContracts",
		Method:      http.MethodGet,
		Path:        "/contracts/search",
		Summary:     "Search contracts",
		Description: "Matches every word of the query, ignoring case and accents, against recent contracts or the remote full-text index",
		Tags:        []string{"Contracts"},
	}, h.SearchContracts)

	huma.Register(api, huma.Operation{
		OperationID: "searchCompanyContracts",
		Method:      http.MethodGet,
		Path:        "/contracts/company",
		Summary:     "Find contracts awarded to a company",
		Description: "Filters the whole dataset server-side by company name or identifier",
		Tags:        []string{"Contracts"},
	}, h.SearchCompany)

	huma.Register(api, huma.Operation{
		OperationID: "listCompanies",
		Method:      http.MethodGet,
		Path:        "/companies",
		Summary:     "List awarded companies",
		Description: "Distinct company names from the most recent contracts, sorted alphabetically",
		Tags:        []string{"Companies"},
	}, h.ListCompanies)

	huma.Register(api, huma.Operation{
		OperationID: "topCompanies",
		Method:      http.MethodGet,
		Path:        "/companies/top",
		Summary:     "Rank companies by awarded amount",
		Tags:        []string{"Companies"},
	}, h.TopCompanies)

	huma.Register(api, huma.Operation{
		OperationID: "refreshCache",
		Method:      http.MethodPost,
		Path:        "/cache/refresh",
		Summary:     "Invalidate cached dataset snapshots",
		Tags:        []string{"Cache"},
	}, h.Refresh)
}

// SearchContractsInput defines the input for the SearchContracts operation
type SearchContractsInput struct {
	requests.SearchParams
}

// SearchOutput defines the output of search operations
type SearchOutput struct {
	Body responses.SearchResponse
}

// SearchContracts handles GET /contracts/search
func (h *ContractHandler) SearchContracts(ctx context.Context, input *SearchContractsInput) (*SearchOutput, error) {
	req, err := input.ToDomain()
	if err != nil {
		return nil, toHumaError(err)
	}

	result, err := h.service.Search(ctx, req)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &SearchOutput{
		Body: mappers.ToSearchResponse(input.Q, result, h.summarize(result), input.Raw),
	}, nil
}

func (h *ContractHandler) summarize(result *domain.SearchResult) domain.Summary {
	if result == nil {
		return domain.Summary{}
	}
	return h.service.Summary(result.Records, result.Schema)
}

// SearchCompanyInput defines the input for the SearchCompany operation
type SearchCompanyInput struct {
	Name string `query:"name" required:"true" minLength:"1" maxLength:"200" doc:"Company name or tax identifier, or part of it"`
	Raw  bool   `query:"raw" doc:"Include the raw dataset row with each contract"`
}

// SearchCompany handles GET /contracts/company
func (h *ContractHandler) SearchCompany(ctx context.Context, input *SearchCompanyInput) (*SearchOutput, error) {
	result, err := h.service.SearchCompany(ctx, input.Name)
	if err != nil {
		return nil, toHumaError(err)
	}

	resp := mappers.ToSearchResponse(input.Name, result, h.summarize(result), input.Raw)
	if resp.State == responses.StateEmpty {
		resp.Hint = mappers.CompanySearchHint
	}
	return &SearchOutput{Body: resp}, nil
}

// ListCompaniesOutput defines the output for the ListCompanies operation
type ListCompaniesOutput struct {
	Body responses.CompaniesResponse
}

// ListCompanies handles GET /companies
func (h *ContractHandler) ListCompanies(ctx context.Context, _ *struct{}) (*ListCompaniesOutput, error) {
	names, err := h.service.Companies(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ListCompaniesOutput{Body: mappers.ToCompaniesResponse(names)}, nil
}

// TopCompaniesInput defines the input for the TopCompanies operation
type TopCompaniesInput struct {
	N int `query:"n" minimum:"1" maximum:"100" doc:"Number of companies; defaults to the configured size"`
}

// TopCompaniesOutput defines the output for the TopCompanies operation
type TopCompaniesOutput struct {
	Body responses.RankingResponse
}

// TopCompanies handles GET /companies/top
func (h *ContractHandler) TopCompanies(ctx context.Context, input *TopCompaniesInput) (*TopCompaniesOutput, error) {
	rows, err := h.service.TopCompanies(ctx, input.N)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &TopCompaniesOutput{Body: mappers.ToRankingResponse(rows)}, nil
}

// RefreshOutput defines the output for the Refresh operation
type RefreshOutput struct {
	Body responses.RefreshResponse
}

// Refresh handles POST /cache/refresh
func (h *ContractHandler) Refresh(ctx context.Context, _ *struct{}) (*RefreshOutput, error) {
	if err := h.service.Refresh(ctx); err != nil {
		return nil, toHumaError(err)
	}
	return &RefreshOutput{Body: responses.RefreshResponse{
		Status:      "refreshed",
		RefreshedAt: h.now().UTC(),
	}}, nil
}
