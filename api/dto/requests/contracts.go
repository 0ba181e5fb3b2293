// ABOUTME: Request DTOs for contract endpoints
// ABOUTME: Converts query parameters into engine requests with validation

package requests

import (
	"contractes-api/core/dataset"
	"contractes-api/core/domain"
	"contractes-api/core/errors"
	"contractes-api/core/search"
)

// SearchParams are the query parameters of a contract search
type SearchParams struct {
	Q        string `query:"q" maxLength:"200" doc:"Free-text query; every word must match"`
	Scope    string `query:"scope" enum:"all,company,title,buyer" doc:"Fields to search; defaults to the configured scope"`
	Strategy string `query:"strategy" enum:"snapshot,delegated" default:"snapshot"`
	Sort     string `query:"sort" enum:"date_desc,amount_desc" doc:"Result order; defaults to dataset order"`
	Raw      bool   `query:"raw" doc:"Include the raw dataset row with each contract"`
}

// ToDomain converts the parameters into an engine search request
func (p SearchParams) ToDomain() (dataset.SearchRequest, error) {
	req := dataset.SearchRequest{Query: p.Q}

	if p.Scope != "" {
		scope, ok := domain.ParseScope(p.Scope)
		if !ok {
			return req, &errors.ValidationError{Field: "scope", Message: "unknown scope " + p.Scope}
		}
		req.Scope = &scope
	}

	strategy, ok := domain.ParseStrategy(p.Strategy)
	if !ok {
		return req, &errors.ValidationError{Field: "strategy", Message: "unknown strategy " + p.Strategy}
	}
	req.Strategy = strategy

	order, ok := search.ParseSort(p.Sort)
	if !ok {
		return req, &errors.ValidationError{Field: "sort", Message: "unknown sort " + p.Sort}
	}
	req.Sort = order

	return req, nil
}
