package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contractes-api/api/dto/responses"
	"contractes-api/core/domain"
	"contractes-api/core/errors"
)

func TestToContractResponse(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	rec := &domain.NormalizedRecord{
		Raw:               domain.Record{"denominacio_adjudicatari": "INCASOL"},
		Company:           "INCASOL",
		Amount:            1500.5,
		FormalizationDate: &date,
		Warnings: []errors.ParseWarning{
			{Field: "data_adjudicacio_contracte", Role: "award_date", Raw: "??", Reason: "unparsable date, treated as absent"},
		},
	}

	resp := ToContractResponse(rec, false)
	assert.Equal(t, "INCASOL", resp.Company)
	assert.Equal(t, 1500.5, resp.Amount)
	assert.Equal(t, "2024-03-15", resp.FormalizationDate)
	assert.Empty(t, resp.AwardDate)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "data_adjudicacio_contracte")
	assert.Nil(t, resp.Fields)

	withRaw := ToContractResponse(rec, true)
	assert.Equal(t, "INCASOL", withRaw.Fields["denominacio_adjudicatari"])
}

func TestToSearchResponse(t *testing.T) {
	result := &domain.SearchResult{
		Strategy: domain.StrategySnapshot,
		Records:  []domain.NormalizedRecord{{Company: "A", Amount: 10}, {Company: "B", Amount: 5}},
		Gaps:     []domain.Role{domain.RoleBuyer},
	}

	resp := ToSearchResponse("a", result, domain.Summarize(result.Records, domain.RoleAmount), false)
	assert.Equal(t, responses.StateOK, resp.State)
	assert.Equal(t, "snapshot", resp.Strategy)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 15.0, resp.Total)
	assert.Len(t, resp.Contracts, 2)
	assert.Equal(t, []string{"buyer"}, resp.Gaps)
}

func TestToSearchResponse_Empty(t *testing.T) {
	resp := ToSearchResponse("zzz", &domain.SearchResult{Strategy: domain.StrategyDelegated}, domain.Summary{}, false)
	assert.Equal(t, responses.StateEmpty, resp.State)
	assert.NotNil(t, resp.Contracts)
	assert.Empty(t, resp.Contracts)

	assert.Equal(t, responses.StateEmpty, ToSearchResponse("", nil, domain.Summary{}, false).State)
}

func TestToRankingResponse(t *testing.T) {
	resp := ToRankingResponse([]domain.RankingRow{
		{Label: "Menjador", Total: 2500, Count: 2},
		{Label: "INCASOL", Total: 1500.5, Count: 1},
	})
	assert.Equal(t, responses.StateOK, resp.State)
	require.Len(t, resp.Companies, 2)
	assert.Equal(t, 1, resp.Companies[0].Rank)
	assert.Equal(t, 2, resp.Companies[1].Rank)

	empty := ToRankingResponse(nil)
	assert.Equal(t, responses.StateEmpty, empty.State)
	assert.NotNil(t, empty.Companies)
}

func TestToCompaniesResponse(t *testing.T) {
	resp := ToCompaniesResponse([]string{"Àlfa SA", "beta SCCL"})
	assert.Equal(t, responses.StateOK, resp.State)
	assert.Equal(t, 2, resp.Count)

	empty := ToCompaniesResponse(nil)
	assert.Equal(t, responses.StateEmpty, empty.State)
	assert.NotNil(t, empty.Companies)
}
