package handlers

import (
	"context"

	"contractes-api/core/dataset"
	"contractes-api/core/domain"
)

// mockContractService is a function-field implementation of ContractService
type mockContractService struct {
	searchFunc        func(ctx context.Context, req dataset.SearchRequest) (*domain.SearchResult, error)
	searchCompanyFunc func(ctx context.Context, name string) (*domain.SearchResult, error)
	topFunc           func(ctx context.Context, n int) ([]domain.RankingRow, error)
	companiesFunc     func(ctx context.Context) ([]string, error)
	refreshFunc       func(ctx context.Context) error
}

func (m *mockContractService) Search(ctx context.Context, req dataset.SearchRequest) (*domain.SearchResult, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, req)
	}
	return &domain.SearchResult{}, nil
}

func (m *mockContractService) SearchCompany(ctx context.Context, name string) (*domain.SearchResult, error) {
	if m.searchCompanyFunc != nil {
		return m.searchCompanyFunc(ctx, name)
	}
	return &domain.SearchResult{}, nil
}

func (m *mockContractService) TopCompanies(ctx context.Context, n int) ([]domain.RankingRow, error) {
	if m.topFunc != nil {
		return m.topFunc(ctx, n)
	}
	return nil, nil
}

func (m *mockContractService) Companies(ctx context.Context) ([]string, error) {
	if m.companiesFunc != nil {
		return m.companiesFunc(ctx)
	}
	return nil, nil
}

func (m *mockContractService) Summary(records []domain.NormalizedRecord, sch domain.LogicalSchema) domain.Summary {
	return domain.Summarize(records, sch.AmountRole())
}

func (m *mockContractService) Refresh(ctx context.Context) error {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx)
	}
	return nil
}

type mockPinger struct {
	err error
}

func (p mockPinger) Ping(context.Context) error { return p.err }

// mockBackend reports both reachability and statistics
type mockBackend struct {
	mockPinger
	entries int
}

func (b mockBackend) Stats(context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"total_entries": b.entries}, nil
}
