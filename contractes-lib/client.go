// ABOUTME: Main client for the Contractes library providing contract search and rankings
// ABOUTME: Offers a clean API for using core functionality without HTTP dependencies

package contractes

import (
	"context"
	"errors"

	coreconfig "contractes-api/core/config"
	"contractes-api/core/dataset"
	"contractes-api/core/interfaces"
	"contractes-api/core/schema"
	"contractes-api/core/source"
)

// Client is the main entry point for the Contractes library
type Client struct {
	service *dataset.DatasetService
	config  Config
}

// NewClient creates a new Contractes client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			closeAll(config.closers)
			return nil, err
		}
	}

	if config.HTTPClient == nil {
		config.HTTPClient = DefaultHTTPClient(config.Timeout)
	}
	if config.Cache == nil {
		config.Cache = DefaultMemoryCache()
	}
	if config.Logger == nil {
		config.Logger = interfaces.NopLogger{}
	}

	table, err := schema.LoadTable(config.AliasesFile)
	if err != nil {
		closeAll(config.closers)
		return nil, NewError(ErrorTypeConfiguration, "cannot load alias overlay").WithCause(err)
	}

	deps := interfaces.Dependencies{
		HTTPClient: config.HTTPClient,
		Cache:      config.Cache,
		Logger:     config.Logger,
	}
	fetcher := source.NewClient(deps, source.Options{
		Endpoint: config.Endpoint,
		AppToken: config.AppToken,
		Timeout:  config.Timeout,
	})

	return &Client{
		service: dataset.NewDatasetService(deps, fetcher, schema.NewResolver(table), coreconfig.NewEngineConfig(config.Engine...)),
		config:  config,
	}, nil
}

// Close releases resources opened by options such as WithSQLiteCache
func (c *Client) Close() error {
	return closeAll(c.config.closers)
}

// Search finds contracts matching every word of query.
// By default it scans the recent snapshot across all fields; an empty query matches nothing.
func (c *Client) Search(ctx context.Context, query string, opts ...SearchOption) (*SearchResult, error) {
	var o searchOptions
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	result, err := c.service.Search(ctx, dataset.SearchRequest{
		Query:    query,
		Scope:    o.scope,
		Strategy: o.strategy,
		Sort:     o.sort,
	})
	if err != nil {
		return nil, wrapError("search", err)
	}
	return toSearchResult(result), nil
}

// SearchCompany finds contracts awarded to a company across the whole dataset
func (c *Client) SearchCompany(ctx context.Context, name string) (*SearchResult, error) {
	result, err := c.service.SearchCompany(ctx, name)
	if err != nil {
		return nil, wrapError("company search", err)
	}
	return toSearchResult(result), nil
}

// TopCompanies ranks companies by total awarded amount in the recent snapshot.
// n <= 0 uses the configured size.
func (c *Client) TopCompanies(ctx context.Context, n int) ([]CompanyTotal, error) {
	rows, err := c.service.TopCompanies(ctx, n)
	if err != nil {
		return nil, wrapError("ranking", err)
	}
	out := make([]CompanyTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, CompanyTotal{Company: r.Label, Total: r.Total, Count: r.Count})
	}
	return out, nil
}

// Companies lists distinct company names from recent contracts
func (c *Client) Companies(ctx context.Context) ([]string, error) {
	names, err := c.service.Companies(ctx)
	if err != nil {
		return nil, wrapError("company directory", err)
	}
	return names, nil
}

// Refresh drops every cached snapshot so the next call refetches
func (c *Client) Refresh(ctx context.Context) error {
	return wrapError("refresh", c.service.Refresh(ctx))
}

func closeAll(closers []func() error) error {
	var errs []error
	for _, fn := range closers {
		errs = append(errs, fn())
	}
	return errors.Join(errs...)
}
