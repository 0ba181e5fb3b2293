// Package core is the contracts engine: it fetches the public-contracts
// dataset, caches snapshots of it, normalizes rows into records and answers
// searches and company rankings. It has no HTTP server or storage code of
// its own; those arrive through interfaces.Dependencies.
//
// A request flows through the sub-packages in this order:
//
//	source     builds the SoQL query and fetches raw rows
//	snapshot   keys, caches and coalesces those fetches
//	schema     maps physical column names onto logical roles
//	normalize  parses money and dates and folds text for matching
//	search     token-AND scans over a snapshot, or delegated full-text
//	ranking    sums awarded amounts per company and keeps the top N
//	dataset    the service exposing Search, SearchCompany, TopCompanies,
//	           Companies and Refresh
//
// domain holds the shared record and result types, errors the typed
// failures, and config the engine options.
//
// Wiring the engine by hand:
//
//	deps := interfaces.Dependencies{Cache: cache, HTTPClient: client, Logger: logger}
//	src := source.NewClient(deps, source.Options{Endpoint: source.DefaultEndpoint})
//	svc := dataset.NewDatasetService(deps, src, nil, config.NewEngineConfig())
//	result, err := svc.Search(ctx, dataset.SearchRequest{Query: "incasol sol"})
package core
