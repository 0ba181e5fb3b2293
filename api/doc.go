// Package api provides the HTTP API layer for the contracts service.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
//	GET  /contracts/search?q=&scope=&strategy=&sort=
//	GET  /contracts/company?name=
//	GET  /companies
//	GET  /companies/top?n=
//	POST /cache/refresh
//	GET  /health
//	GET  /metrics
//
// List responses carry a "state" field: "ok" or "empty". When the dataset
// cannot be fetched the API answers 503 with state "data_unavailable", so
// an outage is never confused with a search that matched nothing.
//
// # Usage
//
//	api, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  60,
//	    RateWindow: time.Minute,
//	})
//	handlers.NewContractHandler(service).RegisterRoutes(api)
//	http.ListenAndServe(":8000", router)
//
// The OpenAPI spec is served at /openapi.json and the docs UI at /docs.
package api
