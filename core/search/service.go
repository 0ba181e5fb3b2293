// ABOUTME: Search service running snapshot scans, delegated full-text and field-scoped remote searches
// ABOUTME: Provides business logic for contract search independent of the HTTP layer

package search

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"contractes-api/core/domain"
	"contractes-api/core/errors"
	"contractes-api/core/interfaces"
	"contractes-api/core/normalize"
	"contractes-api/core/schema"
	"contractes-api/core/snapshot"
	"contractes-api/core/source"
)

// MaxQueryLength is the longest accepted query, in characters
const MaxQueryLength = 200

// Fetcher retrieves dataset pages
type Fetcher interface {
	Fetch(ctx context.Context, p source.Params) ([]domain.Record, error)
	Endpoint() string
}

// Options controls a snapshot search
type Options struct {
	// Scope lists the roles searched; the zero value searches every field
	Scope domain.FieldScope

	// EmptyQuery decides what an empty query matches and must be set
	EmptyQuery domain.EmptyQueryPolicy

	// Sort requests an explicit ordering
	Sort domain.SortOrder
}

// Config holds remote search settings
type Config struct {
	// RowCap caps rows returned by remote searches
	RowCap int

	// TTL is how long field-scoped remote results are cached
	TTL time.Duration
}

// SearchService executes contract searches
type SearchService struct {
	fetcher    Fetcher
	store      *snapshot.Store
	resolver   *schema.Resolver
	normalizer *normalize.Normalizer
	logger     interfaces.Logger
	config     Config
}

// NewSearchService creates a new search service instance.
// store may be nil, in which case remote searches are never cached.
func NewSearchService(deps interfaces.Dependencies, fetcher Fetcher, store *snapshot.Store, resolver *schema.Resolver, config Config) *SearchService {
	deps = deps.WithDefaults()
	if resolver == nil {
		resolver = schema.NewResolver(nil)
	}
	if config.RowCap <= 0 {
		config.RowCap = 100
	}
	if config.TTL <= 0 {
		config.TTL = 10 * time.Minute
	}
	return &SearchService{
		fetcher:    fetcher,
		store:      store,
		resolver:   resolver,
		normalizer: normalize.NewNormalizer(deps.Logger),
		logger:     deps.Logger,
		config:     config,
	}
}

// ValidateQuery rejects queries that are too long to search
func ValidateQuery(raw string) error {
	if utf8.RuneCountInString(raw) > MaxQueryLength {
		return &errors.ValidationError{
			Field:   "q",
			Message: fmt.Sprintf("query cannot exceed %d characters", MaxQueryLength),
		}
	}
	return nil
}

// Snapshot scans already normalized records locally.
// Matching is AND across tokens and OR across the scope's fields; input
// order is preserved unless opts.Sort asks otherwise.
func (s *SearchService) Snapshot(records []domain.NormalizedRecord, sch domain.LogicalSchema, query domain.SearchQuery, opts Options) (*domain.SearchResult, error) {
	if !opts.EmptyQuery.Valid() {
		return nil, &errors.ValidationError{Field: "emptyQuery", Message: "empty query policy must be set"}
	}
	if err := ValidateQuery(query.Raw); err != nil {
		return nil, err
	}

	result := &domain.SearchResult{
		Strategy: domain.StrategySnapshot,
		Schema:   sch,
		Gaps:     sch.Missing(opts.Scope.Roles...),
		Records:  []domain.NormalizedRecord{},
	}

	if query.IsEmpty() {
		if opts.EmptyQuery == domain.MatchAll {
			result.Records = append(result.Records, records...)
		}
	} else {
		for i := range records {
			if Matches(&records[i], query.Tokens, opts.Scope) {
				result.Records = append(result.Records, records[i])
			}
		}
	}

	result.Records = Sort(result.Records, opts.Sort)
	return result, nil
}

// Delegated forwards the raw query to the provider's full-text search.
// Results keep the provider's order and are never cached.
func (s *SearchService) Delegated(ctx context.Context, query domain.SearchQuery, sort domain.SortOrder) (*domain.SearchResult, error) {
	if err := ValidateQuery(query.Raw); err != nil {
		return nil, err
	}
	if query.IsEmpty() {
		return &domain.SearchResult{Strategy: domain.StrategyDelegated, Records: []domain.NormalizedRecord{}}, nil
	}

	raw, err := s.fetcher.Fetch(ctx, source.Params{Query: query.Raw, Limit: s.config.RowCap})
	if err != nil {
		return nil, errors.WrapError(err, "delegated search")
	}

	sch := s.resolver.Resolve(raw)
	records := Sort(s.normalizer.Records(raw, sch), sort)
	s.logger.Debug("Delegated search completed", map[string]interface{}{
		"query":   query.Raw,
		"results": len(records),
	})
	return &domain.SearchResult{Strategy: domain.StrategyDelegated, Schema: sch, Records: records}, nil
}

// Remote filters server-side with one case-insensitive contains term per
// word over the scope's physical fields, and caches the page.
// known is the schema that maps scope roles to physical fields.
// Words are sent as typed since the provider compares accents literally.
func (s *SearchService) Remote(ctx context.Context, query domain.SearchQuery, scope domain.FieldScope, known domain.LogicalSchema, sort domain.SortOrder) (*domain.SearchResult, error) {
	if err := ValidateQuery(query.Raw); err != nil {
		return nil, err
	}
	result := &domain.SearchResult{Strategy: domain.StrategySnapshot, Schema: known, Records: []domain.NormalizedRecord{}}
	if query.IsEmpty() {
		return result, nil
	}

	var fields []string
	for _, role := range scope.Roles {
		if f, ok := known.Field(role); ok {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		result.Gaps = known.Missing(scope.Roles...)
		s.logger.Warn("Remote search scope has no resolved fields", map[string]interface{}{
			"error": schema.Gaps(known, scope.Roles...).Error(),
		})
		return result, nil
	}

	words := strings.Fields(query.Raw)
	terms := make([]source.Predicate, 0, len(words))
	for _, tok := range words {
		alts := make([]source.Predicate, len(fields))
		for i, f := range fields {
			alts[i] = source.Contains(f, tok)
		}
		terms = append(terms, source.Or(alts...))
	}
	params := source.Params{Where: source.And(terms...), Limit: s.config.RowCap}
	if f, ok := known.Field(domain.RoleFormalizationDate); ok {
		params.Order = []source.OrderBy{{Field: f, Desc: true}}
	}

	raw, err := s.fetch(ctx, params, s.config.TTL)
	if err != nil {
		return nil, errors.WrapError(err, "remote search")
	}

	sch := s.resolver.Resolve(raw)
	result.Schema = sch
	result.Records = Sort(s.normalizer.Records(raw, sch), sort)
	return result, nil
}

func (s *SearchService) fetch(ctx context.Context, params source.Params, ttl time.Duration) ([]domain.Record, error) {
	if s.store == nil {
		return s.fetcher.Fetch(ctx, params)
	}
	key := snapshot.NewKey(s.fetcher.Endpoint(), params.Encode())
	return s.store.GetOrFetch(ctx, key, ttl, func(ctx context.Context) ([]domain.Record, error) {
		return s.fetcher.Fetch(ctx, params)
	})
}
