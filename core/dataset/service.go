// ABOUTME: Dataset service exposing search, ranking, company directory and refresh
// ABOUTME: Wires the source adapter, snapshot cache, schema resolver and normalizer together

package dataset

import (
	"context"
	"net/http"
	"sort"
	"sync/atomic"
	"time"

	"contractes-api/core/config"
	"contractes-api/core/domain"
	"contractes-api/core/errors"
	"contractes-api/core/interfaces"
	"contractes-api/core/normalize"
	"contractes-api/core/ranking"
	"contractes-api/core/schema"
	"contractes-api/core/search"
	"contractes-api/core/snapshot"
	"contractes-api/core/source"
)

// SearchRequest describes one search call
type SearchRequest struct {
	Query    string
	Scope    *domain.FieldScope
	Strategy domain.Strategy
	Sort     domain.SortOrder
}

// Snapshot is the normalized bulk snapshot with the schema it resolved to
type Snapshot struct {
	Records []domain.NormalizedRecord
	Schema  domain.LogicalSchema
}

// DatasetService handles contract dataset operations
type DatasetService struct {
	deps       interfaces.Dependencies
	config     config.EngineConfig
	fetcher    search.Fetcher
	store      *snapshot.Store
	resolver   *schema.Resolver
	normalizer *normalize.Normalizer
	searcher   *search.SearchService
	ranker     *ranking.Ranker

	schema atomic.Pointer[domain.LogicalSchema]

	// order replaces config.OrderField once the dataset has rejected it
	order atomic.Pointer[string]
}

// sampleSize is the unordered sample used to find a usable ordering column
const sampleSize = 20

// NewDatasetService creates a new dataset service instance.
// A nil resolver uses the built-in alias table.
func NewDatasetService(deps interfaces.Dependencies, fetcher search.Fetcher, resolver *schema.Resolver, cfg config.EngineConfig) *DatasetService {
	deps = deps.WithDefaults()
	if resolver == nil {
		resolver = schema.NewResolver(nil)
	}

	var store *snapshot.Store
	if cfg.CacheEnabled && deps.Cache != nil {
		store = snapshot.NewStore(deps)
	} else {
		deps.Logger.Info("Snapshot cache disabled", nil)
	}

	return &DatasetService{
		deps:       deps,
		config:     cfg,
		fetcher:    fetcher,
		store:      store,
		resolver:   resolver,
		normalizer: normalize.NewNormalizer(deps.Logger),
		searcher: search.NewSearchService(deps, fetcher, store, resolver, search.Config{
			RowCap: cfg.SearchRowCap,
			TTL:    cfg.SearchTTL,
		}),
		ranker: ranking.NewRanker(cfg.LabelWidth),
	}
}

// Config returns the engine configuration
func (s *DatasetService) Config() config.EngineConfig {
	return s.config
}

// Snapshot returns the bulk recent snapshot, fetching it when the cache has no valid entry.
// Its cache key depends only on the active ordering column.
func (s *DatasetService) Snapshot(ctx context.Context) (*Snapshot, error) {
	order := s.bulkOrder()
	raw, err := s.fetch(ctx, s.bulkParams(order), s.config.SnapshotTTL)
	if err != nil && order != "" && rejected(err) {
		raw, err = s.reorder(ctx, order)
	}
	if err != nil {
		return nil, errors.WrapError(err, "fetching contract snapshot")
	}

	sch := s.resolver.Resolve(raw)
	s.remember(sch)
	return &Snapshot{Records: s.normalizer.Records(raw, sch), Schema: sch}, nil
}

// Search runs a snapshot scan or a delegated full-text search.
// An empty query matches nothing.
func (s *DatasetService) Search(ctx context.Context, req SearchRequest) (*domain.SearchResult, error) {
	if err := search.ValidateQuery(req.Query); err != nil {
		return nil, err
	}
	query := search.Tokenize(req.Query)
	scope := s.config.DefaultScope
	if req.Scope != nil {
		scope = *req.Scope
	}

	switch req.Strategy {
	case domain.StrategyDelegated:
		if !s.config.DelegatedSearch {
			return nil, &errors.ValidationError{Field: "strategy", Message: "delegated search is disabled"}
		}
		return s.searcher.Delegated(ctx, query, req.Sort)
	case domain.StrategySnapshot, "":
	default:
		return nil, &errors.ValidationError{Field: "strategy", Message: "unknown strategy " + string(req.Strategy)}
	}

	if query.IsEmpty() {
		return &domain.SearchResult{Strategy: domain.StrategySnapshot, Records: []domain.NormalizedRecord{}}, nil
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.searcher.Snapshot(snap.Records, snap.Schema, query, search.Options{
		Scope:      scope,
		EmptyQuery: domain.MatchNothing,
		Sort:       req.Sort,
	})
}

// SearchCompany finds contracts whose company name or identifier contains
// every word of name, filtering server-side.
func (s *DatasetService) SearchCompany(ctx context.Context, name string) (*domain.SearchResult, error) {
	if err := search.ValidateQuery(name); err != nil {
		return nil, err
	}
	query := search.Tokenize(name)
	if query.IsEmpty() {
		return &domain.SearchResult{Strategy: domain.StrategySnapshot, Records: []domain.NormalizedRecord{}}, nil
	}

	known, err := s.Schema(ctx)
	if err != nil {
		return nil, err
	}
	return s.searcher.Remote(ctx, query, domain.ScopeCompany, known, domain.SortNone)
}

// TopCompanies ranks companies of the bulk snapshot by awarded amount.
// Missing roles yield an empty ranking, not an error.
func (s *DatasetService) TopCompanies(ctx context.Context, n int) ([]domain.RankingRow, error) {
	if n <= 0 {
		n = s.config.TopN
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.Rank(snap.Records, snap.Schema, n), nil
}

// Rank groups records by company and sums their amounts, without VAT when
// the batch has no with-VAT amount
func (s *DatasetService) Rank(records []domain.NormalizedRecord, sch domain.LogicalSchema, n int) []domain.RankingRow {
	amount := sch.AmountRole()
	if gap := schema.Gaps(sch, domain.RoleCompany, amount); gap != nil {
		s.deps.Logger.Warn("Ranking unavailable", map[string]interface{}{
			"error": gap.Error(),
		})
	}
	return s.ranker.RankTopN(records, sch, domain.RoleCompany, amount, n)
}

// Companies lists distinct company names from the most recent contracts
func (s *DatasetService) Companies(ctx context.Context) ([]string, error) {
	known, err := s.Schema(ctx)
	if err != nil {
		return nil, err
	}
	field, ok := known.Field(domain.RoleCompany)
	if !ok {
		s.deps.Logger.Warn("Company directory unavailable", map[string]interface{}{
			"error": schema.Gaps(known, domain.RoleCompany).Error(),
		})
		return []string{}, nil
	}

	params := s.bulkParams(s.bulkOrder())
	params.Select = []string{field}
	raw, err := s.fetch(ctx, params, s.config.SnapshotTTL)
	if err != nil {
		return nil, errors.WrapError(err, "fetching company directory")
	}

	seen := make(map[string]struct{})
	names := []string{}
	for _, r := range raw {
		label, ok := s.ranker.CleanLabel(normalize.Text(r[field]))
		if !ok {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		names = append(names, label)
	}
	sort.Slice(names, func(i, j int) bool {
		fi, fj := normalize.Fold(names[i]), normalize.Fold(names[j])
		if fi != fj {
			return fi < fj
		}
		return names[i] < names[j]
	})
	return names, nil
}

// Summary returns the headline figures for a result set
func (s *DatasetService) Summary(records []domain.NormalizedRecord, sch domain.LogicalSchema) domain.Summary {
	return domain.Summarize(records, sch.AmountRole())
}

// Refresh drops every cached page so the next call refetches
func (s *DatasetService) Refresh(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.InvalidateAll(ctx)
}

// Schema returns the last resolved schema, resolving the bulk snapshot when none is known yet
func (s *DatasetService) Schema(ctx context.Context) (domain.LogicalSchema, error) {
	if sch := s.schema.Load(); sch != nil {
		return *sch, nil
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Schema, nil
}

func (s *DatasetService) remember(sch domain.LogicalSchema) {
	if len(sch) == 0 {
		return
	}
	s.schema.Store(&sch)
}

func (s *DatasetService) bulkOrder() string {
	if o := s.order.Load(); o != nil {
		return *o
	}
	return s.config.OrderField
}

func (s *DatasetService) bulkParams(order string) source.Params {
	p := source.Params{Limit: s.config.RowCap}
	if order != "" {
		p.Order = []source.OrderBy{{Field: order, Desc: true}}
	}
	return p
}

// rejected reports a client error other than throttling. The dataset answers
// an unknown $order column with 400.
func rejected(err error) bool {
	code := errors.StatusCode(err)
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests
}

// reorder picks the date column of an unordered sample and refetches the
// bulk snapshot ordered by it, or unordered when no other column resolves.
// The chosen column is kept for later bulk fetches.
func (s *DatasetService) reorder(ctx context.Context, refused string) ([]domain.Record, error) {
	sample, err := s.fetcher.Fetch(ctx, source.Params{Limit: sampleSize})
	if err != nil {
		return nil, err
	}

	order := ""
	if f, ok := s.resolver.Resolve(sample).Field(domain.RoleFormalizationDate); ok && f != refused {
		order = f
	}
	raw, err := s.fetch(ctx, s.bulkParams(order), s.config.SnapshotTTL)
	if err != nil && order != "" && rejected(err) {
		order = ""
		raw, err = s.fetch(ctx, s.bulkParams(order), s.config.SnapshotTTL)
	}
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Warn("Ordering column rejected by dataset", map[string]interface{}{
		"rejected": refused,
		"order":    order,
	})
	s.order.Store(&order)
	return raw, nil
}

func (s *DatasetService) fetch(ctx context.Context, params source.Params, ttl time.Duration) ([]domain.Record, error) {
	if s.store == nil {
		return s.fetcher.Fetch(ctx, params)
	}
	key := snapshot.NewKey(s.fetcher.Endpoint(), params.Encode())
	return s.store.GetOrFetch(ctx, key, ttl, func(ctx context.Context) ([]domain.Record, error) {
		return s.fetcher.Fetch(ctx, params)
	})
}
