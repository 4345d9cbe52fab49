// Package pricing orchestrates a price lookup end to end: request validation,
// the results cache, the shopping search, AI extraction, and the final
// ranking of products.
package pricing

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharad-mishra/universal-price-tool/internal/cache"
	"github.com/sharad-mishra/universal-price-tool/internal/country"
	"github.com/sharad-mishra/universal-price-tool/internal/metrics"
	"github.com/sharad-mishra/universal-price-tool/internal/model"
	"github.com/sharad-mishra/universal-price-tool/internal/validate"
)

// maxResults caps how many products a single lookup returns.
const maxResults = 20

// Searcher fetches raw shopping listings for a query.
type Searcher interface {
	Search(ctx context.Context, countryCode, query string) []model.SearchResult
}

// Extractor turns raw listings into validated products.
type Extractor interface {
	Extract(ctx context.Context, results []model.SearchResult, query, countryCode string) []model.Product
}

// ValidationError carries the per-field messages for a rejected request.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "invalid request parameters: " + strings.Join(e.Details, "; ")
}

// Service is the price lookup pipeline.
type Service struct {
	searcher  Searcher
	extractor Extractor
	cache     cache.Cache
	ttl       time.Duration
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

// Options configures a pricing Service.
type Options struct {
	Searcher  Searcher
	Extractor Extractor
	Cache     cache.Cache
	TTL       time.Duration
	Metrics   *metrics.Metrics
	Log       zerolog.Logger
}

// NewService creates a Service. TTL defaults to two hours.
func NewService(opts Options) *Service {
	if opts.TTL == 0 {
		opts.TTL = 2 * time.Hour
	}
	return &Service{
		searcher:  opts.Searcher,
		extractor: opts.Extractor,
		cache:     opts.Cache,
		ttl:       opts.TTL,
		metrics:   opts.Metrics,
		log:       opts.Log.With().Str("component", "pricing").Logger(),
	}
}

// GetPrices runs the full lookup for a country and query. It returns a
// *ValidationError for rejected input; past validation the pipeline degrades
// to an empty result list rather than failing.
func (s *Service) GetPrices(ctx context.Context, countryCode, query string) (*model.PriceResponse, error) {
	res := validate.PriceRequest(countryCode, query)
	if !res.Valid {
		return nil, &ValidationError{Details: res.Errors}
	}
	countryCode = res.Sanitized.Country
	query = res.Sanitized.Query

	key := cache.Key(cache.NamespaceResults, countryCode, query)
	if cached := s.readCache(ctx, key); cached != nil {
		s.metrics.CacheHit(cache.NamespaceResults)
		s.log.Info().Str("key", key).Int("results", len(cached.Results)).Msg("results cache hit")
		// the timestamp reflects when this response was served, not when the
		// cached results were computed
		cached.Timestamp = time.Now().UTC().Format(time.RFC3339)
		return cached, nil
	}
	s.metrics.CacheMiss(cache.NamespaceResults)

	results := s.searcher.Search(ctx, countryCode, query)
	products := s.extractor.Extract(ctx, results, query, countryCode)
	products = s.finalize(products, query)

	resp := &model.PriceResponse{
		Results:   products,
		Currency:  country.Currency(countryCode),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	s.writeCache(ctx, key, resp)

	s.log.Info().Str("country", countryCode).Str("query", query).
		Int("results", len(products)).Msg("price lookup complete")
	return resp, nil
}

// finalize re-validates each product, ranks by relevance with cheaper
// products first on ties, and truncates to the result cap. The extractor has
// already validated its output, so drops here indicate a bug upstream and are
// logged loudly.
func (s *Service) finalize(products []model.Product, query string) []model.Product {
	kept := make([]model.Product, 0, len(products))
	for i := range products {
		if errs := validate.Product(&products[i]); len(errs) > 0 {
			s.log.Error().Strs("errors", errs).Str("product", products[i].ProductName).
				Str("query", query).Msg("dropping invalid product after extraction")
			continue
		}
		kept = append(kept, products[i])
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].RelevanceScore != kept[j].RelevanceScore {
			return kept[i].RelevanceScore > kept[j].RelevanceScore
		}
		return kept[i].PriceValue() < kept[j].PriceValue()
	})

	if len(kept) > maxResults {
		kept = kept[:maxResults]
	}
	return kept
}

func (s *Service) readCache(ctx context.Context, key string) *model.PriceResponse {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}
	var resp model.PriceResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *Service) writeCache(ctx context.Context, key string, resp *model.PriceResponse) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("results cache write failed")
	}
}
