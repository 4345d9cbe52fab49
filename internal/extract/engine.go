package extract

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharad-mishra/universal-price-tool/internal/cache"
	"github.com/sharad-mishra/universal-price-tool/internal/llm"
	"github.com/sharad-mishra/universal-price-tool/internal/metrics"
	"github.com/sharad-mishra/universal-price-tool/internal/model"
	"github.com/sharad-mishra/universal-price-tool/internal/retry"
)

// Engine turns raw search results into validated Products via the generative
// model, with a deterministic fallback when the AI path cannot produce a
// usable result. Its external contract is "always return a best-effort list":
// no failure below it escapes as an error.
type Engine struct {
	gen     llm.TextGenerator
	cache   cache.Cache
	ttl     time.Duration
	policy  retry.Policy
	matcher Matcher
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// Options configures an extraction Engine.
type Options struct {
	Generator llm.TextGenerator
	Cache     cache.Cache
	TTL       time.Duration
	Policy    retry.Policy
	Matcher   Matcher
	Metrics   *metrics.Metrics
	Log       zerolog.Logger
}

// NewEngine creates an Engine. Matcher defaults to DefaultMatcher and the
// retry policy to the extraction policy.
func NewEngine(opts Options) *Engine {
	if opts.Matcher == nil {
		opts.Matcher = DefaultMatcher
	}
	if opts.Policy.MaxAttempts == 0 {
		opts.Policy = retry.ExtractionPolicy()
	}
	if opts.TTL == 0 {
		opts.TTL = 2 * time.Hour
	}
	return &Engine{
		gen:     opts.Generator,
		cache:   opts.Cache,
		ttl:     opts.TTL,
		policy:  opts.Policy,
		matcher: opts.Matcher,
		metrics: opts.Metrics,
		log:     opts.Log.With().Str("component", "extract").Logger(),
	}
}

// Extract produces normalized Products for the (results, query, country)
// triple. Results are cached under the extraction namespace.
func (e *Engine) Extract(ctx context.Context, results []model.SearchResult, query, countryCode string) []model.Product {
	if len(results) == 0 {
		return nil
	}

	key := cache.Key(cache.NamespaceExtract, countryCode, query)
	if cached := e.readCache(ctx, key); cached != nil {
		e.metrics.CacheHit(cache.NamespaceExtract)
		e.log.Info().Str("key", key).Int("results", len(cached)).Msg("extraction cache hit")
		return cached
	}
	e.metrics.CacheMiss(cache.NamespaceExtract)

	text, err := e.generate(ctx, BuildPrompt(results, query, countryCode))
	if err != nil {
		e.log.Error().Err(err).Str("query", query).Str("country", countryCode).
			Msg("AI invocation failed, using fallback extraction")
		e.metrics.ExtractionPath("fallback")
		return Fallback(results, query, countryCode)
	}

	products, parseErr := e.process(text, results, query, countryCode)
	if parseErr != nil {
		e.log.Warn().Err(parseErr).Str("query", query).
			Str("response_head", head(text, 500)).
			Msg("unparsable AI response, using fallback extraction")
		e.metrics.ExtractionPath("fallback")
		products = Fallback(results, query, countryCode)
	} else {
		e.metrics.ExtractionPath("ai")
	}

	e.writeCache(ctx, key, products)
	return products
}

// generate invokes the model, retrying only rate-limit and transient failure
// classes. Rate limits wait substantially longer: they are provider-enforced
// minimum backoffs, not jitter.
func (e *Engine) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= e.policy.MaxAttempts; attempt++ {
		text, err := e.gen.GenerateText(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		class := retry.Classify(err)
		backoff, retryable := e.policy.BackoffFor(class)
		if !retryable || attempt == e.policy.MaxAttempts {
			break
		}
		e.log.Info().Err(err).Int("attempt", attempt).Dur("backoff", backoff).
			Msg("retrying AI extraction")
		if werr := e.policy.Wait(ctx, class); werr != nil {
			break
		}
	}
	return "", lastErr
}

// process parses the model response and validates each decoded item into a
// Product. A malformed item is dropped; a malformed response is an error the
// caller resolves with the fallback extractor.
func (e *Engine) process(text string, results []model.SearchResult, query, countryCode string) ([]model.Product, error) {
	items, err := parseArray(text)
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(items))
	for _, item := range items {
		orig := e.matcher(item.ProductName, item.ProductID, results)
		p, verr := validateAndEnhance(item, orig, countryCode)
		if verr != nil {
			e.log.Warn().Err(verr).Str("product", item.ProductName).Str("query", query).
				Msg("dropping invalid product from AI response")
			continue
		}
		products = append(products, *p)
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].RelevanceScore > products[j].RelevanceScore
	})
	return products, nil
}

func (e *Engine) readCache(ctx context.Context, key string) []model.Product {
	if e.cache == nil {
		return nil
	}
	data, err := e.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}
	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil
	}
	return products
}

func (e *Engine) writeCache(ctx context.Context, key string, products []model.Product) {
	if e.cache == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, key, data, e.ttl); err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("extraction cache write failed")
	}
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
