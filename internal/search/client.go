package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharad-mishra/universal-price-tool/internal/country"
	"github.com/sharad-mishra/universal-price-tool/internal/metrics"
	"github.com/sharad-mishra/universal-price-tool/internal/model"
	"github.com/sharad-mishra/universal-price-tool/internal/retry"
)

// Client owns the outbound search call and its retry loop. Search never
// returns an error to the caller: an exhausted retry budget degrades to an
// empty result set.
type Client struct {
	provider   Provider
	apiKey     string
	apiBase    string
	maxResults int
	httpClient *http.Client
	policy     retry.Policy
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// Options configures a search Client.
type Options struct {
	Provider   Provider
	APIKey     string
	APIBase    string
	MaxResults int
	Timeout    time.Duration
	Policy     retry.Policy
	Metrics    *metrics.Metrics
	Log        zerolog.Logger
}

// NewClient creates a search client. Provider defaults to SerpAPI.
func NewClient(opts Options) *Client {
	if opts.Provider == nil {
		opts.Provider = &SerpAPI{}
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 100
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Policy.MaxAttempts == 0 {
		opts.Policy = retry.SearchPolicy()
	}
	return &Client{
		provider:   opts.Provider,
		apiKey:     opts.APIKey,
		apiBase:    opts.APIBase,
		maxResults: opts.MaxResults,
		httpClient: &http.Client{Timeout: opts.Timeout},
		policy:     opts.Policy,
		metrics:    opts.Metrics,
		log:        opts.Log.With().Str("component", "search").Str("provider", opts.Provider.Name()).Logger(),
	}
}

// Search queries the shopping-search provider for the (country, query) pair.
// Each retry attempt fully supersedes the previous one.
func (c *Client) Search(ctx context.Context, countryCode, query string) []model.SearchResult {
	lang := "en"
	if info, ok := country.Lookup(countryCode); ok {
		lang = info.Language
	}
	params := Params{
		Query:      query,
		Country:    countryCode,
		Language:   lang,
		MaxResults: c.maxResults,
	}

	var lastErr error
	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		c.metrics.SearchAttempt(c.provider.Name())
		results, err := c.searchOnce(ctx, params)
		if err == nil {
			c.log.Info().
				Str("country", countryCode).
				Str("query", query).
				Int("results", len(results)).
				Msg("search completed")
			return results
		}
		lastErr = err
		c.metrics.SearchFailure(c.provider.Name())
		c.log.Warn().
			Err(err).
			Int("attempt", attempt).
			Str("country", countryCode).
			Str("query", query).
			Msg("search attempt failed")

		if attempt == c.policy.MaxAttempts {
			break
		}
		if _, ok := c.policy.BackoffFor(retry.Classify(err)); !ok {
			break
		}
		if err := c.policy.Wait(ctx, retry.Classify(err)); err != nil {
			break
		}
	}

	c.log.Error().Err(lastErr).Str("country", countryCode).Str("query", query).
		Msg("search retries exhausted, returning empty result set")
	return nil
}

func (c *Client) searchOnce(ctx context.Context, params Params) ([]model.SearchResult, error) {
	headers, err := c.provider.ValidateEnvironment(c.apiKey)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.provider.GetCompleteURL(c.apiBase, c.apiKey, params), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w: %v", model.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search status %d: %w", resp.StatusCode, model.MapHTTPStatusToError(resp.StatusCode))
	}

	return c.provider.TransformResponse(body)
}
