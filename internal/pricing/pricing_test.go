package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharad-mishra/universal-price-tool/internal/cache"
	"github.com/sharad-mishra/universal-price-tool/internal/model"
)

type fakeSearcher struct {
	calls   int
	results []model.SearchResult
}

func (f *fakeSearcher) Search(ctx context.Context, countryCode, query string) []model.SearchResult {
	f.calls++
	return f.results
}

type fakeExtractor struct {
	calls    int
	products []model.Product
}

func (f *fakeExtractor) Extract(ctx context.Context, results []model.SearchResult, query, countryCode string) []model.Product {
	f.calls++
	return f.products
}

func testProduct(name, price string, relevance float64) model.Product {
	return model.Product{
		ProductName:    name,
		Price:          price,
		Currency:       "USD",
		Link:           "https://store.example.com/" + name,
		Source:         "Example Store",
		RelevanceScore: relevance,
	}
}

func newTestService(searcher Searcher, extractor Extractor, c cache.Cache) *Service {
	return NewService(Options{
		Searcher:  searcher,
		Extractor: extractor,
		Cache:     c,
	})
}

func TestGetPricesSuccess(t *testing.T) {
	searcher := &fakeSearcher{results: []model.SearchResult{{Title: "iPhone"}}}
	extractor := &fakeExtractor{products: []model.Product{
		testProduct("case", "20.00", 0.6),
		testProduct("phone", "999.00", 0.95),
	}}
	svc := newTestService(searcher, extractor, nil)

	resp, err := svc.GetPrices(context.Background(), "us", "iPhone 16 Pro")
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "phone", resp.Results[0].ProductName)
	assert.Equal(t, "case", resp.Results[1].ProductName)
	assert.Equal(t, "USD", resp.Currency)

	_, perr := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, perr)
	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, 1, extractor.calls)
}

func TestGetPricesValidationError(t *testing.T) {
	searcher := &fakeSearcher{}
	extractor := &fakeExtractor{}
	svc := newTestService(searcher, extractor, nil)

	_, err := svc.GetPrices(context.Background(), "ZZ", "iPhone 16 Pro")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Details, "unsupported country code: ZZ")
	assert.Equal(t, 0, searcher.calls, "no outbound calls for a rejected request")
	assert.Equal(t, 0, extractor.calls)

	_, err = svc.GetPrices(context.Background(), "", "x")
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Details, 2)
}

func TestGetPricesCacheHit(t *testing.T) {
	searcher := &fakeSearcher{results: []model.SearchResult{{Title: "iPhone"}}}
	extractor := &fakeExtractor{products: []model.Product{testProduct("phone", "999.00", 0.9)}}
	mem := cache.NewMemoryCache()
	defer mem.Close()
	svc := newTestService(searcher, extractor, mem)

	first, err := svc.GetPrices(context.Background(), "US", "iPhone 16 Pro")
	require.NoError(t, err)
	second, err := svc.GetPrices(context.Background(), "US", "iPhone 16 Pro")
	require.NoError(t, err)

	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, 1, extractor.calls)
	assert.Equal(t, first.Results, second.Results)
}

func TestGetPricesCacheHitRefreshesTimestamp(t *testing.T) {
	mem := cache.NewMemoryCache()
	defer mem.Close()
	svc := newTestService(&fakeSearcher{}, &fakeExtractor{}, mem)

	stale := "2020-01-01T00:00:00Z"
	seeded, err := json.Marshal(model.PriceResponse{
		Results:   []model.Product{testProduct("phone", "999.00", 0.9)},
		Currency:  "USD",
		Timestamp: stale,
	})
	require.NoError(t, err)
	key := cache.Key(cache.NamespaceResults, "US", "iPhone 16 Pro")
	require.NoError(t, mem.Set(context.Background(), key, seeded, time.Minute))

	resp, err := svc.GetPrices(context.Background(), "US", "iPhone 16 Pro")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1, "cached results are served as stored")

	assert.NotEqual(t, stale, resp.Timestamp)
	served, perr := time.Parse(time.RFC3339, resp.Timestamp)
	require.NoError(t, perr)
	assert.WithinDuration(t, time.Now().UTC(), served, time.Minute)
}

func TestGetPricesPriceTieBreak(t *testing.T) {
	extractor := &fakeExtractor{products: []model.Product{
		testProduct("pricier", "50.00", 0.8),
		testProduct("cheaper", "40.00", 0.8),
	}}
	svc := newTestService(&fakeSearcher{}, extractor, nil)

	resp, err := svc.GetPrices(context.Background(), "US", "iPhone 16 Pro")
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "cheaper", resp.Results[0].ProductName)
	assert.Equal(t, "pricier", resp.Results[1].ProductName)
}

func TestGetPricesTruncates(t *testing.T) {
	var products []model.Product
	for i := 0; i < 25; i++ {
		products = append(products, testProduct(fmt.Sprintf("item-%02d", i), "10.00", 0.7))
	}
	svc := newTestService(&fakeSearcher{}, &fakeExtractor{products: products}, nil)

	resp, err := svc.GetPrices(context.Background(), "US", "iPhone 16 Pro")
	require.NoError(t, err)
	assert.Len(t, resp.Results, maxResults)
}

func TestGetPricesEmptySearchIsSuccess(t *testing.T) {
	svc := newTestService(&fakeSearcher{}, &fakeExtractor{}, nil)

	resp, err := svc.GetPrices(context.Background(), "DE", "unobtainium widget")
	require.NoError(t, err)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
	assert.Equal(t, "EUR", resp.Currency)
}

func TestGetPricesDropsInvalidProducts(t *testing.T) {
	bad := testProduct("bad", "999.00", 0.9)
	bad.Link = "not-a-url"
	extractor := &fakeExtractor{products: []model.Product{
		bad,
		testProduct("good", "20.00", 0.6),
	}}
	svc := newTestService(&fakeSearcher{}, extractor, nil)

	resp, err := svc.GetPrices(context.Background(), "US", "iPhone 16 Pro")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "good", resp.Results[0].ProductName)
}
