package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shoppingBody = `{
	"shopping_results": [
		{"title": "Apple iPhone 16 Pro", "price": "$999.00", "link": "https://example.com/p1", "source": "Example"}
	]
}`

func newTestClient(t *testing.T, upstream *httptest.Server) *Client {
	t.Helper()
	return NewClient(Options{
		APIKey:  "test-key",
		APIBase: upstream.URL,
		Log:     zerolog.Nop(),
	})
}

func TestClientSearch(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "google_shopping", r.URL.Query().Get("engine"))
		assert.Equal(t, "US", r.URL.Query().Get("gl"))
		w.Write([]byte(shoppingBody))
	}))
	defer upstream.Close()

	results := newTestClient(t, upstream).Search(context.Background(), "US", "iPhone 16 Pro")
	require.Len(t, results, 1)
	assert.Equal(t, "Apple iPhone 16 Pro", results[0].Title)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientSearchRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(shoppingBody))
	}))
	defer upstream.Close()

	results := newTestClient(t, upstream).Search(context.Background(), "US", "iphone")
	assert.Len(t, results, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientSearchExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	results := newTestClient(t, upstream).Search(context.Background(), "US", "iphone")
	assert.Empty(t, results)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientSearchProviderErrorPayload(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer upstream.Close()

	// provider-reported error payloads count against the retry budget too
	results := newTestClient(t, upstream).Search(context.Background(), "US", "iphone")
	assert.Empty(t, results)
}

func TestClientSearchEmptyResultsIsNotError(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	results := newTestClient(t, upstream).Search(context.Background(), "US", "obscure thing")
	assert.Empty(t, results)
	assert.Equal(t, int32(1), calls.Load(), "empty result set must not be retried")
}

func TestClientSearchLanguageFromCountry(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "de", r.URL.Query().Get("hl"))
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	newTestClient(t, upstream).Search(context.Background(), "DE", "laptop")
}

func TestClientSearchMissingAPIKey(t *testing.T) {
	c := NewClient(Options{Log: zerolog.Nop()})
	results := c.Search(context.Background(), "US", "iphone")
	assert.Empty(t, results)
}
