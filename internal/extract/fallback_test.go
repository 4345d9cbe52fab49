package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharad-mishra/universal-price-tool/internal/model"
)

func TestFallbackScenario(t *testing.T) {
	results := []model.SearchResult{
		{
			Title:  "Apple iPhone 16 Pro 128GB - Sale!",
			Price:  "$999.00",
			Link:   "https://example.com/p1",
			Source: "Example Store",
		},
	}

	products := Fallback(results, "iPhone 16 Pro", "US")
	require.Len(t, products, 1)

	p := products[0]
	assert.NotContains(t, p.ProductName, "Sale")
	assert.Equal(t, "999.00", p.Price)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, "https://example.com/p1", p.Link)
	assert.Greater(t, p.RelevanceScore, 0.5)
}

func TestFallbackDropsUnusableItems(t *testing.T) {
	results := []model.SearchResult{
		{Title: "No price", Link: "https://example.com/a"},
		{Title: "No link", Price: "$10.00"},
		{Title: "Bad link", Price: "$10.00", Link: "not-a-url"},
		{Title: "Unparsable price", Price: "contact us", Link: "https://example.com/b"},
		{Title: "Good item", Price: "$10.00", Link: "https://example.com/c"},
	}
	products := Fallback(results, "item", "US")
	require.Len(t, products, 1)
	assert.Equal(t, "https://example.com/c", products[0].Link)
}

func TestFallbackSortsByRelevance(t *testing.T) {
	results := []model.SearchResult{
		{Title: "Random charger cable", Price: "$5.00", Link: "https://example.com/cable"},
		{Title: "Apple iPhone 16 Pro 128GB", Price: "$999.00", Link: "https://example.com/phone"},
	}
	products := Fallback(results, "iPhone 16 Pro", "US")
	require.Len(t, products, 2)
	// the verbatim-match title outranks the non-matching one
	assert.Equal(t, "https://example.com/phone", products[0].Link)
	assert.Equal(t, "https://example.com/cable", products[1].Link)
	assert.Equal(t, 0.5, products[1].RelevanceScore)
}

func TestFallbackTruncates(t *testing.T) {
	var results []model.SearchResult
	for i := 0; i < 30; i++ {
		results = append(results, model.SearchResult{
			Title: "Widget", Price: "$1.00", Link: "https://example.com/w",
		})
	}
	assert.Len(t, Fallback(results, "widget", "US"), 20)
}

func TestBasicRelevance(t *testing.T) {
	// exact match: full word coverage plus bonus, capped at 1.0
	assert.Equal(t, 1.0, basicRelevance("Apple iPhone 16 Pro 128GB", "iPhone 16 Pro"))

	// partial word coverage stays above the floor
	r := basicRelevance("iPhone charging cable", "iPhone 16 Pro case")
	assert.GreaterOrEqual(t, r, 0.5)
	assert.Less(t, r, 1.0)

	// no overlap floors at 0.5
	assert.Equal(t, 0.5, basicRelevance("Garden hose", "iPhone 16 Pro"))

	// short-word-only queries never divide by zero
	assert.Equal(t, 0.5, basicRelevance("TV", "tv"))
}
