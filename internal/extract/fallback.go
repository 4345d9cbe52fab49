package extract

import (
	"sort"
	"strings"

	"github.com/sharad-mishra/universal-price-tool/internal/country"
	"github.com/sharad-mishra/universal-price-tool/internal/model"
	"github.com/sharad-mishra/universal-price-tool/internal/validate"
)

const (
	exactMatchBonus  = 0.3
	relevanceFloor   = 0.5
	maxFallbackItems = 20
	minHeuristicWord = 3
)

// Fallback derives Products directly from the raw search results with
// heuristic relevance scoring. It applies the same price, name, and link
// rules as the AI path, so degraded results are still valid results.
func Fallback(results []model.SearchResult, query, countryCode string) []model.Product {
	currency := country.Currency(countryCode)

	products := make([]model.Product, 0, len(results))
	for i := range results {
		r := &results[i]
		if r.Title == "" || r.Price == "" || r.Link == "" {
			continue
		}
		cleanPrice, ok := CleanPrice(r.Price)
		if !ok {
			continue
		}
		if !validate.IsValidURL(r.Link) {
			continue
		}

		products = append(products, model.Product{
			ProductName:    CleanProductName(r.Title),
			Price:          cleanPrice,
			Currency:       currency,
			Link:           r.Link,
			Source:         firstNonEmpty(r.Source, "Unknown"),
			Thumbnail:      optionalString(r.Thumbnail),
			Rating:         optionalRating(nil, r.Rating),
			Reviews:        optionalReviews(nil, r.Reviews),
			Delivery:       optionalString(r.Delivery),
			RelevanceScore: basicRelevance(r.Title, query),
		})
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].RelevanceScore > products[j].RelevanceScore
	})
	if len(products) > maxFallbackItems {
		products = products[:maxFallbackItems]
	}
	return products
}

// basicRelevance counts how many query words appear in the title, boosts
// verbatim full-query matches, and floors the result so fallback items rank
// as "less confident", never as "irrelevant".
func basicRelevance(title, query string) float64 {
	titleLower := strings.ToLower(title)
	queryLower := strings.ToLower(query)

	var words []string
	for _, w := range strings.Fields(queryLower) {
		if len(w) >= minHeuristicWord {
			words = append(words, w)
		}
	}

	var relevance float64
	if len(words) > 0 {
		matched := 0
		for _, w := range words {
			if strings.Contains(titleLower, w) {
				matched++
			}
		}
		relevance = float64(matched) / float64(len(words))
	}

	if strings.Contains(titleLower, queryLower) {
		relevance += exactMatchBonus
	}
	if relevance > 1 {
		relevance = 1
	}
	if relevance < relevanceFloor {
		relevance = relevanceFloor
	}
	return relevance
}
