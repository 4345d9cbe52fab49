package extract

import (
	"fmt"
	"strings"

	"github.com/sharad-mishra/universal-price-tool/internal/country"
	"github.com/sharad-mishra/universal-price-tool/internal/model"
)

// maxPromptListings caps how many raw listings are shown to the model.
const maxPromptListings = 20

// BuildPrompt renders the extraction prompt: the candidate listings plus the
// instruction set that forms the pipeline's correctness contract with the
// model. Schema drift here directly causes parse failures downstream.
func BuildPrompt(results []model.SearchResult, query, countryCode string) string {
	if len(results) > maxPromptListings {
		results = results[:maxPromptListings]
	}

	var listings strings.Builder
	for i, r := range results {
		fmt.Fprintf(&listings, "%d. Title: %s\n", i+1, orNA(r.Title))
		fmt.Fprintf(&listings, "Price: %s\n", orNA(r.Price))
		fmt.Fprintf(&listings, "Currency: %s\n", orNA(r.Currency))
		fmt.Fprintf(&listings, "Source: %s\n", orNA(r.Source))
		fmt.Fprintf(&listings, "Link: %s\n", orNA(r.Link))
		if r.Snippet != "" {
			fmt.Fprintf(&listings, "Description: %s\n", r.Snippet)
		}
		if r.Rating > 0 {
			fmt.Fprintf(&listings, "Rating: %g\n", r.Rating)
		}
		if r.Reviews > 0 {
			fmt.Fprintf(&listings, "Reviews: %d\n", r.Reviews)
		}
		listings.WriteString("\n")
	}

	expectedCurrency := country.Currency(countryCode)

	return fmt.Sprintf(`You are an expert product price extraction system for a universal price comparison tool. Given search results for the query %q in country %q, extract and structure product information.

**CRITICAL INSTRUCTION: ALL PRICES MUST BE IN %[3]s.** If a price is found in a different currency, convert it to %[3]s using a reasonable exchange rate (e.g., 1 USD = 0.92 EUR, 1 EUR = 89 INR, 1 USD = 5.3 BRL). If conversion is impossible or highly uncertain, set the price to null.

SEARCH RESULTS:
%[4]s
INSTRUCTIONS:
1. Extract products matching %[1]q exactly, considering country %[2]q.
   - productName: Clean, standardized name (e.g., "Apple MacBook Air M4 256GB")
   - price: Numeric value as a string with two decimal places (e.g., "1299.00"). Do NOT include currency symbols or commas.
   - currency: This MUST ALWAYS be %[3]q.
   - link: The exact product URL from the input, or null if missing. **Do not generate links.**
   - source: Store/website name.
   - thumbnail: Image URL or null.
   - rating: Numeric rating (e.g., 4.5) or null.
   - reviews: Number of reviews (e.g., 1000) or null.
   - delivery: Delivery information string (e.g., "Free delivery") or null.
   - relevanceScore: Match accuracy (0.0 to 1.0, 0.9+ for exact matches).

2. Only include products with a valid price and a valid link.
3. Standardize product names (remove promotional text, keep important specifications like storage, color).
4. Sort the final list by relevanceScore in descending order.
5. Respond ONLY with a valid JSON array.

JSON Response:`, query, countryCode, expectedCurrency, listings.String())
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
