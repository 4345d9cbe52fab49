package extract

import (
	"strings"

	"github.com/sharad-mishra/universal-price-tool/internal/model"
)

// Matcher reassociates an extracted item with its originating search result
// so authoritative fields (especially the link) can be recovered. A failed
// match degrades into item rejection downstream, never into incorrect data.
type Matcher func(productName, productID string, candidates []model.SearchResult) *model.SearchResult

// DefaultMatcher tries provider-ID equality first, then falls back to a
// normalized name-substring match.
func DefaultMatcher(productName, productID string, candidates []model.SearchResult) *model.SearchResult {
	if productID != "" {
		for i := range candidates {
			if candidates[i].ProductID != "" && candidates[i].ProductID == productID {
				return &candidates[i]
			}
		}
	}

	name := strings.ToLower(CleanProductName(productName))
	if name == "" {
		return nil
	}
	for i := range candidates {
		title := strings.ToLower(CleanProductName(candidates[i].Title))
		if strings.Contains(title, name) {
			return &candidates[i]
		}
	}
	return nil
}
