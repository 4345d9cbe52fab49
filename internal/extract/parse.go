package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// aiItem is one loosely-typed record decoded from the model's response. The
// model is instructed to comply with the schema but compliance is never
// assumed; every field is re-validated before it becomes a Product.
type aiItem struct {
	ProductName    string          `json:"productName"`
	Price          json.RawMessage `json:"price"`
	Currency       string          `json:"currency"`
	Link           string          `json:"link"`
	Source         string          `json:"source"`
	Thumbnail      string          `json:"thumbnail"`
	Rating         *float64        `json:"rating"`
	Reviews        *float64        `json:"reviews"`
	Delivery       string          `json:"delivery"`
	RelevanceScore *float64        `json:"relevanceScore"`
	ProductID      string          `json:"serpapi_product_id"`
}

var codeFences = regexp.MustCompile("```(?:json)?\n?")

// parseArray extracts and decodes the first JSON array literal from the
// model's free-text response. The model may wrap the array in markdown fences
// or surround it with commentary; both are tolerated. Any failure here is a
// recoverable extraction failure, not a fatal error.
func parseArray(text string) ([]aiItem, error) {
	clean := codeFences.ReplaceAllString(strings.TrimSpace(text), "")

	start := strings.Index(clean, "[")
	end := strings.LastIndex(clean, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var items []aiItem
	if err := json.Unmarshal([]byte(clean[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("decode response array: %w", err)
	}
	return items, nil
}

// priceString renders the model's price value, which may arrive as a JSON
// string, a bare number, or null.
func (it *aiItem) priceString() string {
	if len(it.Price) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(it.Price, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(it.Price, &n); err == nil {
		return n.String()
	}
	return ""
}
