// Package model holds the wire types shared across the service: raw search
// listings, normalized products, response envelopes, and the error taxonomy.
package model

// SearchResult is a single shopping listing as returned by a search provider,
// already flattened out of the provider's response shape.
type SearchResult struct {
	Title     string  `json:"title"`
	Price     string  `json:"price"`
	Currency  string  `json:"currency,omitempty"`
	Link      string  `json:"link"`
	Source    string  `json:"source,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
	Reviews   int     `json:"reviews,omitempty"`
	Delivery  string  `json:"delivery,omitempty"`
	Snippet   string  `json:"snippet,omitempty"`
	ProductID string  `json:"product_id,omitempty"`
}
