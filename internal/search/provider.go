// Package search calls the external shopping-search provider and maps its raw
// listing schema into the internal SearchResult shape.
package search

import (
	"net/http"

	"github.com/sharad-mishra/universal-price-tool/internal/model"
)

// Provider translates between the client's search parameters and a specific
// upstream shopping-search service.
type Provider interface {
	// Name returns the provider identifier (e.g. "serpapi").
	Name() string

	// ValidateEnvironment checks required credentials and returns request headers.
	ValidateEnvironment(apiKey string) (http.Header, error)

	// GetCompleteURL builds the full upstream URL from base URL and query params.
	GetCompleteURL(apiBase, apiKey string, params Params) string

	// TransformResponse parses the upstream body into raw search results.
	// Structurally unusable entries are dropped here, before mapping.
	TransformResponse(body []byte) ([]model.SearchResult, error)

	// DefaultAPIBase returns the default upstream URL for this provider.
	DefaultAPIBase() string
}

// Params holds the normalized search parameters for one outbound call.
type Params struct {
	Query      string
	Country    string
	Language   string
	MaxResults int
}
