package search

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sharad-mishra/universal-price-tool/internal/model"
)

const minTitleLength = 3

// SerpAPI implements Provider for the SerpAPI google_shopping engine.
type SerpAPI struct{}

func (s *SerpAPI) Name() string { return "serpapi" }

func (s *SerpAPI) DefaultAPIBase() string {
	return "https://serpapi.com/search"
}

func (s *SerpAPI) ValidateEnvironment(apiKey string) (http.Header, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("serpapi: SERPAPI_KEY required")
	}
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("User-Agent", "universal-price-tool/1.0")
	return h, nil
}

func (s *SerpAPI) GetCompleteURL(apiBase, apiKey string, params Params) string {
	if apiBase == "" {
		apiBase = s.DefaultAPIBase()
	}
	num := params.MaxResults
	if num <= 0 {
		num = 100
	}
	lang := params.Language
	if lang == "" {
		lang = "en"
	}

	v := url.Values{}
	v.Set("api_key", apiKey)
	v.Set("engine", "google_shopping")
	v.Set("q", params.Query)
	v.Set("gl", params.Country)
	v.Set("hl", lang)
	v.Set("num", strconv.Itoa(num))
	v.Set("safe", "active")
	v.Set("device", "desktop")
	return apiBase + "?" + v.Encode()
}

type serpShoppingItem struct {
	Title       string          `json:"title"`
	Price       string          `json:"price"`
	Currency    string          `json:"currency"`
	Link        string          `json:"link"`
	OfferLink   string          `json:"offer_link"`
	ProductLink string          `json:"product_link"`
	Source      string          `json:"source"`
	Thumbnail   string          `json:"thumbnail"`
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
	Delivery    string          `json:"delivery"`
	Snippet     string          `json:"snippet"`
	ProductID   json.RawMessage `json:"product_id"`
}

func (s *SerpAPI) TransformResponse(body []byte) ([]model.SearchResult, error) {
	var raw struct {
		Error           string             `json:"error"`
		ShoppingResults []serpShoppingItem `json:"shopping_results"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("serpapi: parse response: %w", err)
	}
	if raw.Error != "" {
		return nil, fmt.Errorf("serpapi: %w: %s", model.ErrUpstream, raw.Error)
	}

	results := make([]model.SearchResult, 0, len(raw.ShoppingResults))
	for _, item := range raw.ShoppingResults {
		// Entries that can never become valid Products are dropped pre-emptively.
		if len(item.Title) < minTitleLength || item.Price == "" {
			continue
		}
		results = append(results, model.SearchResult{
			Title:     item.Title,
			Price:     item.Price,
			Currency:  item.Currency,
			Link:      pickLink(item),
			Source:    item.Source,
			Thumbnail: item.Thumbnail,
			Rating:    item.Rating,
			Reviews:   item.Reviews,
			Delivery:  item.Delivery,
			Snippet:   item.Snippet,
			ProductID: decodeProductID(item.ProductID),
		})
	}
	return results, nil
}

// pickLink prefers the direct product link over the offer link over the
// generic listing link. A missing link is tolerated here; it is resolved or
// rejected downstream.
func pickLink(item serpShoppingItem) string {
	switch {
	case item.Link != "":
		return item.Link
	case item.OfferLink != "":
		return item.OfferLink
	default:
		return item.ProductLink
	}
}

// decodeProductID tolerates the provider sending product IDs as either JSON
// strings or bare numbers.
func decodeProductID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
