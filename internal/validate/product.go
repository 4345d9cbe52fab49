package validate

import (
	"strconv"

	"github.com/sharad-mishra/universal-price-tool/internal/model"
)

// Product is the orchestrator's last defensive gate before results leave the
// pipeline. The extraction engine already validates each item; anything still
// failing here is dropped rather than surfaced to the client.
func Product(p *model.Product) []string {
	var errs []string

	if p == nil {
		return []string{"product data is required"}
	}
	if p.ProductName == "" {
		errs = append(errs, "product name is required")
	}
	if p.Price == "" {
		errs = append(errs, "price is required")
	} else if v, err := strconv.ParseFloat(p.Price, 64); err != nil || v <= 0 {
		errs = append(errs, "price must be a positive number")
	}
	if p.Currency == "" {
		errs = append(errs, "currency is required")
	}
	if !IsValidURL(p.Link) {
		errs = append(errs, "link must be a valid absolute URL")
	}
	if p.RelevanceScore < 0 || p.RelevanceScore > 1 {
		errs = append(errs, "relevance score must be in [0,1]")
	}
	return errs
}
