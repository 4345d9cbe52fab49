package extract

import (
	"fmt"

	"github.com/sharad-mishra/universal-price-tool/internal/country"
	"github.com/sharad-mishra/universal-price-tool/internal/model"
	"github.com/sharad-mishra/universal-price-tool/internal/validate"
)

// validateAndEnhance turns one decoded model item into a Product, recovering
// authoritative fields from the matched original listing. The model's own
// link is never trusted over the original source link when both exist.
func validateAndEnhance(item aiItem, orig *model.SearchResult, countryCode string) (*model.Product, error) {
	price := item.priceString()
	if item.ProductName == "" || price == "" || item.Link == "" {
		return nil, fmt.Errorf("missing name, price, or link")
	}

	cleanPrice, ok := CleanPrice(price)
	if !ok {
		return nil, fmt.Errorf("invalid price %q", price)
	}

	link := item.Link
	if orig != nil && orig.Link != "" {
		link = orig.Link
	}
	if !validate.IsValidURL(link) {
		return nil, fmt.Errorf("invalid link %q", link)
	}

	var o model.SearchResult
	if orig != nil {
		o = *orig
	}

	return &model.Product{
		ProductName:    CleanProductName(item.ProductName),
		Price:          cleanPrice,
		Currency:       country.Currency(countryCode),
		Link:           link,
		Source:         firstNonEmpty(item.Source, o.Source, "Unknown"),
		Thumbnail:      optionalString(item.Thumbnail, o.Thumbnail),
		Rating:         optionalRating(item.Rating, o.Rating),
		Reviews:        optionalReviews(item.Reviews, o.Reviews),
		Delivery:       optionalString(item.Delivery, o.Delivery),
		RelevanceScore: clampRelevance(item.RelevanceScore),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func optionalString(values ...string) *string {
	if v := firstNonEmpty(values...); v != "" {
		return &v
	}
	return nil
}

// optionalRating keeps the first rating inside the valid [0,5] range.
func optionalRating(fromModel *float64, fromOriginal float64) *float64 {
	if fromModel != nil && *fromModel > 0 && *fromModel <= 5 {
		return fromModel
	}
	if fromOriginal > 0 && fromOriginal <= 5 {
		return &fromOriginal
	}
	return nil
}

func optionalReviews(fromModel *float64, fromOriginal int) *int {
	if fromModel != nil && *fromModel >= 1 {
		n := int(*fromModel)
		return &n
	}
	if fromOriginal > 0 {
		return &fromOriginal
	}
	return nil
}
