package model

import "strconv"

// Product is a validated, normalized listing ready to be returned to the
// client. Optional fields are pointers so absent values serialize as null
// rather than zero values.
type Product struct {
	ProductName    string   `json:"productName"`
	Price          string   `json:"price"`
	Currency       string   `json:"currency"`
	Link           string   `json:"link"`
	Source         string   `json:"source"`
	Thumbnail      *string  `json:"thumbnail"`
	Rating         *float64 `json:"rating"`
	Reviews        *int     `json:"reviews"`
	Delivery       *string  `json:"delivery"`
	RelevanceScore float64  `json:"relevanceScore"`
}

// PriceValue returns the numeric price, or 0 if it does not parse.
func (p *Product) PriceValue() float64 {
	v, err := strconv.ParseFloat(p.Price, 64)
	if err != nil {
		return 0
	}
	return v
}
