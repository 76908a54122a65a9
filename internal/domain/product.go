package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ProductRecord is a raw product as returned by the listing endpoint.
// Required fields are pointers so that absence can be told apart from zero values.
type ProductRecord struct {
	ID         *int64       `json:"id"`
	Name       *string      `json:"name"`
	Sale       *int         `json:"sale"`
	PriceU     *json.Number `json:"priceU"`
	SalePriceU *json.Number `json:"salePriceU"`
	Brand      *string      `json:"brand"`
	BrandID    *json.Number `json:"brandId"`
	Feedbacks  *int         `json:"feedbacks"`
	Rating     *json.Number `json:"rating"`
}

// Validate checks that every required field is present.
func (p *ProductRecord) Validate() error {
	var missing []string
	if p.ID == nil {
		missing = append(missing, "id")
	}
	if p.Name == nil {
		missing = append(missing, "name")
	}
	if p.Sale == nil {
		missing = append(missing, "sale")
	}
	if p.PriceU == nil {
		missing = append(missing, "priceU")
	}
	if p.SalePriceU == nil {
		missing = append(missing, "salePriceU")
	}
	if p.Brand == nil {
		missing = append(missing, "brand")
	}
	if p.BrandID == nil {
		missing = append(missing, "brandId")
	}
	if p.Feedbacks == nil {
		missing = append(missing, "feedbacks")
	}
	if p.Rating == nil {
		missing = append(missing, "rating")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: product is missing required fields: %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}
	return nil
}

// NormalizedRecord is one row of the output table. Prices are in kopecks.
type NormalizedRecord struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Sale       int     `json:"sale"`
	PriceU     int64   `json:"price_u"`
	SalePriceU int64   `json:"sale_price_u"`
	Brand      string  `json:"brand"`
	BrandID    int64   `json:"brand_id"`
	Feedbacks  int     `json:"feedbacks"`
	Rating     float64 `json:"rating"`
	URL        string  `json:"url"`
}

// ToInt coerces a JSON number to an integer, truncating any fractional part.
func ToInt(n json.Number) (int64, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedResponse, n.String())
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrMalformedResponse, n.String())
	}
	return int64(f), nil
}
