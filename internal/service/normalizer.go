package service

import (
	"fmt"

	"wildberries/parser/internal/domain"
)

// RecordNormalizer flattens raw products into table rows.
type RecordNormalizer struct {
	productURL string
}

// NewRecordNormalizer takes the product page template, with %d standing for the product id.
func NewRecordNormalizer(productURL string) *RecordNormalizer {
	return &RecordNormalizer{productURL: productURL}
}

// Normalize maps records one to one, preserving order. A record missing a required field fails the whole call.
func (n *RecordNormalizer) Normalize(records []domain.ProductRecord) ([]domain.NormalizedRecord, error) {
	rows := make([]domain.NormalizedRecord, 0, len(records))
	for i := range records {
		row, err := n.normalizeOne(&records[i])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (n *RecordNormalizer) normalizeOne(p *domain.ProductRecord) (domain.NormalizedRecord, error) {
	if err := p.Validate(); err != nil {
		return domain.NormalizedRecord{}, err
	}

	priceU, err := domain.ToInt(*p.PriceU)
	if err != nil {
		return domain.NormalizedRecord{}, fmt.Errorf("priceU: %w", err)
	}
	salePriceU, err := domain.ToInt(*p.SalePriceU)
	if err != nil {
		return domain.NormalizedRecord{}, fmt.Errorf("salePriceU: %w", err)
	}
	brandID, err := domain.ToInt(*p.BrandID)
	if err != nil {
		return domain.NormalizedRecord{}, fmt.Errorf("brandId: %w", err)
	}
	rating, err := p.Rating.Float64()
	if err != nil {
		return domain.NormalizedRecord{}, fmt.Errorf("rating: %w: %q", domain.ErrMalformedResponse, p.Rating.String())
	}

	return domain.NormalizedRecord{
		ID:         *p.ID,
		Name:       *p.Name,
		Sale:       *p.Sale,
		PriceU:     priceU,
		SalePriceU: salePriceU,
		Brand:      *p.Brand,
		BrandID:    brandID,
		Feedbacks:  *p.Feedbacks,
		Rating:     rating,
		URL:        fmt.Sprintf(n.productURL, *p.ID),
	}, nil
}
