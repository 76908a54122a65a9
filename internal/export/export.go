package export

import (
	"fmt"
	"strconv"

	"wildberries/parser/internal/domain"
)

// Exporter writes the normalized product table somewhere.
type Exporter interface {
	Export(rows []domain.NormalizedRecord) error
}

// Headers are the table column names, in column order.
var Headers = []string{
	"Наименование",
	"id",
	"Скидка",
	"Цена/коп",
	"Цена со скидкой/коп",
	"Бренд",
	"id бренда",
	"feedbacks",
	"rating",
	"Ссылка",
}

// New returns the exporter for format, or nil for "none".
func New(format, path string) (Exporter, error) {
	switch format {
	case "xlsx":
		return NewXLSXExporter(path), nil
	case "csv":
		return NewCSVExporter(path), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

func cells(r domain.NormalizedRecord) []any {
	return []any{r.Name, r.ID, r.Sale, r.PriceU, r.SalePriceU, r.Brand, r.BrandID, r.Feedbacks, r.Rating, r.URL}
}

func stringCells(r domain.NormalizedRecord) []string {
	return []string{
		r.Name,
		strconv.FormatInt(r.ID, 10),
		strconv.Itoa(r.Sale),
		strconv.FormatInt(r.PriceU, 10),
		strconv.FormatInt(r.SalePriceU, 10),
		r.Brand,
		strconv.FormatInt(r.BrandID, 10),
		strconv.Itoa(r.Feedbacks),
		strconv.FormatFloat(r.Rating, 'f', -1, 64),
		r.URL,
	}
}
