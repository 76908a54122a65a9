package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"wildberries/parser/internal/domain"

	log "github.com/sirupsen/logrus"
)

type CSVExporter struct {
	path string
}

func NewCSVExporter(path string) *CSVExporter {
	return &CSVExporter{path: path}
}

func (e *CSVExporter) Export(rows []domain.NormalizedRecord) error {
	file, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", e.path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(Headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(stringCells(row)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", e.path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", e.path, err)
	}

	log.Infof("💾 Exported %d rows to %s", len(rows), e.path)
	return nil
}
