package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spoclab/spoc-pipeline/pkg/logger"
)

// Dataset is one output table: ordered headers plus rows already rendered
// to strings.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// WriteCSV renders the dataset to path. I/O failures here are fatal for
// the run.
func WriteCSV(path string, data Dataset) error {
	if len(data.Headers) == 0 {
		return fmt.Errorf("dataset for %s has no headers", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(data.Headers); err != nil {
		return fmt.Errorf("failed to write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	logger.Info("Wrote output table",
		zap.String("file", path),
		zap.Int("rows", len(data.Rows)),
	)
	return nil
}
