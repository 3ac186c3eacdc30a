package ingest

import (
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/spoclab/spoc-pipeline/pkg/logger"
)

// Table is a fully read delimited file: the raw header row plus every data
// record. The pipeline reads each source completely into memory and makes
// multiple passes over the records.
type Table struct {
	File    string
	Headers []string
	Records [][]string
}

func ReadTable(path string, delimiter rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty file, expected a header row", path)
	}

	logger.Info("Read input table",
		zap.String("file", path),
		zap.Int("rows", len(rows)-1),
	)

	return &Table{File: path, Headers: rows[0], Records: rows[1:]}, nil
}
