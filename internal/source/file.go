package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/weather-obs-pipeline/internal/domain"
)

// File reads a producer-shaped CSV: a header row naming the columns in any
// order, then one observation per row. A header-only file is the "no data"
// case, not an error. Cells stay raw text; coercion is the Cleaner's job.
type File struct {
	path   string
	logger *slog.Logger
}

// NewFile creates a CSV file source.
func NewFile(path string, logger *slog.Logger) *File {
	return &File{path: path, logger: logger}
}

// Fetch reads the whole file into a raw table.
func (f *File) Fetch(_ context.Context) (domain.RawTable, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return domain.RawTable{}, fmt.Errorf("read csv: missing header row")
	}

	header := records[0]
	colIdx := make(map[string]int, len(header))
	columns := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		colIdx[name] = i
		columns = append(columns, name)
	}

	table := domain.RawTable{Columns: columns}
	for _, record := range records[1:] {
		table.Rows = append(table.Rows, domain.RawObservation{
			City:        cell(record, colIdx, domain.ColumnCity),
			Date:        cell(record, colIdx, domain.ColumnDate),
			Temperature: cell(record, colIdx, domain.ColumnTemperature),
		})
	}

	f.logger.Info("observations read from file", "path", f.path, "rows", len(table.Rows))
	return table, nil
}

func cell(record []string, idx map[string]int, column string) string {
	i, ok := idx[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
