package foodtable

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MarieAhluwalia/nutrimap/internal/domain"
)

// CSVLoader reads a clustered food table from a CSV file with a header row
type CSVLoader struct {
	path string
}

// NewCSVLoader creates a loader for the CSV file at path
func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{path: path}
}

// Load opens and parses the file
func (l *CSVLoader) Load(ctx context.Context) (*domain.FoodTable, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open food table: %w", err)
	}
	defer f.Close()

	table, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	return table, nil
}

// ReadCSV parses a clustered food table from r
func ReadCSV(ctx context.Context, r io.Reader) (*domain.FoodTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty csv: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	builder, err := newRowBuilder(header)
	if err != nil {
		return nil, err
	}

	var rows []domain.FoodRow
	cells := make([]any, len(header))
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		for i := range cells {
			cells[i] = record[i]
		}
		row, err := builder.build(cells, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return builder.table(rows), nil
}
