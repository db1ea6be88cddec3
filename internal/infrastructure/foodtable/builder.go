package foodtable

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/MarieAhluwalia/nutrimap/internal/domain"
)

// rowBuilder turns raw cells into FoodRows for a fixed header
type rowBuilder struct {
	columns    []string
	foodIdx    int
	clusterIdx int
}

func newRowBuilder(header []string) (*rowBuilder, error) {
	b := &rowBuilder{foodIdx: -1, clusterIdx: -1}
	seen := make(map[string]bool, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
		switch name {
		case domain.ColumnFoodItem:
			b.foodIdx = i
		case domain.ColumnCluster:
			b.clusterIdx = i
		}
		b.columns = append(b.columns, name)
	}
	return b, nil
}

// build converts one record; line is used in error messages only
func (b *rowBuilder) build(cells []any, line int) (domain.FoodRow, error) {
	row := domain.FoodRow{Values: make(map[string]float64, len(b.columns))}
	for i, col := range b.columns {
		var cell any
		if i < len(cells) {
			cell = cells[i]
		}
		switch i {
		case b.foodIdx:
			row.FoodItem = cellString(cell)
		case b.clusterIdx:
			cluster, err := parseCluster(cell)
			if err != nil {
				return row, fmt.Errorf("line %d: cluster: %w", line, err)
			}
			row.Cluster = cluster
		default:
			row.Values[col] = parseNumber(cell)
		}
	}
	return row, nil
}

func (b *rowBuilder) table(rows []domain.FoodRow) *domain.FoodTable {
	return domain.NewFoodTable(b.columns, rows)
}

func cellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	default:
		return cast.ToString(v)
	}
}

// parseNumber reads a numeric cell; empty or non-numeric cells become NaN
func parseNumber(cell any) float64 {
	s := strings.TrimSpace(cellString(cell))
	if s == "" {
		return math.NaN()
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return math.NaN()
	}
	return f
}

// parseCluster accepts integer ids written as "3" or "3.0"
func parseCluster(cell any) (int, error) {
	s := strings.TrimSpace(cellString(cell))
	if s == "" {
		return 0, fmt.Errorf("empty cluster id")
	}
	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid cluster id %q", s)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("cluster id %q is not an integer", s)
	}
	return int(f), nil
}
