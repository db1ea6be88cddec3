package foodtable

import (
	"fmt"
	"strings"

	"github.com/MarieAhluwalia/nutrimap/internal/domain"
)

// Supported table sources
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// NewLoader picks the loader for source. table is only used by sqlite.
func NewLoader(source, path, table string) (domain.FoodTableLoader, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("food table path is required")
	}
	switch strings.ToLower(source) {
	case "", SourceCSV:
		return NewCSVLoader(path), nil
	case SourceSQLite:
		return NewSQLiteLoader(path, table), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, source)
	}
}
