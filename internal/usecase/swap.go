package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/MarieAhluwalia/nutrimap/internal/domain"
)

// DefaultExampleLimit is how many example names a not-found result carries
const DefaultExampleLimit = 20

// Sort axes, each an ordered list of synonyms; the first column present wins
var (
	energyColumns = []string{"kcal", "calories", "energy_kcal"}
	sugarColumns  = []string{"sugars", "sugars_g"}
)

// macroColumns are rendered, in this order, for both sides of a comparison
var macroColumns = []string{
	"kcal",
	"calories",
	"energy_kcal",
	"protein",
	"fiber",
	"sugars",
	"fat",
	"sat_fat",
}

// SwapOptions tunes SuggestSwap
type SwapOptions struct {
	ExampleLimit int
}

// SuggestSwap looks up foodName in table and proposes the lowest-energy,
// then lowest-sugar, alternative from the same cluster.
//
// Not-found and isolated items are reported through the result's Outcome.
// Errors are domain.ErrSchema for a table without food_item or cluster and
// domain.ErrTableUnavailable for a nil table.
func SuggestSwap(table *domain.FoodTable, foodName string, opts SwapOptions) (*domain.SwapResult, error) {
	if table == nil {
		return nil, domain.ErrTableUnavailable
	}
	if !table.HasColumn(domain.ColumnFoodItem) || !table.HasColumn(domain.ColumnCluster) {
		return nil, fmt.Errorf("%w (found: %s)", domain.ErrSchema, strings.Join(table.Columns(), ", "))
	}

	query := strings.TrimSpace(foodName)
	matched := table.FindByName(query)
	if matched < 0 {
		return &domain.SwapResult{
			Outcome:  domain.OutcomeNotFound,
			Query:    query,
			Examples: exampleNames(table, opts.ExampleLimit),
		}, nil
	}

	original := table.Row(matched)
	candidates := make([]*domain.FoodRow, 0)
	for i := 0; i < table.Len(); i++ {
		if i == matched {
			continue
		}
		if row := table.Row(i); row.Cluster == original.Cluster {
			candidates = append(candidates, row)
		}
	}

	if len(candidates) == 0 {
		return &domain.SwapResult{
			Outcome:        domain.OutcomeIsolated,
			Query:          query,
			Cluster:        original.Cluster,
			Original:       original,
			OriginalMacros: macrosOf(original),
		}, nil
	}

	if keys := sortKeys(table); len(keys) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool {
			return lessByKeys(candidates[i], candidates[j], keys)
		})
	}
	swap := candidates[0]

	return &domain.SwapResult{
		Outcome:        domain.OutcomeSwap,
		Query:          query,
		Cluster:        original.Cluster,
		Original:       original,
		Swap:           swap,
		OriginalMacros: macrosOf(original),
		SwapMacros:     macrosOf(swap),
	}, nil
}

// exampleNames takes the first limit names in table order and sorts them
func exampleNames(table *domain.FoodTable, limit int) []string {
	if limit <= 0 {
		limit = DefaultExampleLimit
	}
	n := table.Len()
	if n > limit {
		n = limit
	}
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		names = append(names, table.Row(i).FoodItem)
	}
	sort.Strings(names)
	return names
}

// sortKeys resolves at most one energy and one sugar column for the table
func sortKeys(table *domain.FoodTable) []string {
	var keys []string
	for _, axis := range [][]string{energyColumns, sugarColumns} {
		if col, ok := firstPresent(table, axis); ok {
			keys = append(keys, col)
		}
	}
	return keys
}

func firstPresent(table *domain.FoodTable, synonyms []string) (string, bool) {
	for _, col := range synonyms {
		if table.HasColumn(col) {
			return col, true
		}
	}
	return "", false
}

// lessByKeys orders ascending by each key in turn; empty cells sort last
func lessByKeys(a, b *domain.FoodRow, keys []string) bool {
	for _, key := range keys {
		av, _ := a.Value(key)
		bv, _ := b.Value(key)
		aNaN, bNaN := math.IsNaN(av), math.IsNaN(bv)
		switch {
		case aNaN && bNaN:
			continue
		case aNaN:
			return false
		case bNaN:
			return true
		case av < bv:
			return true
		case av > bv:
			return false
		}
	}
	return false
}

// macrosOf lists the known macros the row carries, skipping absent ones.
// Each record is described on its own; two rows may list different macros.
func macrosOf(row *domain.FoodRow) []domain.Macro {
	var macros []domain.Macro
	for _, col := range macroColumns {
		if v, ok := row.Value(col); ok {
			macros = append(macros, domain.NewMacro(col, v))
		}
	}
	return macros
}
