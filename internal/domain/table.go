package domain

import (
	"math"
	"strings"
)

// Identifier columns every swap table must carry
const (
	ColumnFoodItem = "food_item"
	ColumnCluster  = "cluster"
)

// FoodRow is one food item of a clustered nutrient table
type FoodRow struct {
	FoodItem string             `json:"foodItem"`
	Cluster  int                `json:"cluster"`
	Values   map[string]float64 `json:"-"` // non-identifier columns; NaN for empty cells
}

// Value returns the numeric cell for col and whether the row carries that column
func (r *FoodRow) Value(col string) (float64, bool) {
	if r == nil || r.Values == nil {
		return math.NaN(), false
	}
	v, ok := r.Values[col]
	return v, ok
}

// FoodTable is a read-only, column-oriented view over clustered food rows.
// Callers must not mutate rows after the table is built.
type FoodTable struct {
	columns []string
	present map[string]bool
	rows    []FoodRow
}

// NewFoodTable builds a table with the given column order and rows
func NewFoodTable(columns []string, rows []FoodRow) *FoodTable {
	present := make(map[string]bool, len(columns))
	cols := make([]string, 0, len(columns))
	for _, c := range columns {
		c = strings.TrimSpace(c)
		if c == "" || present[c] {
			continue
		}
		present[c] = true
		cols = append(cols, c)
	}
	return &FoodTable{
		columns: cols,
		present: present,
		rows:    rows,
	}
}

// Columns returns the column names in table order
func (t *FoodTable) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the table carries the named column
func (t *FoodTable) HasColumn(name string) bool {
	return t != nil && t.present[name]
}

// Len returns the number of rows
func (t *FoodTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Row returns a pointer to the i-th row. Rows are shared, not copied.
func (t *FoodTable) Row(i int) *FoodRow {
	return &t.rows[i]
}

// FindByName returns the index of the first row whose food_item equals name,
// ignoring case, or -1
func (t *FoodTable) FindByName(name string) int {
	for i := range t.rows {
		if strings.EqualFold(t.rows[i].FoodItem, name) {
			return i
		}
	}
	return -1
}
