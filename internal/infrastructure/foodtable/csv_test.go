package foodtable

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarieAhluwalia/nutrimap/internal/domain"
)

const clusteredCSV = `food_item,kcal,sugars,protein,cluster
chorizo,455,1,24,2
turkey breast,104,0,17.5,2
salami,,0.5,22,2.0
apple,52,10.4,0.3,0
`

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(context.Background(), strings.NewReader(clusteredCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"food_item", "kcal", "sugars", "protein", "cluster"}, table.Columns())
	assert.True(t, table.HasColumn(domain.ColumnFoodItem))
	assert.True(t, table.HasColumn(domain.ColumnCluster))
	require.Equal(t, 4, table.Len())

	chorizo := table.Row(0)
	assert.Equal(t, "chorizo", chorizo.FoodItem)
	assert.Equal(t, 2, chorizo.Cluster)
	kcal, ok := chorizo.Value("kcal")
	assert.True(t, ok)
	assert.Equal(t, 455.0, kcal)

	salami := table.Row(2)
	assert.Equal(t, 2, salami.Cluster, "2.0 is accepted as an integer cluster id")
	kcal, ok = salami.Value("kcal")
	assert.True(t, ok, "empty cells keep their column")
	assert.True(t, math.IsNaN(kcal))

	_, ok = salami.Value(domain.ColumnFoodItem)
	assert.False(t, ok, "identifier columns are not numeric values")
}

func TestReadCSV_WithoutClusterColumn(t *testing.T) {
	table, err := ReadCSV(context.Background(), strings.NewReader("food_item,kcal\napple,52\n"))
	require.NoError(t, err)
	assert.False(t, table.HasColumn(domain.ColumnCluster))
	assert.Equal(t, 1, table.Len())
}

func TestReadCSV_StripsByteOrderMark(t *testing.T) {
	table, err := ReadCSV(context.Background(), strings.NewReader("\ufefffood_item,cluster\napple,1\n"))
	require.NoError(t, err)
	assert.True(t, table.HasColumn(domain.ColumnFoodItem))
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"non-integer cluster", "food_item,cluster\napple,1.5\n"},
		{"non-numeric cluster", "food_item,cluster\napple,fruit\n"},
		{"empty cluster", "food_item,cluster\napple,\n"},
		{"ragged row", "food_item,cluster\napple,1,extra\n"},
		{"duplicate column", "food_item,kcal,kcal\napple,1,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(context.Background(), strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestReadCSV_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadCSV(ctx, strings.NewReader(clusteredCSV))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCSVLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "food_with_clusters.csv")
	require.NoError(t, os.WriteFile(path, []byte(clusteredCSV), 0o600))

	table, err := NewCSVLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len())

	_, err = NewCSVLoader(filepath.Join(t.TempDir(), "missing.csv")).Load(context.Background())
	assert.Error(t, err)
}
