package domain

import (
	"math"

	"github.com/spf13/cast"
)

// Canonical classifier column names (per 100 g)
const (
	ColumnEnergyKcal = "energy_kcal_calculated"
	ColumnProtein    = "protein_g"
	ColumnCarbs      = "carbs_g"
	ColumnFiber      = "fiber_g"
	ColumnFat        = "fat_g"
	ColumnSatFat     = "satfat_g"
)

// NutrientRecord holds the six nutrient fields the classifier reads.
// SatFatG is expected to be a subset of FatG but this is not enforced.
type NutrientRecord struct {
	EnergyKcal float64 `json:"energy_kcal_calculated"`
	ProteinG   float64 `json:"protein_g"`
	CarbsG     float64 `json:"carbs_g"`
	FiberG     float64 `json:"fiber_g"`
	FatG       float64 `json:"fat_g"`
	SatFatG    float64 `json:"satfat_g"`
}

// NutrientRecordFromMap builds a record from a loosely typed row.
// Absent, nil, non-numeric and non-finite values become 0.
func NutrientRecordFromMap(values map[string]any) NutrientRecord {
	return NutrientRecord{
		EnergyKcal: toFloat(values[ColumnEnergyKcal]),
		ProteinG:   toFloat(values[ColumnProtein]),
		CarbsG:     toFloat(values[ColumnCarbs]),
		FiberG:     toFloat(values[ColumnFiber]),
		FatG:       toFloat(values[ColumnFat]),
		SatFatG:    toFloat(values[ColumnSatFat]),
	}
}

func toFloat(v any) float64 {
	if v == nil {
		return 0.0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || !finite(f) {
		return 0.0
	}
	return f
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// NutrientRecord reads the classifier fields from a table row. Missing
// columns, empty cells and infinities read as 0.
func (r *FoodRow) NutrientRecord() NutrientRecord {
	get := func(col string) float64 {
		v, ok := r.Value(col)
		if !ok || !finite(v) {
			return 0.0
		}
		return v
	}
	return NutrientRecord{
		EnergyKcal: get(ColumnEnergyKcal),
		ProteinG:   get(ColumnProtein),
		CarbsG:     get(ColumnCarbs),
		FiberG:     get(ColumnFiber),
		FatG:       get(ColumnFat),
		SatFatG:    get(ColumnSatFat),
	}
}
