package domain

// Category is a coarse nutritional food group derived from per-100g nutrients
type Category string

// Categories in classifier priority order. CategoryMixedOther is the fallback
// and is never produced by a rule.
const (
	CategoryOilsFats      Category = "oils_fats"
	CategoryNutsSeeds     Category = "nuts_seeds"
	CategoryDairyLean     Category = "dairy_lean"
	CategoryDairyFatty    Category = "dairy_fatty"
	CategoryLegumesPulses Category = "legumes_pulses"
	CategoryEggs          Category = "eggs"
	CategoryFishSeafood   Category = "fish_seafood"
	CategoryPoultry       Category = "poultry"
	CategoryMeatRed       Category = "meat_red"
	CategorySweetsSnacks  Category = "sweets_snacks"
	CategoryFruitSweet    Category = "fruit_sweet"
	CategoryNonstarchyVeg Category = "nonstarchy_veg"
	CategoryStarchyVeg    Category = "starchy_veg"
	CategoryGrainStarch   Category = "grain_starch"
	CategoryMixedOther    Category = "mixed/other"
)

var allCategories = []Category{
	CategoryOilsFats,
	CategoryNutsSeeds,
	CategoryDairyLean,
	CategoryDairyFatty,
	CategoryLegumesPulses,
	CategoryEggs,
	CategoryFishSeafood,
	CategoryPoultry,
	CategoryMeatRed,
	CategorySweetsSnacks,
	CategoryFruitSweet,
	CategoryNonstarchyVeg,
	CategoryStarchyVeg,
	CategoryGrainStarch,
	CategoryMixedOther,
}

// AllCategories returns every category in priority order
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Classification is the result of classifying one nutrient record
type Classification struct {
	Category     Category `json:"category"`
	Rule         string   `json:"rule"` // name of the rule that fired
	ProteinShare float64  `json:"proteinShare"`
	CarbShare    float64  `json:"carbShare"`
	FatShare     float64  `json:"fatShare"`
}

// FoodClassification is the classification of a named table row
type FoodClassification struct {
	FoodItem string `json:"foodItem"`
	Cluster  int    `json:"cluster"`
	Classification
}
