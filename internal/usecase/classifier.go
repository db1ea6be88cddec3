package usecase

import (
	"math"

	"github.com/MarieAhluwalia/nutrimap/internal/domain"
)

// Denominators below this value are floored to it before dividing
const denominatorFloor = 1e-6

// Energy density of macronutrients (kcal per gram)
const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0
)

// profile is a nutrient record together with its derived energy shares
type profile struct {
	kcal, protein, carbs, fiber, fat, satfat float64

	proteinShare, carbShare, fatShare float64
}

func newProfile(rec domain.NutrientRecord) profile {
	kcalSafe := math.Max(rec.EnergyKcal, denominatorFloor)
	return profile{
		kcal:         rec.EnergyKcal,
		protein:      rec.ProteinG,
		carbs:        rec.CarbsG,
		fiber:        rec.FiberG,
		fat:          rec.FatG,
		satfat:       rec.SatFatG,
		proteinShare: kcalPerGramProtein * rec.ProteinG / kcalSafe,
		carbShare:    kcalPerGramCarbs * rec.CarbsG / kcalSafe,
		fatShare:     kcalPerGramFat * rec.FatG / kcalSafe,
	}
}

// rule labels a profile when its predicate holds
type rule struct {
	name     string
	category domain.Category
	match    func(p profile) bool
}

// step is one entry of the cascade: either a plain rule or a gate.
// A gate admits a profile and then tries its own rules in order; when
// none match, fallback decides (exhaustive gate) or the cascade moves on.
type step struct {
	rule

	gate     string
	admit    func(p profile) bool
	rules    []rule
	fallback func(p profile) (string, domain.Category)
}

func (s step) apply(p profile) (string, domain.Category, bool) {
	if s.admit == nil {
		if s.match(p) {
			return s.name, s.category, true
		}
		return "", "", false
	}
	if !s.admit(p) {
		return "", "", false
	}
	for _, r := range s.rules {
		if r.match(p) {
			return s.gate + "." + r.name, r.category, true
		}
	}
	if s.fallback != nil {
		name, cat := s.fallback(p)
		return s.gate + "." + name, cat, true
	}
	return "", "", false
}

func between(v, lo, hi float64) bool { return lo <= v && v <= hi }

// cascade is evaluated strictly in order; the first step that yields a
// category wins. Rules overlap on purpose, so the order is load-bearing.
var cascade = []step{
	{rule: rule{name: "oils_fats", category: domain.CategoryOilsFats, match: func(p profile) bool {
		return p.fat >= 80 || p.fatShare >= 0.85
	}}},
	{rule: rule{name: "nuts_seeds", category: domain.CategoryNutsSeeds, match: func(p profile) bool {
		return 40 <= p.fat && p.fat < 80 && p.protein >= 10 && p.fiber >= 5
	}}},
	{
		gate: "dairy",
		admit: func(p profile) bool {
			return p.protein >= 3 && p.carbs >= 3 && p.satfat >= 1.5
		},
		rules: []rule{
			{name: "lean", category: domain.CategoryDairyLean, match: func(p profile) bool {
				return p.fat < 5 && p.satfat < 3 && p.kcal <= 120
			}},
			{name: "fatty", category: domain.CategoryDairyFatty, match: func(p profile) bool {
				return p.fat >= 15 || p.satfat >= 5 || p.kcal >= 200
			}},
		},
		// fat<=8 / kcal<=150 are literal thresholds, not derived from the rules above
		fallback: func(p profile) (string, domain.Category) {
			if p.fat <= 8 && p.kcal <= 150 {
				return "between_lean", domain.CategoryDairyLean
			}
			return "between_fatty", domain.CategoryDairyFatty
		},
	},
	{rule: rule{name: "legumes_pulses", category: domain.CategoryLegumesPulses, match: func(p profile) bool {
		canned := between(p.protein, 5, 12) &&
			between(p.carbs, 10, 25) &&
			p.fiber >= 3 &&
			p.fat < 10 &&
			between(p.kcal, 60, 180)
		dried := p.protein >= 15 &&
			p.carbs >= 30 &&
			p.fiber >= 10 &&
			p.fat < 15 &&
			p.kcal >= 250
		return canned || dried
	}}},
	{
		// No fallback. poultry and meat_red are complements for real numbers,
		// so only NaN fields leave the gate unlabeled and continue below.
		gate: "protein",
		admit: func(p profile) bool {
			return p.protein >= 15 && p.carbs < 5
		},
		rules: []rule{
			{name: "eggs", category: domain.CategoryEggs, match: func(p profile) bool {
				return between(p.fat, 8, 12) && between(p.satfat, 2, 4) && between(p.kcal, 130, 180)
			}},
			{name: "fish_seafood", category: domain.CategoryFishSeafood, match: func(p profile) bool {
				return p.fat <= 15 && p.satfat <= 3 && p.kcal <= 180
			}},
			{name: "poultry", category: domain.CategoryPoultry, match: func(p profile) bool {
				return p.fat <= 10 && p.satfat <= 4
			}},
			{name: "meat_red", category: domain.CategoryMeatRed, match: func(p profile) bool {
				return p.fat > 10 || p.satfat > 4
			}},
		},
	},
	{rule: rule{name: "sweets_snacks", category: domain.CategorySweetsSnacks, match: func(p profile) bool {
		return p.carbs >= 20 && p.kcal >= 250
	}}},
	{rule: rule{name: "fruit_sweet", category: domain.CategoryFruitSweet, match: func(p profile) bool {
		return p.carbs >= 8 && p.fat < 5 && p.fiber >= 1.5 && p.kcal < 120
	}}},
	{rule: rule{name: "nonstarchy_veg", category: domain.CategoryNonstarchyVeg, match: func(p profile) bool {
		return p.kcal < 80 && p.carbs < 15 && p.fiber >= 2
	}}},
	{rule: rule{name: "starchy_veg", category: domain.CategoryStarchyVeg, match: func(p profile) bool {
		return between(p.carbs, 15, 30) && between(p.kcal, 60, 130) && p.fiber >= 2
	}}},
	{rule: rule{name: "grain_starch", category: domain.CategoryGrainStarch, match: func(p profile) bool {
		return p.carbs >= 45 && p.fat < 10 && p.kcal >= 200
	}}},
}

const fallbackRule = "fallback"

// Classify assigns a food group to a nutrient record. It never fails:
// a record matched by no rule is classified as mixed/other.
func Classify(rec domain.NutrientRecord) domain.Classification {
	p := newProfile(rec)
	result := domain.Classification{
		Category:     domain.CategoryMixedOther,
		Rule:         fallbackRule,
		ProteinShare: p.proteinShare,
		CarbShare:    p.carbShare,
		FatShare:     p.fatShare,
	}
	for _, s := range cascade {
		if name, cat, ok := s.apply(p); ok {
			result.Category = cat
			result.Rule = name
			break
		}
	}
	return result
}

// AssignFoodGroup returns only the category of Classify
func AssignFoodGroup(rec domain.NutrientRecord) domain.Category {
	return Classify(rec).Category
}

// ClassifyMap classifies a loosely typed row keyed by the canonical column names
func ClassifyMap(values map[string]any) domain.Classification {
	return Classify(domain.NutrientRecordFromMap(values))
}
