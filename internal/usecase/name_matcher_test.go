package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarieAhluwalia/nutrimap/internal/domain"
)

func namedTable(names ...string) *domain.FoodTable {
	rows := make([]domain.FoodRow, len(names))
	for i, name := range names {
		rows[i] = domain.FoodRow{FoodItem: name, Cluster: i}
	}
	return domain.NewFoodTable([]string{"food_item", "cluster"}, rows)
}

func TestNewNameMatcher(t *testing.T) {
	m := NewNameMatcher(MatchConfig{})
	assert.Equal(t, 40.0, m.minScore)
	assert.Equal(t, 1, m.maxEditDistance)

	m = NewNameMatcher(MatchConfig{MinScore: 70, MaxEditDistance: 2})
	assert.Equal(t, 70.0, m.minScore)
	assert.Equal(t, 2, m.maxEditDistance)
}

func TestNameMatcher_Closest(t *testing.T) {
	table := namedTable("Whole milk", "Skimmed milk", "Milk chocolate", "Cheddar cheese", "whole milk", "Apple")
	m := NewNameMatcher(MatchConfig{})

	t.Run("ranks by score then name", func(t *testing.T) {
		got := m.Closest(table, "milk", 5)
		assert.Equal(t, []string{"Milk chocolate", "Skimmed milk", "Whole milk"}, got)
	})

	t.Run("respects limit", func(t *testing.T) {
		got := m.Closest(table, "milk", 2)
		assert.Equal(t, []string{"Milk chocolate", "Skimmed milk"}, got)
	})

	t.Run("tolerates a typo", func(t *testing.T) {
		got := m.Closest(table, "whole milc", 5)
		assert.Equal(t, []string{"Whole milk"}, got)
	})

	t.Run("drops weak matches", func(t *testing.T) {
		assert.Empty(t, m.Closest(table, "kale", 5))
	})

	t.Run("stop words only", func(t *testing.T) {
		assert.Nil(t, m.Closest(table, "the of", 5))
	})

	t.Run("nil table or zero limit", func(t *testing.T) {
		assert.Nil(t, m.Closest(nil, "milk", 5))
		assert.Nil(t, m.Closest(table, "milk", 0))
	})
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Beans, in tomato sauce 400", []string{"beans", "tomato", "sauce"}},
		{"Milk, whole (3.25% fat)", []string{"milk", "whole", "fat"}},
		{"milk milk MILK", []string{"milk"}},
		{"a b c", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.input))
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"milk", "milk", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"crème", "creme", 1},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			assert.Equal(t, tt.want, levenshteinDistance(tt.s1, tt.s2))
		})
	}
}

func TestFuzzyTokenMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"milk", "milc", true},
		{"apple", "apples", true},
		{"bread", "broad", true},
		{"egg", "eggs", false},
		{"cheese", "chess", false},
		{"oats", "oats", true},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, fuzzyTokenMatch(tt.a, tt.b, 1))
		})
	}
}
