package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SwapOutcome tells the caller which variant of SwapResult it holds
type SwapOutcome string

const (
	OutcomeSwap     SwapOutcome = "swap"
	OutcomeIsolated SwapOutcome = "isolated"
	OutcomeNotFound SwapOutcome = "not_found"
)

// NoMacrosText replaces the macro list of a record that has none of the known macros
const NoMacrosText = "no detailed macros available"

// Macro is one rendered nutrient of a swap comparison
type Macro struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewMacro renders v with FormatValue
func NewMacro(name string, v float64) Macro {
	return Macro{Name: name, Value: FormatValue(v)}
}

// String renders the macro as name=value
func (m Macro) String() string {
	return m.Name + "=" + m.Value
}

// SwapRequest represents a swap lookup request
type SwapRequest struct {
	FoodItem string `json:"foodItem" binding:"required"`
}

// SwapResult is the outcome of a swap lookup. Original is set for swap and
// isolated outcomes, Swap only for swap, Examples only for not_found.
type SwapResult struct {
	Outcome        SwapOutcome `json:"outcome"`
	Query          string      `json:"query"`
	Cluster        int         `json:"cluster"`
	Original       *FoodRow    `json:"original,omitempty"`
	Swap           *FoodRow    `json:"swap,omitempty"`
	OriginalMacros []Macro     `json:"originalMacros,omitempty"`
	SwapMacros     []Macro     `json:"swapMacros,omitempty"`
	Examples       []string    `json:"examples,omitempty"`
	Suggestions    []string    `json:"suggestions,omitempty"` // close names for a not-found query
}

// Message renders the result as the text handed to users and agents
func (r *SwapResult) Message() string {
	switch r.Outcome {
	case OutcomeNotFound:
		return fmt.Sprintf("I couldn't find '%s' in the dataset.\nExample foods I do know: %s",
			r.Query, strings.Join(r.Examples, ", "))
	case OutcomeIsolated:
		return fmt.Sprintf("I found '%s' in cluster %d, but there are no alternative items in that cluster.",
			r.Query, r.Cluster)
	case OutcomeSwap:
		return fmt.Sprintf("Original food: %s (cluster %d)\nNutrition: %s\n\n"+
			"Suggested swap: %s (same cluster)\nNutrition: %s\n\n"+
			"Use this suggestion as a starting point. You can refine it based on the patient's "+
			"specific goals and preferences.",
			r.Original.FoodItem, r.Cluster, DescribeMacros(r.OriginalMacros),
			r.Swap.FoodItem, DescribeMacros(r.SwapMacros))
	default:
		return ""
	}
}

// SuggestionText renders the close-name hint of a not-found result, or "" when there is none
func (r *SwapResult) SuggestionText() string {
	return DidYouMean(r.Suggestions)
}

// DidYouMean renders "Did you mean: a, b?" or "" for no names
func DidYouMean(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "Did you mean: " + strings.Join(names, ", ") + "?"
}

// DescribeMacros joins macros as "a=1, b=2" or returns NoMacrosText when empty
func DescribeMacros(macros []Macro) string {
	if len(macros) == 0 {
		return NoMacrosText
	}
	parts := make([]string, len(macros))
	for i, m := range macros {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}

// FormatValue renders a nutrient value in its shortest exact form; empty cells render as nan
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
