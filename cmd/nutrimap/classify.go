package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MarieAhluwalia/nutrimap/internal/domain"
	"github.com/MarieAhluwalia/nutrimap/internal/usecase"
)

type classifyOptions struct {
	rec domain.NutrientRecord
}

func newClassifyCmd() *cobra.Command {
	opts := &classifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Assign a food group to a per-100g nutrient profile",
		Example: "  nutrimap classify --kcal 52 --protein 0.3 --carbs 14 --fiber 2.4 --fat 0.2\n" +
			"  nutrimap classify --kcal 403 --protein 25 --carbs 3.1 --fat 33 --satfat 19",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := usecase.Classify(opts.rec)
			out := cmd.OutOrStdout()

			labelColor.Fprintln(out, result.Category)
			fmt.Fprintf(out, "rule:    %s\n", result.Rule)
			fmt.Fprintf(out, "shares:  protein=%.2f carbs=%.2f fat=%.2f\n",
				result.ProteinShare, result.CarbShare, result.FatShare)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.rec.EnergyKcal, "kcal", 0, "energy (kcal)")
	f.Float64Var(&opts.rec.ProteinG, "protein", 0, "protein (g)")
	f.Float64Var(&opts.rec.CarbsG, "carbs", 0, "carbohydrates (g)")
	f.Float64Var(&opts.rec.FiberG, "fiber", 0, "fiber (g)")
	f.Float64Var(&opts.rec.FatG, "fat", 0, "total fat (g)")
	f.Float64Var(&opts.rec.SatFatG, "satfat", 0, "saturated fat (g)")
	return cmd
}
