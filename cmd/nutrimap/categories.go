package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MarieAhluwalia/nutrimap/internal/domain"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List food group labels in rule priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			headingColor.Fprintln(out, "Food groups (priority order)")
			for i, c := range domain.AllCategories() {
				fmt.Fprintf(out, "%2d. %s\n", i+1, c)
			}
			return nil
		},
	}
}
