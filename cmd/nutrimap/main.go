package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MarieAhluwalia/nutrimap/config"
)

const version = "1.0.0"

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
)

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "nutrimap",
		Short:        "Classify foods by nutrient profile and suggest same-cluster swaps",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			if noColor {
				color.NoColor = true
			}
			return nil
		},
	}

	root.PersistentFlags().Bool("no-color", false, "disable colored output")

	root.AddCommand(newClassifyCmd())
	root.AddCommand(newSwapCmd())
	root.AddCommand(newCategoriesCmd())
	return root
}

func main() {
	// A missing .env is fine; a malformed one is reported by the commands that need config
	_ = config.LoadEnvFile()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
