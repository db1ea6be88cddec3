package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MarieAhluwalia/nutrimap/config"
	"github.com/MarieAhluwalia/nutrimap/internal/domain"
	"github.com/MarieAhluwalia/nutrimap/internal/infrastructure/foodtable"
	"github.com/MarieAhluwalia/nutrimap/internal/usecase"
)

type swapOptions struct {
	data   string
	source string
	table  string
	limit  int
}

func newSwapCmd() *cobra.Command {
	opts := &swapOptions{}

	cmd := &cobra.Command{
		Use:   "swap [food]",
		Short: "Suggest a lower-energy swap from the same cluster",
		Long: "Looks the food up in the clustered table and suggests the alternative from the\n" +
			"same cluster with the lowest energy, then sugar. Without a food argument it\n" +
			"reads one food name per line from stdin.",
		Example: "  nutrimap swap chorizo --data foods.csv\n" +
			"  nutrimap swap \"whole milk\" --source sqlite --data foods.db --table foods",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(cmd.Context(), opts)
			if err != nil {
				return err
			}
			swapOpts := usecase.SwapOptions{ExampleLimit: opts.limit}
			out := cmd.OutOrStdout()

			if len(args) > 0 {
				return printSwap(out, table, strings.Join(args, " "), swapOpts)
			}
			return swapLoop(cmd.InOrStdin(), out, table, swapOpts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.data, "data", "", "path to the clustered food table (default from NUTRIMAP_DATA_PATH or FOODS_CSV_PATH)")
	f.StringVar(&opts.source, "source", "", "table source: csv or sqlite (default from config)")
	f.StringVar(&opts.table, "table", "", "sqlite table name (default from config)")
	f.IntVar(&opts.limit, "limit", 0, "example names listed when a food is not found (default 20)")
	return cmd
}

// loadTable fills unset flags from configuration and loads the table
func loadTable(ctx context.Context, opts *swapOptions) (*domain.FoodTable, error) {
	if opts.data == "" || opts.source == "" || opts.table == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if opts.data == "" {
			opts.data = cfg.Data.Path
		}
		if opts.source == "" {
			opts.source = cfg.Data.Source
		}
		if opts.table == "" {
			opts.table = cfg.Data.Table
		}
		if opts.limit <= 0 {
			opts.limit = cfg.Swap.ExampleLimit
		}
	}

	loader, err := foodtable.NewLoader(opts.source, opts.data, opts.table)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return loader.Load(ctx)
}

func printSwap(out io.Writer, table *domain.FoodTable, food string, opts usecase.SwapOptions) error {
	result, err := usecase.SuggestSwap(table, food, opts)
	if err != nil {
		return err
	}
	if result.Outcome == domain.OutcomeNotFound {
		warnColor.Fprintln(out, result.Message())
		names := usecase.NewNameMatcher(usecase.MatchConfig{}).Closest(table, food, usecase.DefaultSuggestionLimit)
		if hint := domain.DidYouMean(names); hint != "" {
			fmt.Fprintln(out, hint)
		}
		return nil
	}
	fmt.Fprintln(out, result.Message())
	return nil
}

// swapLoop answers one food name per input line until EOF
func swapLoop(in io.Reader, out io.Writer, table *domain.FoodTable, opts usecase.SwapOptions) error {
	headingColor.Fprintln(out, "NutriMap swap lookup")
	fmt.Fprintln(out, "Enter a food name from the dataset, e.g. 'chorizo'. Ctrl+D to exit.")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Food: ")
		if !scanner.Scan() {
			break
		}
		food := strings.TrimSpace(scanner.Text())
		if food == "" {
			continue
		}

		headingColor.Fprintln(out, "\n--- Suggestion ---")
		if err := printSwap(out, table, food, opts); err != nil {
			return err
		}
		headingColor.Fprintln(out, "------------------")
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
