package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	foodex2 "github.com/openfoodex/foodex2validator"
)

var (
	dsnFlag              string
	ruleSetsFlag         string
	highNonBlockingFlag  bool
	batchConcurrencyFlag int
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "foodex2validate",
		Short: "Validate EFSA FoodEx2 food-classification expressions",
	}
	root.PersistentFlags().StringVar(&dsnFlag, "dsn", "foodex2.db", "path to the catalogue SQLite database")
	root.PersistentFlags().StringVar(&ruleSetsFlag, "rule-sets", "", "optional YAML file with catalogue-driven rule literal sets")
	root.PersistentFlags().BoolVar(&highNonBlockingFlag, "high-non-blocking", false, "treat HIGH severity warnings as non-blocking")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newHierarchyPathCmd())
	return root
}

func loadEngine() (*foodex2.Engine, error) {
	var opts []foodex2.LoadOption
	if highNonBlockingFlag {
		opts = append(opts, foodex2.WithHighNonBlocking())
	}
	if ruleSetsFlag != "" {
		return foodex2.LoadWithRuleSets(dsnFlag, ruleSetsFlag, opts...)
	}
	return foodex2.Load(dsnFlag, opts...)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <expression>",
		Short: "Validate a single FoodEx2 expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine()
			if err != nil {
				return fmt.Errorf("loading catalogue: %w", err)
			}
			result, err := engine.Validate(args[0])
			if err != nil {
				return fmt.Errorf("validating expression: %w", err)
			}
			if err := printJSON(result); err != nil {
				return err
			}
			if !result.Valid {
				os.Exit(1)
			}
			return nil
		},
	}
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <expression> [expression...]",
		Short: "Validate several FoodEx2 expressions concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine()
			if err != nil {
				return fmt.Errorf("loading catalogue: %w", err)
			}
			results, err := engine.ValidateBatch(context.Background(), args, batchConcurrencyFlag)
			if err != nil {
				return fmt.Errorf("validating batch: %w", err)
			}
			if err := printJSON(results); err != nil {
				return err
			}
			for _, r := range results {
				if !r.Valid {
					os.Exit(1)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&batchConcurrencyFlag, "concurrency", 0, "maximum concurrent validations (0 uses the engine default)")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the loaded catalogue for terms by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine()
			if err != nil {
				return fmt.Errorf("loading catalogue: %w", err)
			}
			return printJSON(engine.SearchTerms(args[0], limit))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")
	return cmd
}

func newHierarchyPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hierarchy-path <hierarchy> <code>",
		Short: "Print the breadcrumb from a term up to the root of a hierarchy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine()
			if err != nil {
				return fmt.Errorf("loading catalogue: %w", err)
			}
			path, err := engine.HierarchyPath(args[1], args[0])
			if err != nil {
				return fmt.Errorf("resolving hierarchy path: %w", err)
			}
			return printJSON(path)
		},
	}
}
