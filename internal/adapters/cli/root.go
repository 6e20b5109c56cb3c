package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	referencePath string
	dbPath        string
	maxLocations  int
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lngopt",
		Short: "LNG supply chain optimiser",
		Long: `lngopt evaluates every vessel and milk-run route for an LNG supply scenario
and ranks the feasible candidates by levelised cost (USD/MMBTU).

Examples:
  lngopt optimize --scenario scenario.yaml --reference data/seeds/reference.json
  lngopt optimize --scenario scenario.yaml --reference reference.yaml --twin
  lngopt optimize --scenario scenario.yaml --reference reference.yaml --db runs.db
  lngopt key --scenario scenario.yaml`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&referencePath, "reference", "data/seeds/reference.json",
		"Reference dataset (vessels, routes, oru) as JSON or YAML")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"SQLite file for the run cache (in-memory when empty)")
	rootCmd.PersistentFlags().IntVar(&maxLocations, "max-locations", 0,
		"Maximum locations per scenario (engine default when 0)")

	rootCmd.AddCommand(NewOptimizeCommand())
	rootCmd.AddCommand(NewKeyCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
