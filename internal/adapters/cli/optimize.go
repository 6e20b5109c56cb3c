package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"lng-supply-optimizer/internal/adapters/cache"
	"lng-supply-optimizer/internal/adapters/reference"
	"lng-supply-optimizer/internal/adapters/repositories"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/platform/db"
	"lng-supply-optimizer/internal/ports"
	"lng-supply-optimizer/internal/services"
	"strings"

	"github.com/spf13/cobra"
)

// NewOptimizeCommand creates the optimize command
func NewOptimizeCommand() *cobra.Command {
	var (
		scenarioPath string
		twin         bool
		top          int
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Rank vessel and route candidates for a scenario",
		Long: `Evaluate every vessel against every closed tour of the scenario's locations
and print the feasible candidates ordered by total cost per MMBTU.
With --twin the demand is split between two vessels for each ratio.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := LoadScenario(scenarioPath, twin)
			if err != nil {
				return err
			}

			ref, err := reference.NewFileRepository(referencePath)
			if err != nil {
				return err
			}

			store, closeStore, err := openRunStore(dbPath)
			if err != nil {
				return err
			}
			defer closeStore()

			opt := &services.Optimizer{
				Reference:    ref,
				Store:        store,
				MaxLocations: maxLocations,
			}

			res, err := opt.Optimize(cmd.Context(), sc)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res.Record)
			}
			printResult(cmd.OutOrStdout(), res, top)
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML file (required)")
	cmd.Flags().BoolVar(&twin, "twin", false, "Use the twin-vessel model")
	cmd.Flags().IntVar(&top, "top", 10, "Number of ranked candidates to print")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full run record as JSON")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

// NewKeyCommand creates the key command
func NewKeyCommand() *cobra.Command {
	var (
		scenarioPath string
		twin         bool
		canonical    bool
	)

	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the run cache key of a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := LoadScenario(scenarioPath, twin)
			if err != nil {
				return err
			}

			if canonical {
				s, err := services.CanonicalScenario(sc)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}

			key, err := services.RunKey(sc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML file (required)")
	cmd.Flags().BoolVar(&twin, "twin", false, "Use the twin-vessel model")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "Print the canonical form instead of its hash")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func openRunStore(path string) (ports.RunStore, func(), error) {
	if path == "" {
		return cache.NewMemoryRunStore(), func() {}, nil
	}

	conn, err := db.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return cache.NewSQLRunStore(conn, db.SQLite), func() { conn.Close() }, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, res *services.OptimizeResult, top int) {
	rec := res.Record
	fmt.Fprintf(w, "Run key:  %s\n", res.Key)
	fmt.Fprintf(w, "Reused:   %t (reuse count %d)\n\n", res.Reused, rec.ReuseCount)

	if rec.IsTwin() {
		printTwin(w, rec.TwinResults, top)
		return
	}

	if len(rec.Results) == 0 {
		fmt.Fprintln(w, "No feasible candidates.")
		return
	}

	fmt.Fprintf(w, "%-4s %-20s %-40s %12s %12s %12s\n", "#", "VESSEL", "ROUTE", "CAPEX/MMBTU", "OPEX/MMBTU", "TOTAL/MMBTU")
	for i, c := range rec.Results {
		if top > 0 && i >= top {
			break
		}
		fmt.Fprintf(w, "%-4d %-20s %-40s %12.4f %12.4f %12.4f\n",
			i+1, c.Vessel, routeLabel(c.Route), c.CapexPerMMBTU, c.OpexPerMMBTU, c.TotalCostPerMMBTU)
	}
}

func printTwin(w io.Writer, res *domain.TwinResults, top int) {
	if res == nil || len(res.Total) == 0 {
		fmt.Fprintln(w, "No feasible twin deployments.")
		return
	}

	fmt.Fprintf(w, "%-4s %-6s %-20s %-20s %12s %12s %12s\n", "#", "RATIO", "VESSEL 1", "VESSEL 2", "CAPEX/MMBTU", "OPEX/MMBTU", "TOTAL/MMBTU")
	for i, c := range res.Total {
		if top > 0 && i >= top {
			break
		}
		fmt.Fprintf(w, "%-4d %-6s %-20s %-20s %12.4f %12.4f %12.4f\n",
			i+1, c.Ratio, c.Vessel1.Vessel, c.Vessel2.Vessel, c.CapexPerMMBTU, c.OpexPerMMBTU, c.TotalCostPerMMBTU)
	}
}

func routeLabel(r domain.Route) string {
	return strings.Join(r, " > ")
}
