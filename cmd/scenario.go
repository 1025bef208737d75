package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/yieldpilot/underwrite-cli/internal/model"
	"github.com/yieldpilot/underwrite-cli/internal/scenario"
	"github.com/yieldpilot/underwrite-cli/internal/underwrite"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Stress-test a portfolio under market shocks",
	Long: `Re-underwrites every deal in a portfolio under named market scenarios
(rate shocks, rent crashes, value corrections) and reports the deltas
against the unstressed baseline, with risk flags for threshold breaches.

Without --scenarios, the built-in default pack is used: rate_shock,
rent_crash, value_correction and stagflation.

Examples:
  scenario --deals portfolio.json
  scenario --deals portfolio.json --scenarios shocks.yaml --format json`,
	RunE: runScenario,
}

func init() {
	f := scenarioCmd.Flags()
	f.String("deals", "", "path to a JSON array of deals (required)")
	f.String("scenarios", "", "path to a scenario YAML file (default: built-in pack)")
	f.String("format", "table", "output format: table or json")

	rootCmd.AddCommand(scenarioCmd)
}

func runScenario(cmd *cobra.Command, _ []string) error {
	dealsPath, _ := cmd.Flags().GetString("deals")
	if dealsPath == "" {
		return eris.New("scenario: --deals is required")
	}
	deals, err := loadDeals(dealsPath)
	if err != nil {
		return err
	}
	deals, err = underwrite.CompleteDeals(deals)
	if err != nil {
		return err
	}

	var defs []model.ScenarioDefinition
	if scenariosPath, _ := cmd.Flags().GetString("scenarios"); scenariosPath != "" {
		defs, err = scenario.LoadFile(scenariosPath)
		if err != nil {
			return err
		}
	}

	results, err := scenario.Run(cmd.Context(), deals, defs)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		return printJSON(os.Stdout, results)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tVALUE Δ\tCASHFLOW Δ/mo\tYIELD Δpp\tROI Δpp\tFLAGS")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%.0f\t%.2f\t%.2f\t%.2f\t%d\n",
			r.Scenario.Name, r.Delta.ValueChange, r.Delta.CashflowChange,
			r.Delta.YieldChangePP, r.Delta.ROIChangePP, len(r.Flags))
	}
	tw.Flush()

	for _, r := range results {
		for _, f := range r.Flags {
			fmt.Printf("[%s] %s: %s\n", f.Severity, r.Scenario.Name, f.Message)
		}
	}
	return nil
}
