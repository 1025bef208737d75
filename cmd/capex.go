package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/yieldpilot/underwrite-cli/internal/capex"
	"github.com/yieldpilot/underwrite-cli/internal/kpi"
	"github.com/yieldpilot/underwrite-cli/internal/model"
	"github.com/yieldpilot/underwrite-cli/internal/regional"
)

var capexCmd = &cobra.Command{
	Use:   "capex",
	Short: "Apply a capital-expenditure plan to a deal",
	Long: `Computes baseline KPIs for a listing, then applies a renovation plan:
upfront totals with contingency, annual reserves for recurring items, the
adjusted KPI set on the enlarged investment basis, and the payback period
where the adjusted cashflow supports one.

Example:
  capex --price 300000 --rent 1500 --plan refurb.json`,
	RunE: runCapEx,
}

func init() {
	f := capexCmd.Flags()
	f.String("plan", "", "path to a CapEx plan JSON file (required)")
	f.Float64("price", 0, "asking price (required)")
	f.Float64("rent", 0, "expected monthly rent (required)")
	f.String("region", "GB", "ISO country code for regional defaults")
	f.String("format", "table", "output format: table or json")
	addAssumptionFlags(capexCmd)

	rootCmd.AddCommand(capexCmd)
}

func runCapEx(cmd *cobra.Command, _ []string) error {
	planPath, _ := cmd.Flags().GetString("plan")
	if planPath == "" {
		return eris.New("capex: --plan is required")
	}
	var plan model.CapExPlan
	if err := loadJSONFile(planPath, &plan); err != nil {
		return err
	}

	price, _ := cmd.Flags().GetFloat64("price")
	rent, _ := cmd.Flags().GetFloat64("rent")
	region, _ := cmd.Flags().GetString("region")
	assumptions := regional.Merge(assumptionsFromFlags(cmd), region)

	baseline, err := kpi.Compute(price, rent, assumptions)
	if err != nil {
		return err
	}
	impact, adjusted, err := capex.Apply(plan, baseline, price)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		return printJSON(os.Stdout, map[string]any{
			"impact":   impact,
			"baseline": baseline,
			"adjusted": adjusted,
		})
	}

	fmt.Printf("CapEx: %.2f upfront, %.2f with contingency, %.2f/year reserve\n",
		impact.TotalUpfront, impact.TotalWithContingency, impact.AnnualReserve)
	cats := make([]string, 0, len(impact.ByCategory))
	for cat := range impact.ByCategory {
		cats = append(cats, string(cat))
	}
	sort.Strings(cats)
	for _, cat := range cats {
		fmt.Printf("  %s: %.2f\n", cat, impact.ByCategory[model.CapExCategory(cat)])
	}
	if impact.PaybackYears != nil {
		fmt.Printf("Payback: %.1f years\n", *impact.PaybackYears)
	} else {
		fmt.Println("Payback: n/a (adjusted cashflow not positive)")
	}

	fmt.Println("\nBaseline:")
	printKPIs(os.Stdout, baseline)
	fmt.Println("\nAfter CapEx:")
	printKPIs(os.Stdout, adjusted)
	return nil
}
