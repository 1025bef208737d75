package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/yieldpilot/underwrite-cli/internal/portfolio"
	"github.com/yieldpilot/underwrite-cli/internal/underwrite"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Aggregate a set of deals into portfolio-level metrics",
	Long: `Rolls a deal list up into portfolio totals: value, equity, debt,
cashflow, aggregate-basis yields and ROI, average DSCR, and best/worst
performers by net yield.

Example:
  portfolio --deals portfolio.json`,
	RunE: runPortfolio,
}

func init() {
	f := portfolioCmd.Flags()
	f.String("deals", "", "path to a JSON array of deals (required)")
	f.String("format", "table", "output format: table or json")

	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolio(cmd *cobra.Command, _ []string) error {
	dealsPath, _ := cmd.Flags().GetString("deals")
	if dealsPath == "" {
		return eris.New("portfolio: --deals is required")
	}
	deals, err := loadDeals(dealsPath)
	if err != nil {
		return err
	}
	deals, err = underwrite.CompleteDeals(deals)
	if err != nil {
		return err
	}

	summary, err := portfolio.Aggregate(deals)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		return printJSON(os.Stdout, summary)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Properties\t%d\n", summary.PropertyCount)
	fmt.Fprintf(tw, "Total value\t%.2f\n", summary.TotalValue)
	fmt.Fprintf(tw, "Total equity\t%.2f\n", summary.TotalEquity)
	fmt.Fprintf(tw, "Total debt\t%.2f\n", summary.TotalDebt)
	fmt.Fprintf(tw, "Average LTV\t%.2f%%\n", summary.AvgLTVPct)
	fmt.Fprintf(tw, "Monthly income\t%.2f\n", summary.MonthlyIncome)
	fmt.Fprintf(tw, "Monthly expenses\t%.2f\n", summary.MonthlyExpenses)
	fmt.Fprintf(tw, "Net monthly cashflow\t%.2f\n", summary.NetMonthlyCashflow)
	fmt.Fprintf(tw, "Portfolio yield\t%.2f%%\n", summary.PortfolioYieldPct)
	fmt.Fprintf(tw, "Portfolio ROI\t%.2f%%\n", summary.PortfolioROIPct)
	if summary.AvgDSCR != nil {
		fmt.Fprintf(tw, "Average DSCR\t%.2f\n", *summary.AvgDSCR)
	}
	fmt.Fprintf(tw, "Negative cashflow deals\t%d\n", summary.NegativeCashflowCount)
	fmt.Fprintf(tw, "Low DSCR deals\t%d\n", summary.LowDSCRCount)
	if summary.BestPerformer != nil {
		fmt.Fprintf(tw, "Best performer\t%s\n", *summary.BestPerformer)
	}
	if summary.WorstPerformer != nil {
		fmt.Fprintf(tw, "Worst performer\t%s\n", *summary.WorstPerformer)
	}
	return tw.Flush()
}
