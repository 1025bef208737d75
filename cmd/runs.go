package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/yieldpilot/underwrite-cli/internal/export"
	"github.com/yieldpilot/underwrite-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect underwriting run history",
	Long:  "Commands for listing, viewing and exporting persisted underwrite runs.",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List underwrite runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		runs, err := st.ListRuns(ctx, runFilterFromFlags(cmd))
		if err != nil {
			return eris.Wrap(err, "runs list")
		}
		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN\tLISTING\tRENT\tNET YIELD\tSCORE\tBAND\tCREATED")
		for _, r := range runs {
			netYield, score, band := "", "", ""
			if r.KPIs != nil {
				netYield = fmt.Sprintf("%.2f%%", r.KPIs.NetYieldPct)
			}
			if r.Score != nil {
				score = fmt.Sprintf("%.2f", r.Score.Score)
				band = string(r.Score.Band)
			}
			fmt.Fprintf(tw, "%s\t%s\t%.0f\t%s\t%s\t%s\t%s\n",
				shortID(r.ID), r.Listing.ID, r.MonthlyRent, netYield, score, band,
				r.CreatedAt.UTC().Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show full details of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrapf(err, "runs show %s", args[0])
		}
		return printJSON(os.Stdout, run)
	},
}

// -- runs export --

var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export runs to CSV or XLSX",
	Long: `Writes matching runs to a spreadsheet. The assumptions hash is embedded
in every row; the XLSX workbook carries a second sheet resolving each
hash to its full assumption set.

Examples:
  runs export --output runs.csv
  runs export --listing-id lst-1 --output runs.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			return eris.New("runs export: --output is required")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		runs, err := st.ListRuns(ctx, runFilterFromFlags(cmd))
		if err != nil {
			return eris.Wrap(err, "runs export")
		}
		if len(runs) == 0 {
			return eris.New("runs export: no matching runs")
		}

		switch {
		case strings.HasSuffix(output, ".xlsx"):
			err = export.WriteRunsXLSX(output, runs)
		case strings.HasSuffix(output, ".csv"):
			f, createErr := os.Create(output)
			if createErr != nil {
				return eris.Wrapf(createErr, "runs export: create %s", output)
			}
			defer f.Close() //nolint:errcheck
			err = export.WriteRunsCSV(f, runs)
		default:
			return eris.Errorf("runs export: unsupported extension on %s (use .csv or .xlsx)", output)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d runs to %s\n", len(runs), output)
		return nil
	},
}

func runFilterFromFlags(cmd *cobra.Command) store.RunFilter {
	f := cmd.Flags()
	filter := store.RunFilter{}
	filter.ListingID, _ = f.GetString("listing-id")
	filter.AssumptionsHash, _ = f.GetString("assumptions-hash")
	filter.Limit, _ = f.GetInt("limit")
	return filter
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	for _, c := range []*cobra.Command{runsListCmd, runsExportCmd} {
		f := c.Flags()
		f.String("listing-id", "", "filter by listing ID")
		f.String("assumptions-hash", "", "filter by assumptions content hash")
		f.Int("limit", 50, "maximum number of runs")
	}
	runsExportCmd.Flags().String("output", "", "output file path, .csv or .xlsx (required)")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsExportCmd)
	rootCmd.AddCommand(runsCmd)
}

