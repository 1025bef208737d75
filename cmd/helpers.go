package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/yieldpilot/underwrite-cli/internal/model"
)

// addAssumptionFlags registers the shared underwriting assumption flags.
// Flags left at zero are filled from the listing's regional defaults.
func addAssumptionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("deposit-pct", 0, "deposit as % of price (0=regional default)")
	f.Float64("rate-pct", 0, "mortgage APR % (0=regional default)")
	f.Int("term-years", 0, "mortgage term in years (0=regional default)")
	f.Bool("interest-only", false, "interest-only mortgage")
	f.Float64("voids-pct", 0, "void allowance as % of rent (0=regional default)")
	f.Float64("maintenance-pct", 0, "maintenance as % of rent (0=regional default)")
	f.Float64("management-pct", 0, "management fee as % of rent (0=regional default)")
	f.Float64("insurance-per-year", 0, "annual insurance cost (0=regional default)")
}

func assumptionsFromFlags(cmd *cobra.Command) model.Assumptions {
	f := cmd.Flags()
	a := model.Assumptions{}
	a.DepositPct, _ = f.GetFloat64("deposit-pct")
	a.InterestRatePct, _ = f.GetFloat64("rate-pct")
	a.TermYears, _ = f.GetInt("term-years")
	a.InterestOnly, _ = f.GetBool("interest-only")
	a.VoidsPct, _ = f.GetFloat64("voids-pct")
	a.MaintenancePct, _ = f.GetFloat64("maintenance-pct")
	a.ManagementPct, _ = f.GetFloat64("management-pct")
	a.InsurancePerYear, _ = f.GetFloat64("insurance-per-year")
	return a
}

func loadJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "read %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return eris.Wrapf(err, "parse %s", path)
	}
	return nil
}

func loadListing(path string) (model.Listing, error) {
	var l model.Listing
	if err := loadJSONFile(path, &l); err != nil {
		return model.Listing{}, err
	}
	return l, nil
}

func loadListings(path string) ([]model.Listing, error) {
	var ls []model.Listing
	if err := loadJSONFile(path, &ls); err != nil {
		return nil, err
	}
	return ls, nil
}

func loadDeals(path string) ([]model.Deal, error) {
	var ds []model.Deal
	if err := loadJSONFile(path, &ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func loadEnrichment(path string) (model.Enrichment, error) {
	var e model.Enrichment
	if path == "" {
		return e, nil
	}
	if err := loadJSONFile(path, &e); err != nil {
		return model.Enrichment{}, err
	}
	return e, nil
}

// outputWriter returns the destination for command output, stdout when no
// path is given.
func outputWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create %s", path)
	}
	return f, func() { f.Close() }, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode json")
}

func printKPIs(w io.Writer, k *model.KPISet) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Gross yield\t%.2f%%\n", k.GrossYieldPct)
	fmt.Fprintf(tw, "Net yield\t%.2f%%\n", k.NetYieldPct)
	fmt.Fprintf(tw, "Monthly cashflow\t%.2f\n", k.MonthlyCashflow)
	fmt.Fprintf(tw, "Annual cashflow\t%.2f\n", k.AnnualCashflow)
	fmt.Fprintf(tw, "ROI\t%.2f%%\n", k.ROIPct)
	if k.DSCR != nil {
		fmt.Fprintf(tw, "DSCR\t%.2f\n", *k.DSCR)
	} else {
		fmt.Fprintf(tw, "DSCR\tn/a (no debt service)\n")
	}
	fmt.Fprintf(tw, "Deposit\t%.2f\n", k.Deposit)
	fmt.Fprintf(tw, "Loan\t%.2f\n", k.LoanAmount)
	fmt.Fprintf(tw, "Monthly mortgage\t%.2f\n", k.MonthlyMortgage)
	fmt.Fprintf(tw, "Total monthly costs\t%.2f\n", k.TotalMonthlyCosts)
	tw.Flush()
}

func printWorkings(w io.Writer, k *model.KPISet) {
	metrics := make([]string, 0, len(k.Workings))
	for m := range k.Workings {
		metrics = append(metrics, m)
	}
	sort.Strings(metrics)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, m := range metrics {
		fmt.Fprintf(tw, "%s\t%s\n", m, k.Workings[m])
	}
	tw.Flush()
}

func printScore(w io.Writer, s *model.ScoreResult) {
	fmt.Fprintf(w, "Score: %.2f (band %s, confidence %s)\n", s.Score, s.Band, s.Confidence)
	if len(s.Drivers) > 0 {
		fmt.Fprintln(w, "Drivers:")
		for _, d := range s.Drivers {
			fmt.Fprintf(w, "  + %s\n", d)
		}
	}
	if len(s.Risks) > 0 {
		fmt.Fprintln(w, "Risks:")
		for _, r := range s.Risks {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
}

func printCompliance(w io.Writer, r *model.ComplianceReport) {
	fmt.Fprintf(w, "Compliance: %s (%d critical, %d high)\n", r.Overall, r.CriticalCount, r.HighCount)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range r.Checks {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", c.Type, c.Status, c.Severity, c.Message)
	}
	tw.Flush()
}
