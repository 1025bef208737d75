package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yieldpilot/underwrite-cli/internal/model"
	"github.com/yieldpilot/underwrite-cli/internal/underwrite"
)

var underwriteCmd = &cobra.Command{
	Use:   "underwrite",
	Short: "Run a full underwriting pass on one listing",
	Long: `Computes the complete KPI set, compliance checks and deal score for a
single listing under a set of financing and operating assumptions.
Assumption flags left at zero are filled from regional defaults.

Examples:
  # Underwrite a listing file with GB defaults
  underwrite --listing flat.json --rent 1500

  # Inline listing, interest-only at 60% LTV
  underwrite --price 300000 --rent 1500 --region GB --deposit-pct 40 --interest-only

  # Include enrichment data and persist the run
  underwrite --listing flat.json --rent 1500 --enrichment enrich.json --save`,
	RunE: runUnderwrite,
}

func init() {
	f := underwriteCmd.Flags()
	f.String("listing", "", "path to a listing JSON file")
	f.String("id", "", "listing ID (inline mode)")
	f.Float64("price", 0, "asking price (inline mode)")
	f.Float64("rent", 0, "expected monthly rent (falls back to enrichment estimate)")
	f.String("region", "GB", "ISO country code for regional defaults")
	f.Int("bedrooms", 0, "bedroom count (inline mode)")
	f.String("property-type", string(model.PropertyTypeOther), "property type (inline mode)")
	f.String("epc", "", "EPC band A-G (inline mode)")
	f.String("enrichment", "", "path to an enrichment JSON file")
	f.Bool("save", false, "persist the run to the store")
	f.Bool("workings", false, "print the per-metric derivation strings")
	f.String("format", "table", "output format: table or json")
	addAssumptionFlags(underwriteCmd)

	rootCmd.AddCommand(underwriteCmd)
}

func runUnderwrite(cmd *cobra.Command, _ []string) error {
	listing, err := listingFromFlags(cmd)
	if err != nil {
		return err
	}

	rent, _ := cmd.Flags().GetFloat64("rent")
	enrichPath, _ := cmd.Flags().GetString("enrichment")
	enrichment, err := loadEnrichment(enrichPath)
	if err != nil {
		return err
	}

	res, err := underwrite.Run(underwrite.Request{
		Listing:     listing,
		MonthlyRent: rent,
		Assumptions: assumptionsFromFlags(cmd),
		Enrichment:  enrichment,
	}, cfg.Scoring.Deal)
	if err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		ctx := cmd.Context()
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}
		if err := st.SaveListing(ctx, res.Run.Listing); err != nil {
			return err
		}
		if err := st.SaveRun(ctx, res.Run); err != nil {
			return err
		}
		zap.L().Info("run saved", zap.String("run_id", res.Run.ID))
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		return printJSON(os.Stdout, res)
	}

	fmt.Printf("Listing %s: %.0f %s, rent %.0f/month\n\n",
		res.Run.Listing.ID, res.Run.Listing.Price, res.Run.Listing.Currency, res.Run.MonthlyRent)
	printKPIs(os.Stdout, res.Run.KPIs)
	fmt.Println()
	printScore(os.Stdout, res.Run.Score)
	fmt.Println()
	printCompliance(os.Stdout, res.Compliance)
	if workings, _ := cmd.Flags().GetBool("workings"); workings {
		fmt.Println()
		printWorkings(os.Stdout, res.Run.KPIs)
	}
	fmt.Printf("\nAssumptions hash: %s\n", res.Run.AssumptionsHash)
	return nil
}

func listingFromFlags(cmd *cobra.Command) (model.Listing, error) {
	f := cmd.Flags()
	if path, _ := f.GetString("listing"); path != "" {
		return loadListing(path)
	}

	price, _ := f.GetFloat64("price")
	if price <= 0 {
		return model.Listing{}, eris.New("either --listing or --price is required")
	}

	l := model.Listing{Price: price, Currency: "GBP"}
	l.ID, _ = f.GetString("id")
	l.Region, _ = f.GetString("region")
	l.Bedrooms, _ = f.GetInt("bedrooms")
	pt, _ := f.GetString("property-type")
	l.PropertyType = model.PropertyType(pt)
	if epc, _ := f.GetString("epc"); epc != "" {
		l.EPC = model.EPCBand(epc)
	}
	return l, nil
}
