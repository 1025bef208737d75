package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yieldpilot/underwrite-cli/internal/compliance"
)

var complianceCmd = &cobra.Command{
	Use:   "compliance",
	Short: "Run the regulatory checks for a listing",
	Long: `Evaluates a listing against rental regulations (EPC minimum standard,
HMO licensing, flood insurability) without computing KPIs or a score.
Useful for a quick go/no-go before a full underwriting pass.

Examples:
  # Check a listing file
  compliance --listing flat.json

  # Inline listing with enrichment data
  compliance --price 300000 --region GB --epc E --enrichment enrich.json`,
	RunE: runCompliance,
}

func init() {
	f := complianceCmd.Flags()
	f.String("listing", "", "path to a listing JSON file")
	f.String("id", "", "listing ID (inline mode)")
	f.Float64("price", 0, "asking price (inline mode)")
	f.String("region", "GB", "ISO country code (inline mode)")
	f.Int("bedrooms", 0, "bedroom count (inline mode)")
	f.String("property-type", "other", "property type (inline mode)")
	f.String("epc", "", "EPC band A-G (inline mode)")
	f.String("enrichment", "", "path to an enrichment JSON file")
	f.String("format", "table", "output format: table or json")

	rootCmd.AddCommand(complianceCmd)
}

func runCompliance(cmd *cobra.Command, _ []string) error {
	listing, err := listingFromFlags(cmd)
	if err != nil {
		return err
	}

	enrichPath, _ := cmd.Flags().GetString("enrichment")
	enrichment, err := loadEnrichment(enrichPath)
	if err != nil {
		return err
	}

	report := compliance.Check(listing, enrichment)

	if format, _ := cmd.Flags().GetString("format"); format == "json" {
		return printJSON(os.Stdout, report)
	}

	printCompliance(os.Stdout, report)
	for _, c := range report.Checks {
		if c.RequiredAction != "" {
			fmt.Printf("  action (%s): %s\n", c.Type, c.RequiredAction)
		}
	}
	return nil
}
