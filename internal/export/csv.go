// Package export renders underwrite runs to CSV and XLSX for
// spreadsheet-based review. Every export embeds the assumptions hash so
// figures can be traced back to the exact inputs that produced them.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/yieldpilot/underwrite-cli/internal/model"
)

var runHeader = []string{
	"run_id", "listing_id", "region", "price", "monthly_rent",
	"gross_yield_pct", "net_yield_pct", "monthly_cashflow", "roi_pct", "dscr",
	"score", "band", "assumptions_hash", "created_at",
}

// WriteRunsCSV writes one row per underwrite run.
func WriteRunsCSV(w io.Writer, runs []model.UnderwriteRun) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(runHeader); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, r := range runs {
		if err := cw.Write(runRow(r)); err != nil {
			return eris.Wrapf(err, "export: write csv row %s", r.ID)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

func runRow(r model.UnderwriteRun) []string {
	row := []string{
		r.ID,
		r.Listing.ID,
		r.Listing.Region,
		formatFloat(r.Listing.Price),
		formatFloat(r.MonthlyRent),
	}
	if r.KPIs != nil {
		row = append(row,
			formatFloat(r.KPIs.GrossYieldPct),
			formatFloat(r.KPIs.NetYieldPct),
			formatFloat(r.KPIs.MonthlyCashflow),
			formatFloat(r.KPIs.ROIPct),
			formatDSCR(r.KPIs.DSCR),
		)
	} else {
		row = append(row, "", "", "", "", "")
	}
	if r.Score != nil {
		row = append(row, formatFloat(r.Score.Score), string(r.Score.Band))
	} else {
		row = append(row, "", "")
	}
	return append(row, r.AssumptionsHash, r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatDSCR(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// FormatMoney renders an amount with locale-aware digit grouping, e.g.
// "GBP 1,250,000.00". Exports use it for display columns only; numeric
// columns stay machine-readable.
func FormatMoney(amount float64, currency string) string {
	p := message.NewPrinter(language.English)
	formatted := p.Sprintf("%v", number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	if currency == "" {
		return formatted
	}
	return fmt.Sprintf("%s %s", currency, formatted)
}
