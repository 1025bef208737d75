package export

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/yieldpilot/underwrite-cli/internal/model"
)

// WriteRunsXLSX writes a workbook with a Runs sheet and an Assumptions
// sheet keyed by assumptions hash, so reviewers can see exactly which
// input set produced each row.
func WriteRunsXLSX(path string, runs []model.UnderwriteRun) error {
	f := xlsx.NewFile()

	if err := addRunsSheet(f, runs); err != nil {
		return err
	}
	if err := addAssumptionsSheet(f, runs); err != nil {
		return err
	}

	return eris.Wrapf(f.Save(path), "export: save workbook %s", path)
}

func addRunsSheet(f *xlsx.File, runs []model.UnderwriteRun) error {
	sheet, err := f.AddSheet("Runs")
	if err != nil {
		return eris.Wrap(err, "export: add runs sheet")
	}

	header := sheet.AddRow()
	for _, h := range runHeader {
		header.AddCell().SetString(h)
	}

	for _, r := range runs {
		row := sheet.AddRow()
		row.AddCell().SetString(r.ID)
		row.AddCell().SetString(r.Listing.ID)
		row.AddCell().SetString(r.Listing.Region)
		row.AddCell().SetFloatWithFormat(r.Listing.Price, "0.00")
		row.AddCell().SetFloatWithFormat(r.MonthlyRent, "0.00")
		if r.KPIs != nil {
			row.AddCell().SetFloatWithFormat(r.KPIs.GrossYieldPct, "0.00")
			row.AddCell().SetFloatWithFormat(r.KPIs.NetYieldPct, "0.00")
			row.AddCell().SetFloatWithFormat(r.KPIs.MonthlyCashflow, "0.00")
			row.AddCell().SetFloatWithFormat(r.KPIs.ROIPct, "0.00")
			if r.KPIs.DSCR != nil {
				row.AddCell().SetFloatWithFormat(*r.KPIs.DSCR, "0.00")
			} else {
				row.AddCell().SetString("n/a")
			}
		} else {
			for i := 0; i < 5; i++ {
				row.AddCell()
			}
		}
		if r.Score != nil {
			row.AddCell().SetFloatWithFormat(r.Score.Score, "0.00")
			row.AddCell().SetString(string(r.Score.Band))
		} else {
			row.AddCell()
			row.AddCell()
		}
		row.AddCell().SetString(r.AssumptionsHash)
		row.AddCell().SetString(r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"))
	}
	return nil
}

func addAssumptionsSheet(f *xlsx.File, runs []model.UnderwriteRun) error {
	sheet, err := f.AddSheet("Assumptions")
	if err != nil {
		return eris.Wrap(err, "export: add assumptions sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{
		"assumptions_hash", "deposit_pct", "interest_rate_pct", "term_years",
		"interest_only", "voids_pct", "maintenance_pct", "management_pct",
		"insurance_per_year",
	} {
		header.AddCell().SetString(h)
	}

	distinct := map[string]model.Assumptions{}
	for _, r := range runs {
		distinct[r.AssumptionsHash] = r.Assumptions
	}
	hashes := make([]string, 0, len(distinct))
	for h := range distinct {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)

	for _, h := range hashes {
		a := distinct[h]
		row := sheet.AddRow()
		row.AddCell().SetString(h)
		row.AddCell().SetFloatWithFormat(a.DepositPct, "0.00")
		row.AddCell().SetFloatWithFormat(a.InterestRatePct, "0.00")
		row.AddCell().SetInt(a.TermYears)
		row.AddCell().SetBool(a.InterestOnly)
		row.AddCell().SetFloatWithFormat(a.VoidsPct, "0.00")
		row.AddCell().SetFloatWithFormat(a.MaintenancePct, "0.00")
		row.AddCell().SetFloatWithFormat(a.ManagementPct, "0.00")
		row.AddCell().SetFloatWithFormat(a.InsurancePerYear, "0.00")
	}
	return nil
}
