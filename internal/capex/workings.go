package capex

import (
	"fmt"

	"github.com/yieldpilot/underwrite-cli/internal/model"
)

// adjustmentWorkings documents the capex-adjusted metrics alongside the
// base derivations they replace.
func adjustmentWorkings(base *model.KPISet, impact *model.CapExImpact, cashflow, totalInvestment float64) map[string]string {
	monthlyReserve := impact.AnnualReserve / monthsPerYear
	ws := map[string]string{
		"capex_total":      fmt.Sprintf("upfront %.2f + contingency = %.2f", impact.TotalUpfront, impact.TotalWithContingency),
		"capex_reserve":    fmt.Sprintf("recurring lines amortized = %.2f/yr (%.2f/mo)", impact.AnnualReserve, monthlyReserve),
		"total_investment": fmt.Sprintf("%.2f + %.2f = %.2f", base.TotalInvestment, impact.TotalWithContingency, totalInvestment),
		"monthly_cashflow": fmt.Sprintf("%.2f − %.2f = %.2f (reserve deducted)", base.MonthlyCashflow, monthlyReserve, cashflow),
	}
	if impact.PaybackYears != nil {
		ws["payback_years"] = fmt.Sprintf("%.2f / %.2f = %.2f", impact.TotalWithContingency, cashflow*monthsPerYear, *impact.PaybackYears)
	} else {
		ws["payback_years"] = "unavailable: adjusted cashflow is not positive"
	}
	return ws
}
