package kpi

import (
	"fmt"

	"github.com/yieldpilot/underwrite-cli/internal/model"
)

// working pairs a metric with the formula template and literal operands
// that derive it. Keeping these declarative (rather than interleaving
// string building with the arithmetic) lets the numeric contract be
// tested independently of its explanations.
type working struct {
	metric   string
	template string
	args     []any
}

func buildWorkings(price, rent float64, a model.Assumptions, k *model.KPISet, annualInterest float64) map[string]string {
	mortgageTpl := "annuity(%.2f @ %.2f%% APR over %dy) = %.2f/mo"
	mortgageArgs := []any{k.LoanAmount, a.InterestRatePct, a.TermYears, k.MonthlyMortgage}
	if a.InterestOnly {
		mortgageTpl = "%.2f × %.2f%% / 12 = %.2f/mo (interest only)"
		mortgageArgs = []any{k.LoanAmount, a.InterestRatePct, k.MonthlyMortgage}
	}

	ws := []working{
		{"deposit", "%.2f × %.2f%% = %.2f", []any{price, a.DepositPct, k.Deposit}},
		{"loan_amount", "%.2f − %.2f = %.2f", []any{price, k.Deposit, k.LoanAmount}},
		{"monthly_mortgage", mortgageTpl, mortgageArgs},
		{"monthly_voids", "%.2f × %.2f%% = %.2f", []any{rent, a.VoidsPct, k.MonthlyVoids}},
		{"monthly_maintenance", "%.2f × %.2f%% = %.2f", []any{rent, a.MaintenancePct, k.MonthlyMaintenance}},
		{"monthly_management", "%.2f × %.2f%% = %.2f", []any{rent, a.ManagementPct, k.MonthlyManagement}},
		{"monthly_insurance", "%.2f / 12 = %.2f", []any{a.InsurancePerYear, k.MonthlyInsurance}},
		{"operating_costs", "%.2f + %.2f + %.2f + %.2f = %.2f", []any{k.MonthlyVoids, k.MonthlyMaintenance, k.MonthlyManagement, k.MonthlyInsurance, k.OperatingCosts}},
		{"annual_rent", "%.2f × 12 = %.2f", []any{rent, k.AnnualRent}},
		{"gross_yield_pct", "%.2f / %.2f × 100 = %.2f%%", []any{k.AnnualRent, price, k.GrossYieldPct}},
		{"net_yield_pct", "(%.2f − %.2f − %.2f) / %.2f × 100 = %.2f%%", []any{k.AnnualRent, k.OperatingCosts * monthsPerYear, annualInterest, price, k.NetYieldPct}},
		{"monthly_cashflow", "%.2f − %.2f − %.2f = %.2f", []any{rent, k.MonthlyMortgage, k.OperatingCosts, k.MonthlyCashflow}},
		{"roi_pct", "%.2f / %.2f × 100 = %.2f%%", []any{k.AnnualCashflow, k.Deposit, k.ROIPct}},
	}

	if k.DSCR != nil {
		noi := k.AnnualRent - k.OperatingCosts*monthsPerYear
		ws = append(ws, working{"dscr", "%.2f / %.2f = %.2f", []any{noi, k.MonthlyMortgage * monthsPerYear, *k.DSCR}})
	} else {
		ws = append(ws, working{"dscr", "unavailable: zero debt service", nil})
	}

	out := make(map[string]string, len(ws))
	for _, w := range ws {
		out[w.metric] = fmt.Sprintf(w.template, w.args...)
	}
	return out
}
