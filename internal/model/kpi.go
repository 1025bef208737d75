package model

import "math"

// KPISet is the full derived metric set for one (listing, assumptions)
// pair. It is recomputed fresh on every invocation and never persisted
// without the inputs that produced it.
type KPISet struct {
	// Financing.
	Deposit         float64 `json:"deposit"`
	LoanAmount      float64 `json:"loan_amount"`
	MonthlyMortgage float64 `json:"monthly_mortgage"`
	TotalInvestment float64 `json:"total_investment"` // cash in: deposit plus any applied capex

	// Income.
	MonthlyRent float64 `json:"monthly_rent"`
	AnnualRent  float64 `json:"annual_rent"`

	// Operating costs, monthly.
	MonthlyVoids       float64 `json:"monthly_voids"`
	MonthlyMaintenance float64 `json:"monthly_maintenance"`
	MonthlyManagement  float64 `json:"monthly_management"`
	MonthlyInsurance   float64 `json:"monthly_insurance"`
	OperatingCosts     float64 `json:"operating_costs"`     // sum of the four above
	TotalMonthlyCosts  float64 `json:"total_monthly_costs"` // operating + mortgage

	// Performance.
	GrossYieldPct   float64  `json:"gross_yield_pct"`
	NetYieldPct     float64  `json:"net_yield_pct"`
	MonthlyCashflow float64  `json:"monthly_cashflow"`
	AnnualCashflow  float64  `json:"annual_cashflow"`
	ROIPct          float64  `json:"roi_pct"`
	DSCR            *float64 `json:"dscr"` // nil when debt service is zero

	// Workings maps each metric name to the human-readable derivation that
	// produced it, built from the same literal operands as the arithmetic.
	Workings map[string]string `json:"workings,omitempty"`
}

// Round2 rounds to two decimal places, the display precision for all
// currency, percentage and ratio values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Ptr returns a pointer to v. Convenience for optional numeric fields.
func Ptr[T any](v T) *T { return &v }
