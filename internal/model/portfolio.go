package model

// PortfolioSummary aggregates a set of underwritten deals. Ratio metrics
// are computed from aggregate numerators over aggregate denominators, not
// averaged per-deal, except the explicitly-named averages.
type PortfolioSummary struct {
	PropertyCount int `json:"property_count"`

	TotalValue  float64 `json:"total_value"`
	TotalEquity float64 `json:"total_equity"`
	TotalDebt   float64 `json:"total_debt"`
	AvgLTVPct   float64 `json:"avg_ltv_pct"`

	MonthlyIncome      float64 `json:"monthly_income"`
	MonthlyExpenses    float64 `json:"monthly_expenses"` // operating + debt service
	NetMonthlyCashflow float64 `json:"net_monthly_cashflow"`

	PortfolioYieldPct float64  `json:"portfolio_yield_pct"` // aggregate annual rent / aggregate value
	PortfolioROIPct   float64  `json:"portfolio_roi_pct"`   // aggregate annual cashflow / aggregate equity
	AvgNetYieldPct    float64  `json:"avg_net_yield_pct"`   // simple mean across deals
	AvgDSCR           *float64 `json:"avg_dscr"`            // mean over deals with defined DSCR, nil if none

	NegativeCashflowCount int `json:"negative_cashflow_count"`
	LowDSCRCount          int `json:"low_dscr_count"` // DSCR below 1.25

	BestPerformer  *string `json:"best_performer"`  // listing ID with highest net yield
	WorstPerformer *string `json:"worst_performer"` // listing ID with lowest net yield
}
