package model

// Deal bundles a listing with the assumptions and rent it was underwritten
// at, plus the resulting KPI set. This is the unit the portfolio
// aggregator and scenario runner operate on.
type Deal struct {
	Listing     Listing     `json:"listing"`
	MonthlyRent float64     `json:"monthly_rent"`
	Assumptions Assumptions `json:"assumptions"`
	KPIs        *KPISet     `json:"kpis,omitempty"`
}

// ScenarioDefinition is a named set of market-shock deltas. Rate and void
// changes are absolute percentage points; the rest are relative percents.
type ScenarioDefinition struct {
	Name                 string  `json:"name" yaml:"name"`
	RateChangePP         float64 `json:"rate_change_pp" yaml:"rate_change_pp"`
	RentChangePct        float64 `json:"rent_change_pct" yaml:"rent_change_pct"`
	ValueChangePct       float64 `json:"value_change_pct" yaml:"value_change_pct"`
	VoidChangePP         float64 `json:"void_change_pp" yaml:"void_change_pp"`
	MaintenanceChangePct float64 `json:"maintenance_change_pct" yaml:"maintenance_change_pct"`
}

// FlagSeverity ranks scenario risk flags.
type FlagSeverity string

const (
	FlagCritical FlagSeverity = "critical"
	FlagHigh     FlagSeverity = "high"
	FlagMedium   FlagSeverity = "medium"
)

// RiskFlag is one threshold breach detected in a stressed portfolio.
type RiskFlag struct {
	Severity FlagSeverity `json:"severity"`
	Message  string       `json:"message"`
}

// ScenarioDelta holds scenario-minus-baseline differences for the headline
// portfolio metrics.
type ScenarioDelta struct {
	ValueChange     float64 `json:"value_change"`
	CashflowChange  float64 `json:"cashflow_change"`  // monthly
	YieldChangePP   float64 `json:"yield_change_pp"`  // portfolio yield
	ROIChangePP     float64 `json:"roi_change_pp"`    // portfolio ROI
	EquityChange    float64 `json:"equity_change"`
	AvgDSCRChange   float64 `json:"avg_dscr_change"`
}

// ScenarioResult pairs a stressed portfolio with its baseline and the
// risk flags the deltas triggered.
type ScenarioResult struct {
	Scenario ScenarioDefinition `json:"scenario"`
	Baseline PortfolioSummary   `json:"baseline"`
	Stressed PortfolioSummary   `json:"stressed"`
	Delta    ScenarioDelta      `json:"delta"`
	Flags    []RiskFlag         `json:"flags,omitempty"`
}
