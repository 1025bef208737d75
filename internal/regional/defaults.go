// Package regional provides per-market operating assumptions keyed by a
// closed set of country codes, with a single documented fallback.
package regional

import "github.com/yieldpilot/underwrite-cli/internal/model"

// Defaults holds the market-level operating parameters substituted when a
// caller supplies no explicit assumption for a field.
type Defaults struct {
	VoidsPct         float64 `json:"voids_pct"`
	MaintenancePct   float64 `json:"maintenance_pct"`
	ManagementPct    float64 `json:"management_pct"`
	InsurancePerYear float64 `json:"insurance_per_year"`
	DepositPct       float64 `json:"deposit_pct"`
	MortgageRatePct  float64 `json:"mortgage_rate_pct"` // base rate used by the scenario runner
	TermYears        int     `json:"term_years"`
}

// defaultsByRegion is the closed lookup table. Unlisted regions resolve to
// fallbackDefaults, never to a zero record.
var defaultsByRegion = map[string]Defaults{
	"GB": {VoidsPct: 5, MaintenancePct: 8, ManagementPct: 10, InsurancePerYear: 300, DepositPct: 25, MortgageRatePct: 5.5, TermYears: 25},
	"IE": {VoidsPct: 4, MaintenancePct: 8, ManagementPct: 9, InsurancePerYear: 350, DepositPct: 30, MortgageRatePct: 4.5, TermYears: 25},
	"US": {VoidsPct: 6, MaintenancePct: 10, ManagementPct: 10, InsurancePerYear: 1200, DepositPct: 20, MortgageRatePct: 6.5, TermYears: 30},
	"DE": {VoidsPct: 3, MaintenancePct: 9, ManagementPct: 8, InsurancePerYear: 400, DepositPct: 20, MortgageRatePct: 3.9, TermYears: 25},
	"ES": {VoidsPct: 7, MaintenancePct: 9, ManagementPct: 10, InsurancePerYear: 350, DepositPct: 30, MortgageRatePct: 3.5, TermYears: 25},
}

// fallbackDefaults applies to any region not in the table. Conservative
// UK-style figures with a slightly higher void allowance.
var fallbackDefaults = Defaults{
	VoidsPct: 6, MaintenancePct: 9, ManagementPct: 10,
	InsurancePerYear: 400, DepositPct: 25, MortgageRatePct: 5.5, TermYears: 25,
}

// For returns the defaults for a country code. It never fails; unknown
// codes get the fallback entry.
func For(region string) Defaults {
	if d, ok := defaultsByRegion[region]; ok {
		return d
	}
	return fallbackDefaults
}

// Regions lists the explicitly-tabled region codes.
func Regions() []string {
	out := make([]string, 0, len(defaultsByRegion))
	for r := range defaultsByRegion {
		out = append(out, r)
	}
	return out
}

// Merge fills any zero-valued operating field of a with the regional
// default for the listing's market. Explicit values always win. The
// interest-only flag is caller intent and is never defaulted.
func Merge(a model.Assumptions, region string) model.Assumptions {
	d := For(region)
	if a.DepositPct == 0 {
		a.DepositPct = d.DepositPct
	}
	if a.InterestRatePct == 0 {
		a.InterestRatePct = d.MortgageRatePct
	}
	if a.TermYears == 0 {
		a.TermYears = d.TermYears
	}
	if a.VoidsPct == 0 {
		a.VoidsPct = d.VoidsPct
	}
	if a.MaintenancePct == 0 {
		a.MaintenancePct = d.MaintenancePct
	}
	if a.ManagementPct == 0 {
		a.ManagementPct = d.ManagementPct
	}
	if a.InsurancePerYear == 0 {
		a.InsurancePerYear = d.InsurancePerYear
	}
	return a
}
