package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Assumptions holds the financing and operating parameters a deal is
// underwritten with. Zero-valued fields may be filled from regional
// defaults before the KPI calculator runs.
type Assumptions struct {
	DepositPct       float64 `json:"deposit_pct"`
	InterestRatePct  float64 `json:"interest_rate_pct"` // annual, e.g. 5.5
	TermYears        int     `json:"term_years"`
	InterestOnly     bool    `json:"interest_only"`
	VoidsPct         float64 `json:"voids_pct"`
	MaintenancePct   float64 `json:"maintenance_pct"`
	ManagementPct    float64 `json:"management_pct"`
	InsurancePerYear float64 `json:"insurance_per_year"`
}

// Validate checks every field against its documented bounds. Out-of-range
// values are rejected, never clamped.
func (a Assumptions) Validate() error {
	var errs []string

	pcts := map[string]float64{
		"deposit_pct":     a.DepositPct,
		"voids_pct":       a.VoidsPct,
		"maintenance_pct": a.MaintenancePct,
		"management_pct":  a.ManagementPct,
	}
	for name, v := range pcts {
		if v < 0 || v > 100 {
			errs = append(errs, fmt.Sprintf("%s must be between 0 and 100, got %.2f", name, v))
		}
	}
	if a.InterestRatePct < 0 {
		errs = append(errs, fmt.Sprintf("interest_rate_pct must be >= 0, got %.2f", a.InterestRatePct))
	}
	if a.TermYears <= 0 {
		errs = append(errs, fmt.Sprintf("term_years must be > 0, got %d", a.TermYears))
	}
	if a.InsurancePerYear < 0 {
		errs = append(errs, fmt.Sprintf("insurance_per_year must be >= 0, got %.2f", a.InsurancePerYear))
	}

	if len(errs) > 0 {
		return eris.Errorf("assumptions: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ContentHash returns a stable sha256 hex digest of the assumptions.
// Exports embed it so a rendered report can be traced back to the exact
// inputs that produced it.
func (a Assumptions) ContentHash() string {
	// Map ordering is not a concern: struct fields marshal in declaration order.
	b, _ := json.Marshal(a)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
