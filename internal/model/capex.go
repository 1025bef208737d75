package model

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// CapExCategory buckets a capital-expenditure line for breakdown reporting.
type CapExCategory string

const (
	CapExStructural CapExCategory = "structural"
	CapExMechanical CapExCategory = "mechanical"
	CapExCosmetic   CapExCategory = "cosmetic"
	CapExExternal   CapExCategory = "external"
	CapExOther      CapExCategory = "other"
)

var validCapExCategories = map[CapExCategory]bool{
	CapExStructural: true,
	CapExMechanical: true,
	CapExCosmetic:   true,
	CapExExternal:   true,
	CapExOther:      true,
}

// CapExLine is a single renovation or maintenance item in a plan.
// Recurring lines must carry a lifespan so their cost can be spread into
// an annual reserve.
type CapExLine struct {
	Item           string        `json:"item"`
	Category       CapExCategory `json:"category"`
	UnitCost       float64       `json:"unit_cost"`
	Quantity       int           `json:"quantity"`
	Recurring      bool          `json:"recurring"`
	LifespanYears  int           `json:"lifespan_years,omitempty"`
	ContingencyPct float64       `json:"contingency_pct"`
}

// CapExPlan is an ordered list of capital-expenditure lines.
type CapExPlan struct {
	Lines []CapExLine `json:"lines"`
}

// Validate rejects structurally invalid plans with field-level reasons.
func (p CapExPlan) Validate() error {
	var errs []string
	for i, l := range p.Lines {
		if strings.TrimSpace(l.Item) == "" {
			errs = append(errs, fmt.Sprintf("line %d: item name is required", i))
		}
		if !validCapExCategories[l.Category] {
			errs = append(errs, fmt.Sprintf("line %d: unknown category %q", i, l.Category))
		}
		if l.UnitCost < 0 {
			errs = append(errs, fmt.Sprintf("line %d: unit_cost must be >= 0", i))
		}
		if l.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("line %d: quantity must be > 0", i))
		}
		if l.ContingencyPct < 0 || l.ContingencyPct > 100 {
			errs = append(errs, fmt.Sprintf("line %d: contingency_pct must be between 0 and 100", i))
		}
		if l.Recurring && l.LifespanYears <= 0 {
			errs = append(errs, fmt.Sprintf("line %d: recurring line requires lifespan_years > 0", i))
		}
	}
	if len(errs) > 0 {
		return eris.Errorf("capex: plan validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// CapExImpact summarizes what a plan does to the investment basis.
type CapExImpact struct {
	TotalUpfront         float64                   `json:"total_upfront"` // before contingency
	TotalWithContingency float64                   `json:"total_with_contingency"`
	AnnualReserve        float64                   `json:"annual_reserve"`
	ByCategory           map[CapExCategory]float64 `json:"by_category"`
	PaybackYears         *float64                  `json:"payback_years,omitempty"` // nil when adjusted cashflow <= 0
}
