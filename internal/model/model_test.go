package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAssumptions() Assumptions {
	return Assumptions{
		DepositPct:      25,
		InterestRatePct: 5.5,
		TermYears:       25,
		VoidsPct:        5,
		MaintenancePct:  8,
		ManagementPct:   10,
	}
}

func TestAssumptionsValidate(t *testing.T) {
	require.NoError(t, validAssumptions().Validate())

	tests := []struct {
		name   string
		mutate func(*Assumptions)
		want   string
	}{
		{"negative rate", func(a *Assumptions) { a.InterestRatePct = -1 }, "interest_rate_pct"},
		{"zero term", func(a *Assumptions) { a.TermYears = 0 }, "term_years"},
		{"deposit over 100", func(a *Assumptions) { a.DepositPct = 110 }, "deposit_pct"},
		{"negative voids", func(a *Assumptions) { a.VoidsPct = -2 }, "voids_pct"},
		{"negative insurance", func(a *Assumptions) { a.InsurancePerYear = -50 }, "insurance_per_year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAssumptions()
			tt.mutate(&a)
			err := a.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAssumptionsValidateCollectsAllErrors(t *testing.T) {
	a := Assumptions{DepositPct: -5, InterestRatePct: -1}
	err := a.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deposit_pct")
	assert.Contains(t, err.Error(), "interest_rate_pct")
	assert.Contains(t, err.Error(), "term_years")
}

func TestContentHashStability(t *testing.T) {
	a := validAssumptions()
	assert.Equal(t, a.ContentHash(), a.ContentHash())
	assert.Len(t, a.ContentHash(), 64)

	b := a
	b.InterestRatePct = 6.0
	assert.NotEqual(t, a.ContentHash(), b.ContentHash())
}

func TestEPCBandSubStandard(t *testing.T) {
	assert.True(t, EPCBandF.SubStandard())
	assert.True(t, EPCBandG.SubStandard())
	for _, b := range []EPCBand{EPCBandA, EPCBandB, EPCBandC, EPCBandD, EPCBandE} {
		assert.False(t, b.SubStandard(), "band %s", b)
	}
}

func TestCapExPlanValidate(t *testing.T) {
	ok := CapExPlan{Lines: []CapExLine{
		{Item: "boiler", Category: CapExMechanical, UnitCost: 2500, Quantity: 1, Recurring: true, LifespanYears: 10},
	}}
	require.NoError(t, ok.Validate())

	bad := CapExPlan{Lines: []CapExLine{
		{Item: "", Category: "plumbing", UnitCost: -1, Quantity: 0, Recurring: true},
	}}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item name is required")
	assert.Contains(t, err.Error(), `unknown category "plumbing"`)
	assert.Contains(t, err.Error(), "quantity must be > 0")
	assert.Contains(t, err.Error(), "lifespan_years")
}
