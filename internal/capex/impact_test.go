package capex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldpilot/underwrite-cli/internal/kpi"
	"github.com/yieldpilot/underwrite-cli/internal/model"
)

func baseKPIs(t *testing.T) *model.KPISet {
	t.Helper()
	k, err := kpi.Compute(300_000, 1_500, model.Assumptions{
		DepositPct: 25, InterestRatePct: 5.5, TermYears: 25, InterestOnly: true,
		VoidsPct: 5, MaintenancePct: 8, ManagementPct: 10, InsurancePerYear: 300,
	})
	require.NoError(t, err)
	return k
}

func refurbPlan() model.CapExPlan {
	return model.CapExPlan{Lines: []model.CapExLine{
		{Item: "New kitchen", Category: model.CapExCosmetic, UnitCost: 8_000, Quantity: 1, ContingencyPct: 10},
		{Item: "Boiler", Category: model.CapExMechanical, UnitCost: 2_500, Quantity: 1, Recurring: true, LifespanYears: 10, ContingencyPct: 0},
		{Item: "Windows", Category: model.CapExExternal, UnitCost: 450, Quantity: 8, ContingencyPct: 5},
	}}
}

func TestApplyTotals(t *testing.T) {
	impact, _, err := Apply(refurbPlan(), baseKPIs(t), 300_000)
	require.NoError(t, err)

	// 8000 + 2500 + 3600 upfront; 8800 + 2500 + 3780 with contingency.
	assert.Equal(t, 14_100.0, impact.TotalUpfront)
	assert.Equal(t, 15_080.0, impact.TotalWithContingency)
	// Reserve: only the boiler recurs, no contingency in the reserve.
	assert.Equal(t, 250.0, impact.AnnualReserve)

	assert.Equal(t, 8_800.0, impact.ByCategory[model.CapExCosmetic])
	assert.Equal(t, 2_500.0, impact.ByCategory[model.CapExMechanical])
	assert.Equal(t, 3_780.0, impact.ByCategory[model.CapExExternal])
}

func TestApplyAdjustsKPIs(t *testing.T) {
	base := baseKPIs(t)
	impact, adjusted, err := Apply(refurbPlan(), base, 300_000)
	require.NoError(t, err)

	// Monotonicity: capex never improves cashflow, never shrinks the basis.
	assert.LessOrEqual(t, adjusted.MonthlyCashflow, base.MonthlyCashflow)
	assert.Greater(t, adjusted.TotalInvestment, base.TotalInvestment)
	assert.Less(t, adjusted.GrossYieldPct, base.GrossYieldPct)
	assert.Less(t, adjusted.NetYieldPct, base.NetYieldPct)

	assert.Equal(t, base.TotalInvestment+impact.TotalWithContingency, adjusted.TotalInvestment)
	assert.InDelta(t, base.MonthlyCashflow-250.0/12, adjusted.MonthlyCashflow, 0.01)

	// Base KPI set must not be mutated.
	assert.Equal(t, 98.75, base.MonthlyCashflow)

	require.NotNil(t, adjusted.DSCR)
	assert.Less(t, *adjusted.DSCR, *base.DSCR)
}

func TestApplyPayback(t *testing.T) {
	base := baseKPIs(t)
	impact, adjusted, err := Apply(refurbPlan(), base, 300_000)
	require.NoError(t, err)

	require.Positive(t, adjusted.AnnualCashflow)
	require.NotNil(t, impact.PaybackYears)
	assert.InDelta(t, impact.TotalWithContingency/adjusted.AnnualCashflow, *impact.PaybackYears, 0.01)
}

func TestApplyPaybackUnavailableOnNegativeCashflow(t *testing.T) {
	plan := model.CapExPlan{Lines: []model.CapExLine{
		// Large recurring line pushes cashflow negative.
		{Item: "Full reroof", Category: model.CapExStructural, UnitCost: 30_000, Quantity: 1, Recurring: true, LifespanYears: 2, ContingencyPct: 0},
	}}
	impact, adjusted, err := Apply(plan, baseKPIs(t), 300_000)
	require.NoError(t, err)

	assert.Negative(t, adjusted.AnnualCashflow)
	assert.Nil(t, impact.PaybackYears)
	assert.Contains(t, adjusted.Workings["payback_years"], "unavailable")
}

func TestApplyValidation(t *testing.T) {
	tests := []struct {
		name string
		line model.CapExLine
	}{
		{"empty item", model.CapExLine{Item: "  ", Category: model.CapExOther, UnitCost: 10, Quantity: 1}},
		{"bad category", model.CapExLine{Item: "x", Category: "plumbing", UnitCost: 10, Quantity: 1}},
		{"zero quantity", model.CapExLine{Item: "x", Category: model.CapExOther, UnitCost: 10, Quantity: 0}},
		{"negative cost", model.CapExLine{Item: "x", Category: model.CapExOther, UnitCost: -5, Quantity: 1}},
		{"recurring without lifespan", model.CapExLine{Item: "x", Category: model.CapExOther, UnitCost: 10, Quantity: 1, Recurring: true}},
		{"contingency over 100", model.CapExLine{Item: "x", Category: model.CapExOther, UnitCost: 10, Quantity: 1, ContingencyPct: 150}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Apply(model.CapExPlan{Lines: []model.CapExLine{tt.line}}, baseKPIs(t), 300_000)
			assert.Error(t, err)
		})
	}
}
