package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldpilot/underwrite-cli/internal/model"
)

func ukAssumptions() model.Assumptions {
	return model.Assumptions{
		DepositPct:       25,
		InterestRatePct:  5.5,
		TermYears:        25,
		InterestOnly:     true,
		VoidsPct:         5,
		MaintenancePct:   8,
		ManagementPct:    10,
		InsurancePerYear: 300,
	}
}

func TestComputeWorkedExample(t *testing.T) {
	// £300k purchase at £1,500/mo rent on standard UK buy-to-let terms.
	k, err := Compute(300_000, 1_500, ukAssumptions())
	require.NoError(t, err)

	assert.Equal(t, 75_000.0, k.Deposit)
	assert.Equal(t, 225_000.0, k.LoanAmount)
	assert.Equal(t, 1_031.25, k.MonthlyMortgage)
	assert.Equal(t, 370.0, k.OperatingCosts) // 1500×23% + 300/12
	assert.Equal(t, 98.75, k.MonthlyCashflow)
	assert.Equal(t, 6.0, k.GrossYieldPct)
	assert.Equal(t, 1_185.0, k.AnnualCashflow)
	assert.InDelta(t, 1.58, k.ROIPct, 0.01)

	require.NotNil(t, k.DSCR)
	// NOI 13,560 over debt service 12,375.
	assert.InDelta(t, 1.10, *k.DSCR, 0.005)
}

func TestComputeDeterministic(t *testing.T) {
	a, err := Compute(425_000, 1_850, ukAssumptions())
	require.NoError(t, err)
	b, err := Compute(425_000, 1_850, ukAssumptions())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeAmortizing(t *testing.T) {
	a := ukAssumptions()
	a.InterestOnly = false

	k, err := Compute(300_000, 1_500, a)
	require.NoError(t, err)
	// Annuity on 225,000 at 5.5% over 300 months.
	assert.InDelta(t, 1_381.70, k.MonthlyMortgage, 0.5)
	assert.Less(t, k.MonthlyCashflow, 0.0)
}

func TestComputeZeroAPRAmortizing(t *testing.T) {
	a := ukAssumptions()
	a.InterestOnly = false
	a.InterestRatePct = 0

	k, err := Compute(300_000, 1_500, a)
	require.NoError(t, err)
	// Straight-line principal: 225,000 / 300.
	assert.Equal(t, 750.0, k.MonthlyMortgage)
}

func TestComputeDSCRNilWhenNoDebt(t *testing.T) {
	a := ukAssumptions()
	a.DepositPct = 100 // cash purchase, no loan

	k, err := Compute(300_000, 1_500, a)
	require.NoError(t, err)
	assert.Nil(t, k.DSCR)
	assert.Equal(t, 0.0, k.MonthlyMortgage)
	assert.Contains(t, k.Workings["dscr"], "unavailable")
}

func TestComputeValidation(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		rent   float64
		mutate func(*model.Assumptions)
	}{
		{"zero price", 0, 1500, nil},
		{"negative price", -1, 1500, nil},
		{"negative rent", 300_000, -10, nil},
		{"zero deposit", 300_000, 1500, func(a *model.Assumptions) { a.DepositPct = 0 }},
		{"deposit over 100", 300_000, 1500, func(a *model.Assumptions) { a.DepositPct = 120 }},
		{"negative apr", 300_000, 1500, func(a *model.Assumptions) { a.InterestRatePct = -1 }},
		{"zero term", 300_000, 1500, func(a *model.Assumptions) { a.TermYears = 0 }},
		{"voids over 100", 300_000, 1500, func(a *model.Assumptions) { a.VoidsPct = 101 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ukAssumptions()
			if tt.mutate != nil {
				tt.mutate(&a)
			}
			_, err := Compute(tt.price, tt.rent, a)
			assert.Error(t, err)
		})
	}
}

func TestInterestOnlyRoundTrip(t *testing.T) {
	a := ukAssumptions()
	k, err := Compute(300_000, 1_500, a)
	require.NoError(t, err)

	// monthly × 12 / loan recovers the APR.
	recovered := k.MonthlyMortgage * 12 / k.LoanAmount * 100
	assert.InDelta(t, a.InterestRatePct, recovered, 0.001)
}

func TestAmortizationPrincipalSumsToLoan(t *testing.T) {
	a := ukAssumptions()
	a.InterestOnly = false

	schedule := AmortizationSchedule(225_000, a)
	require.Len(t, schedule, 300)

	var principal float64
	for _, e := range schedule {
		principal += e.Principal
	}
	assert.InDelta(t, 225_000, principal, 1.0)
	assert.Equal(t, 0.0, schedule[len(schedule)-1].Balance)
}

func TestWorkingsCoverEveryMetric(t *testing.T) {
	k, err := Compute(300_000, 1_500, ukAssumptions())
	require.NoError(t, err)

	for _, metric := range []string{
		"deposit", "loan_amount", "monthly_mortgage", "monthly_voids",
		"monthly_maintenance", "monthly_management", "monthly_insurance",
		"operating_costs", "annual_rent", "gross_yield_pct", "net_yield_pct",
		"monthly_cashflow", "roi_pct", "dscr",
	} {
		assert.NotEmpty(t, k.Workings[metric], "missing working for %s", metric)
	}
}
