package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldpilot/underwrite-cli/internal/kpi"
	"github.com/yieldpilot/underwrite-cli/internal/model"
)

func makeDeal(t *testing.T, id string, price, rent float64) model.Deal {
	t.Helper()
	a := model.Assumptions{
		DepositPct: 25, InterestRatePct: 5.5, TermYears: 25, InterestOnly: true,
		VoidsPct: 5, MaintenancePct: 8, ManagementPct: 10, InsurancePerYear: 300,
	}
	k, err := kpi.Compute(price, rent, a)
	require.NoError(t, err)
	return model.Deal{
		Listing:     model.Listing{ID: id, Price: price, Region: "GB"},
		MonthlyRent: rent,
		Assumptions: a,
		KPIs:        k,
	}
}

func healthyPortfolio(t *testing.T) []model.Deal {
	return []model.Deal{
		makeDeal(t, "A", 300_000, 1_500),
		makeDeal(t, "B", 200_000, 1_400),
		makeDeal(t, "C", 250_000, 1_450),
	}
}

func TestRunPreservesScenarioOrder(t *testing.T) {
	scenarios := []model.ScenarioDefinition{
		{Name: "first", RateChangePP: 1},
		{Name: "second", RentChangePct: -5},
		{Name: "third", ValueChangePct: -10},
	}
	results, err := Run(context.Background(), healthyPortfolio(t), scenarios)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, scenarios[i].Name, r.Scenario.Name)
	}
}

func TestRunNoOpScenarioKeepsValue(t *testing.T) {
	results, err := Run(context.Background(), healthyPortfolio(t), []model.ScenarioDefinition{{Name: "noop"}})
	require.NoError(t, err)
	r := results[0]

	// No value or rent deltas: totals hold even though the financing leg
	// is restated at the 75%-LTV stress convention.
	assert.Equal(t, r.Baseline.TotalValue, r.Stressed.TotalValue)
	assert.Equal(t, 0.0, r.Delta.ValueChange)
	assert.Equal(t, r.Baseline.MonthlyIncome, r.Stressed.MonthlyIncome)
}

func TestRunCriticalFlagOnNegativeCashflow(t *testing.T) {
	// Baseline is cashflow-positive; a hard combined shock pushes the
	// portfolio under water and must raise the critical flag.
	deals := healthyPortfolio(t)

	shock := model.ScenarioDefinition{
		Name:                 "combined_shock",
		RateChangePP:         3,
		RentChangePct:        -5,
		VoidChangePP:         2,
		MaintenanceChangePct: 10,
	}
	results, err := Run(context.Background(), deals, []model.ScenarioDefinition{shock})
	require.NoError(t, err)
	r := results[0]

	require.Positive(t, r.Baseline.NetMonthlyCashflow)
	require.Negative(t, r.Stressed.NetMonthlyCashflow)

	var severities []model.FlagSeverity
	for _, f := range r.Flags {
		severities = append(severities, f.Severity)
	}
	assert.Contains(t, severities, model.FlagCritical)
}

func TestRunMediumFlagOnValueDrop(t *testing.T) {
	results, err := Run(context.Background(), healthyPortfolio(t),
		[]model.ScenarioDefinition{{Name: "crash", ValueChangePct: -20}})
	require.NoError(t, err)
	r := results[0]

	// 20% off £750k is well past the £100k absolute threshold.
	assert.Less(t, r.Delta.ValueChange, -100_000.0)

	var severities []model.FlagSeverity
	for _, f := range r.Flags {
		severities = append(severities, f.Severity)
	}
	assert.Contains(t, severities, model.FlagMedium)
}

func TestRunMultipleFlagsCanCoexist(t *testing.T) {
	shock := model.ScenarioDefinition{
		Name: "everything", RateChangePP: 4, RentChangePct: -15,
		ValueChangePct: -20, VoidChangePP: 3, MaintenanceChangePct: 20,
	}
	results, err := Run(context.Background(), healthyPortfolio(t), []model.ScenarioDefinition{shock})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(results[0].Flags), 2)
}

func TestRunDefaultScenarios(t *testing.T) {
	results, err := Run(context.Background(), healthyPortfolio(t), nil)
	require.NoError(t, err)
	assert.Len(t, results, len(Defaults()))
}

func TestRunEmptyDeals(t *testing.T) {
	_, err := Run(context.Background(), nil, Defaults())
	assert.Error(t, err)
}

func TestRunDeterministic(t *testing.T) {
	deals := healthyPortfolio(t)
	a, err := Run(context.Background(), deals, Defaults())
	require.NoError(t, err)
	b, err := Run(context.Background(), deals, Defaults())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
