package portfolio

import (
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

func TestAggregateEmpty(t *testing.T) {
	s, err := Aggregate(nil)
	require.NoError(t, err)

	assert.Zero(t, s.PropertyCount)
	assert.Zero(t, s.TotalValue)
	assert.Nil(t, s.BestPerformer)
	assert.Nil(t, s.WorstPerformer)
	assert.Nil(t, s.AvgDSCR)
}

func TestAggregateTotals(t *testing.T) {
	deals := []model.Deal{
		makeDeal(t, "A", 300_000, 1_500),
		makeDeal(t, "B", 200_000, 1_300),
	}
	s, err := Aggregate(deals)
	require.NoError(t, err)

	assert.Equal(t, 2, s.PropertyCount)
	assert.Equal(t, 500_000.0, s.TotalValue)
	assert.Equal(t, 125_000.0, s.TotalEquity)
	assert.Equal(t, 375_000.0, s.TotalDebt)
	assert.Equal(t, 2_800.0, s.MonthlyIncome)
	assert.Equal(t, 75.0, s.AvgLTVPct)

	// Portfolio yield from aggregate rent over aggregate value,
	// not the mean of per-deal yields (6.00% and 7.80%).
	assert.InDelta(t, 2_800*12/500_000.0*100, s.PortfolioYieldPct, 0.01)

	require.NotNil(t, s.BestPerformer)
	require.NotNil(t, s.WorstPerformer)
	assert.Equal(t, "B", *s.BestPerformer) // higher rent-to-price
	assert.Equal(t, "A", *s.WorstPerformer)
}

func TestAggregateROIFromAggregates(t *testing.T) {
	deals := []model.Deal{
		makeDeal(t, "A", 300_000, 1_500),
		makeDeal(t, "B", 200_000, 1_300),
	}
	s, err := Aggregate(deals)
	require.NoError(t, err)

	annualCashflow := s.NetMonthlyCashflow * 12
	assert.InDelta(t, annualCashflow/s.TotalEquity*100, s.PortfolioROIPct, 0.01)
}

func TestAggregateCounts(t *testing.T) {
	deals := []model.Deal{
		makeDeal(t, "thin", 300_000, 1_100), // negative cashflow, weak DSCR
		makeDeal(t, "fat", 200_000, 1_600),
	}
	s, err := Aggregate(deals)
	require.NoError(t, err)

	assert.Equal(t, 1, s.NegativeCashflowCount)
	assert.Equal(t, 1, s.LowDSCRCount)
	require.NotNil(t, s.AvgDSCR)
}

func TestAggregateMissingKPIs(t *testing.T) {
	_, err := Aggregate([]model.Deal{{Listing: model.Listing{ID: "X", Price: 100}}})
	assert.Error(t, err)
}

func TestAggregateSingleDeal(t *testing.T) {
	s, err := Aggregate([]model.Deal{makeDeal(t, "only", 300_000, 1_500)})
	require.NoError(t, err)
	assert.Equal(t, *s.BestPerformer, *s.WorstPerformer)
	assert.Equal(t, "only", *s.BestPerformer)
}
