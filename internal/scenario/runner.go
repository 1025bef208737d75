// Package scenario stress-tests a deal set under hypothetical market
// shocks: every deal is re-underwritten with the scenario's deltas
// applied, re-aggregated, and diffed against the baseline portfolio.
package scenario

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yieldpilot/underwrite-cli/internal/kpi"
	"github.com/yieldpilot/underwrite-cli/internal/model"
	"github.com/yieldpilot/underwrite-cli/internal/portfolio"
	"github.com/yieldpilot/underwrite-cli/internal/regional"
)

// stressLTVPct is the loan-to-value the remortgage leg of every scenario
// assumes, matching the standard buy-to-let stress convention.
const stressLTVPct = 75.0

// Risk flag thresholds, evaluated in fixed priority order.
const (
	roiDropHighPP      = -5.0
	valueDropMediumAbs = -100_000.0
)

// Defaults returns the built-in scenario set used when the caller
// supplies none.
func Defaults() []model.ScenarioDefinition {
	return []model.ScenarioDefinition{
		{Name: "rate_shock", RateChangePP: 3},
		{Name: "rent_crash", RentChangePct: -10, VoidChangePP: 3},
		{Name: "value_correction", ValueChangePct: -15},
		{Name: "stagflation", RateChangePP: 2, RentChangePct: -5, ValueChangePct: -10, VoidChangePP: 2, MaintenanceChangePct: 10},
	}
}

// Run evaluates every scenario against the deal set. Scenarios run
// concurrently; within each scenario the deltas are applied to every
// deal, the stressed set re-aggregated, and flags derived from that same
// stressed aggregate. Results keep the input scenario order.
func Run(ctx context.Context, deals []model.Deal, scenarios []model.ScenarioDefinition) ([]model.ScenarioResult, error) {
	if len(deals) == 0 {
		return nil, eris.New("scenario: at least one deal is required")
	}
	if len(scenarios) == 0 {
		scenarios = Defaults()
	}

	baseline, err := portfolio.Aggregate(deals)
	if err != nil {
		return nil, eris.Wrap(err, "scenario: aggregate baseline")
	}

	results := make([]model.ScenarioResult, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)

	for i, def := range scenarios {
		i, def := i, def
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := runOne(deals, def, baseline)
			if err != nil {
				return eris.Wrapf(err, "scenario: run %q", def.Name)
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("scenario: stress test complete",
		zap.Int("deals", len(deals)),
		zap.Int("scenarios", len(scenarios)),
	)

	return results, nil
}

// runOne applies one scenario to every deal and aggregates the result.
func runOne(deals []model.Deal, def model.ScenarioDefinition, baseline *model.PortfolioSummary) (*model.ScenarioResult, error) {
	stressed := make([]model.Deal, 0, len(deals))
	for _, d := range deals {
		sd, err := stressDeal(d, def)
		if err != nil {
			return nil, err
		}
		stressed = append(stressed, sd)
	}

	agg, err := portfolio.Aggregate(stressed)
	if err != nil {
		return nil, err
	}

	delta := diff(baseline, agg)

	return &model.ScenarioResult{
		Scenario: def,
		Baseline: *baseline,
		Stressed: *agg,
		Delta:    delta,
		Flags:    flags(agg, delta),
	}, nil
}

// stressDeal re-underwrites one deal under the scenario's deltas using
// the base KPI formulas. The mortgage leg is recomputed at the regional
// base rate plus the rate delta on a 75%-LTV loan.
func stressDeal(d model.Deal, def model.ScenarioDefinition) (model.Deal, error) {
	a := d.Assumptions

	newRent := d.MonthlyRent * (1 + def.RentChangePct/100)
	newPrice := d.Listing.Price * (1 + def.ValueChangePct/100)

	baseRate := a.InterestRatePct
	if baseRate == 0 {
		baseRate = regional.For(d.Listing.Region).MortgageRatePct
	}
	a.InterestRatePct = baseRate + def.RateChangePP
	a.DepositPct = 100 - stressLTVPct
	a.VoidsPct += def.VoidChangePP
	a.MaintenancePct *= 1 + def.MaintenanceChangePct/100

	k, err := kpi.Compute(newPrice, newRent, a)
	if err != nil {
		return model.Deal{}, eris.Wrapf(err, "stress deal %s", d.Listing.ID)
	}

	out := d
	out.Listing.Price = newPrice
	out.MonthlyRent = newRent
	out.Assumptions = a
	out.KPIs = k
	return out, nil
}

func diff(base, stressed *model.PortfolioSummary) model.ScenarioDelta {
	d := model.ScenarioDelta{
		ValueChange:    model.Round2(stressed.TotalValue - base.TotalValue),
		CashflowChange: model.Round2(stressed.NetMonthlyCashflow - base.NetMonthlyCashflow),
		YieldChangePP:  model.Round2(stressed.PortfolioYieldPct - base.PortfolioYieldPct),
		ROIChangePP:    model.Round2(stressed.PortfolioROIPct - base.PortfolioROIPct),
		EquityChange:   model.Round2(stressed.TotalEquity - base.TotalEquity),
	}
	if base.AvgDSCR != nil && stressed.AvgDSCR != nil {
		d.AvgDSCRChange = model.Round2(*stressed.AvgDSCR - *base.AvgDSCR)
	}
	return d
}

// flags grades the stressed aggregate. The thresholds are independent:
// several flags can fire for the same scenario.
func flags(stressed *model.PortfolioSummary, delta model.ScenarioDelta) []model.RiskFlag {
	var out []model.RiskFlag
	if stressed.NetMonthlyCashflow < 0 {
		out = append(out, model.RiskFlag{
			Severity: model.FlagCritical,
			Message:  "portfolio cashflow turns negative under this scenario",
		})
	}
	if delta.ROIChangePP < roiDropHighPP {
		out = append(out, model.RiskFlag{
			Severity: model.FlagHigh,
			Message:  "portfolio ROI falls by more than 5 percentage points",
		})
	}
	if delta.ValueChange < valueDropMediumAbs {
		out = append(out, model.RiskFlag{
			Severity: model.FlagMedium,
			Message:  "portfolio value falls by more than 100,000",
		})
	}
	return out
}
