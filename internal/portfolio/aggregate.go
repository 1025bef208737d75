// Package portfolio rolls a set of underwritten deals into one summary.
// Ratio metrics come from aggregate numerators over aggregate
// denominators so a large cheap deal cannot distort them the way a mean
// of per-deal percentages would.
package portfolio

import (
	"github.com/rotisserie/eris"

	"github.com/yieldpilot/underwrite-cli/internal/model"
)

// LenderDSCRThreshold is the coverage ratio below which lenders typically
// decline or reprice buy-to-let debt.
const LenderDSCRThreshold = 1.25

// Aggregate summarizes deals. Each deal must carry its computed KPI set.
// An empty slice returns an all-zero summary with nil performer IDs.
func Aggregate(deals []model.Deal) (*model.PortfolioSummary, error) {
	s := &model.PortfolioSummary{}
	if len(deals) == 0 {
		return s, nil
	}

	var (
		dscrSum     float64
		dscrCount   int
		netYieldSum float64
		ltvSum      float64
		bestYield   float64
		worstYield  float64
		bestID      string
		worstID     string
	)

	for i, d := range deals {
		if d.KPIs == nil {
			return nil, eris.Errorf("portfolio: deal %d (%s) has no KPI set", i, d.Listing.ID)
		}
		k := d.KPIs

		s.PropertyCount++
		s.TotalValue += d.Listing.Price
		s.TotalEquity += k.TotalInvestment
		s.TotalDebt += k.LoanAmount
		s.MonthlyIncome += k.MonthlyRent
		s.MonthlyExpenses += k.TotalMonthlyCosts
		s.NetMonthlyCashflow += k.MonthlyCashflow

		ltvSum += k.LoanAmount / d.Listing.Price * 100
		netYieldSum += k.NetYieldPct

		if k.DSCR != nil {
			dscrSum += *k.DSCR
			dscrCount++
			if *k.DSCR < LenderDSCRThreshold {
				s.LowDSCRCount++
			}
		}
		if k.MonthlyCashflow < 0 {
			s.NegativeCashflowCount++
		}

		if bestID == "" || k.NetYieldPct > bestYield {
			bestYield, bestID = k.NetYieldPct, d.Listing.ID
		}
		if worstID == "" || k.NetYieldPct < worstYield {
			worstYield, worstID = k.NetYieldPct, d.Listing.ID
		}
	}

	n := float64(s.PropertyCount)
	s.AvgLTVPct = model.Round2(ltvSum / n)
	s.AvgNetYieldPct = model.Round2(netYieldSum / n)
	if dscrCount > 0 {
		s.AvgDSCR = model.Ptr(model.Round2(dscrSum / float64(dscrCount)))
	}

	// Aggregate ratios, not averages of ratios.
	s.PortfolioYieldPct = model.Round2(s.MonthlyIncome * 12 / s.TotalValue * 100)
	if s.TotalEquity > 0 {
		s.PortfolioROIPct = model.Round2(s.NetMonthlyCashflow * 12 / s.TotalEquity * 100)
	}

	s.TotalValue = model.Round2(s.TotalValue)
	s.TotalEquity = model.Round2(s.TotalEquity)
	s.TotalDebt = model.Round2(s.TotalDebt)
	s.MonthlyIncome = model.Round2(s.MonthlyIncome)
	s.MonthlyExpenses = model.Round2(s.MonthlyExpenses)
	s.NetMonthlyCashflow = model.Round2(s.NetMonthlyCashflow)

	s.BestPerformer = model.Ptr(bestID)
	s.WorstPerformer = model.Ptr(worstID)

	return s, nil
}
