// Package kpi implements the deterministic underwriting calculator: it
// turns (price, rent, assumptions) into the full KPI set with a
// human-readable derivation per metric.
package kpi

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/yieldpilot/underwrite-cli/internal/model"
)

const monthsPerYear = 12

// Compute derives the complete KPI set for one deal. It is a pure
// function: identical inputs always produce identical output, and invalid
// inputs are rejected rather than clamped.
func Compute(price, monthlyRent float64, a model.Assumptions) (*model.KPISet, error) {
	if price <= 0 {
		return nil, eris.Errorf("kpi: price must be > 0, got %.2f", price)
	}
	if monthlyRent < 0 {
		return nil, eris.Errorf("kpi: monthly rent must be >= 0, got %.2f", monthlyRent)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	deposit := price * a.DepositPct / 100
	if deposit <= 0 {
		return nil, eris.Errorf("kpi: deposit_pct %.2f yields a non-positive deposit", a.DepositPct)
	}
	loan := price - deposit

	mortgage := monthlyPayment(loan, a)

	voids := monthlyRent * a.VoidsPct / 100
	maintenance := monthlyRent * a.MaintenancePct / 100
	management := monthlyRent * a.ManagementPct / 100
	insurance := a.InsurancePerYear / monthsPerYear
	operating := voids + maintenance + management + insurance

	annualRent := monthlyRent * monthsPerYear
	grossYield := annualRent / price * 100

	// Net yield deducts operating costs and the interest portion of the
	// mortgage, but not principal repayment (UK buy-to-let convention).
	// The interest portion is taken as first-year interest on the full loan.
	annualInterest := loan * a.InterestRatePct / 100
	netYield := (annualRent - operating*monthsPerYear - annualInterest) / price * 100

	cashflow := monthlyRent - mortgage - operating
	annualCashflow := cashflow * monthsPerYear
	roi := annualCashflow / deposit * 100

	var dscr *float64
	annualDebtService := mortgage * monthsPerYear
	if annualDebtService > 0 {
		noi := annualRent - operating*monthsPerYear
		dscr = model.Ptr(model.Round2(noi / annualDebtService))
	}

	k := &model.KPISet{
		Deposit:            model.Round2(deposit),
		LoanAmount:         model.Round2(loan),
		MonthlyMortgage:    model.Round2(mortgage),
		TotalInvestment:    model.Round2(deposit),
		MonthlyRent:        model.Round2(monthlyRent),
		AnnualRent:         model.Round2(annualRent),
		MonthlyVoids:       model.Round2(voids),
		MonthlyMaintenance: model.Round2(maintenance),
		MonthlyManagement:  model.Round2(management),
		MonthlyInsurance:   model.Round2(insurance),
		OperatingCosts:     model.Round2(operating),
		TotalMonthlyCosts:  model.Round2(operating + mortgage),
		GrossYieldPct:      model.Round2(grossYield),
		NetYieldPct:        model.Round2(netYield),
		MonthlyCashflow:    model.Round2(cashflow),
		AnnualCashflow:     model.Round2(annualCashflow),
		ROIPct:             model.Round2(roi),
		DSCR:               dscr,
	}
	k.Workings = buildWorkings(price, monthlyRent, a, k, annualInterest)

	return k, nil
}

// monthlyPayment returns the monthly mortgage payment for the loan under
// the given assumptions. Interest-only pays interest alone; amortizing
// uses the standard annuity formula, degrading to straight-line principal
// when the rate is zero.
func monthlyPayment(loan float64, a model.Assumptions) float64 {
	if loan <= 0 {
		return 0
	}
	if a.InterestOnly {
		return loan * (a.InterestRatePct / 100) / monthsPerYear
	}
	n := float64(a.TermYears * monthsPerYear)
	if a.InterestRatePct == 0 {
		return loan / n
	}
	r := a.InterestRatePct / 100 / monthsPerYear
	pow := math.Pow(1+r, n)
	return loan * r * pow / (pow - 1)
}

// AmortizationEntry is one month of an amortization schedule.
type AmortizationEntry struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

// AmortizationSchedule expands an amortizing loan month by month. For
// interest-only loans the balance never declines and principal is zero
// throughout.
func AmortizationSchedule(loan float64, a model.Assumptions) []AmortizationEntry {
	months := a.TermYears * monthsPerYear
	payment := monthlyPayment(loan, a)
	r := a.InterestRatePct / 100 / monthsPerYear

	entries := make([]AmortizationEntry, 0, months)
	balance := loan
	for m := 1; m <= months; m++ {
		interest := balance * r
		principal := payment - interest
		if a.InterestOnly {
			principal = 0
		} else {
			balance -= principal
			if m == months {
				// Absorb rounding drift into the final payment.
				principal += balance
				balance = 0
			}
		}
		entries = append(entries, AmortizationEntry{
			Month:     m,
			Payment:   model.Round2(payment),
			Interest:  model.Round2(interest),
			Principal: model.Round2(principal),
			Balance:   model.Round2(balance),
		})
	}
	return entries
}
