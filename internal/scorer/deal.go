package scorer

import (
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/yieldpilot/underwrite-cli/internal/config"
	"github.com/yieldpilot/underwrite-cli/internal/model"
)

// neutralSubScore stands in for any enrichment factor with no data. Using
// the midpoint keeps the missing factor from dragging the composite in
// either direction; the result is marked reduced-confidence instead.
const neutralSubScore = 50.0

// Financial sub-score curves (0-100 points each before averaging).
var (
	dealNetYieldStops = []bandStop{{0, 0}, {3, 40}, {5, 70}, {7, 100}}
	dealCashflowStops = []bandStop{{-200, 0}, {0, 40}, {150, 70}, {400, 100}}
	dealDSCRStops     = []bandStop{{0.9, 0}, {1.25, 50}, {1.5, 80}, {2.0, 100}}
	dealROIStops      = []bandStop{{0, 0}, {3, 40}, {6, 70}, {10, 100}}
)

// DealScore grades a fully-underwritten deal from its KPI set plus
// enrichment and compliance context. Missing enrichment fields take
// neutral defaults and lower the reported confidence; they never fail the
// computation.
func DealScore(kpis *model.KPISet, enrichment model.Enrichment, compliance *model.ComplianceReport, w config.DealWeights) (*model.ScoreResult, error) {
	if err := ValidateDealWeights(w); err != nil {
		return nil, err
	}
	if kpis == nil {
		return nil, eris.New("scorer: kpi set is required")
	}

	confidence := model.ConfidenceFull

	financial := financialSubScore(kpis)

	value := neutralSubScore
	if enrichment.ValueIndex != nil {
		// Index of 100 means priced at the area average; every point under
		// par is worth 2.5 score points, every point over costs the same.
		value = clamp(neutralSubScore + (100-enrichment.ValueIndex.Value)*2.5)
	} else {
		confidence = model.ConfidenceReduced
	}

	demand := neutralSubScore
	if enrichment.DemandIndex != nil {
		demand = clamp(enrichment.DemandIndex.Value)
	} else {
		confidence = model.ConfidenceReduced
	}

	risk := neutralSubScore
	if enrichment.FloodRisk != nil && enrichment.CrimeRisk != nil {
		// Risk indices run 0-100 with higher meaning worse; invert each and
		// average.
		risk = (clamp(100-enrichment.FloodRisk.Value) + clamp(100-enrichment.CrimeRisk.Value)) / 2
	} else {
		confidence = model.ConfidenceReduced
	}

	epc := epcSubScore(enrichment)
	if enrichment.EPC == nil {
		confidence = model.ConfidenceReduced
	}

	breakdown := map[string]float64{
		"financial": financial * w.Financial,
		"value":     value * w.Value,
		"demand":    demand * w.Demand,
		"risk":      risk * w.Risk,
		"epc":       epc.score * w.EPC,
	}

	var total float64
	for _, pts := range breakdown {
		total += pts
	}
	total = clamp(total)

	res := &model.ScoreResult{
		Score:     model.Round2(total),
		Band:      bandFor(total),
		Drivers:   dealDrivers(kpis, enrichment),
		Risks:     dealRisks(kpis, enrichment, compliance, epc),
		Breakdown: breakdown,
		Weights: map[string]float64{
			"financial": w.Financial,
			"value":     w.Value,
			"demand":    w.Demand,
			"risk":      w.Risk,
			"epc":       w.EPC,
		},
		Confidence: confidence,
	}

	zap.L().Debug("scorer: deal score computed",
		zap.Float64("score", res.Score),
		zap.String("band", string(res.Band)),
		zap.String("confidence", string(res.Confidence)),
	)

	return res, nil
}

// financialSubScore averages the four financial factor curves unweighted.
func financialSubScore(k *model.KPISet) float64 {
	dscrScore := neutralSubScore // cash purchases have no debt service to grade
	if k.DSCR != nil {
		dscrScore = curve(*k.DSCR, dealDSCRStops)
	}
	return (curve(k.NetYieldPct, dealNetYieldStops) +
		curve(k.MonthlyCashflow, dealCashflowStops) +
		dscrScore +
		curve(k.ROIPct, dealROIStops)) / 4
}

// epcResult carries the EPC factor score plus whether an upgrade risk
// applies, so the risk narrative and the score stay consistent.
type epcResult struct {
	score           float64
	upgradeRequired bool
	band            model.EPCBand
}

var epcScores = map[model.EPCBand]float64{
	model.EPCBandA: 100, model.EPCBandB: 95, model.EPCBandC: 85,
	model.EPCBandD: 65, model.EPCBandE: 40, model.EPCBandF: 20, model.EPCBandG: 10,
}

// epcSubScore grades the enrichment-supplied band, neutral when absent.
// Bands E and below carry the upgrade-required risk.
func epcSubScore(e model.Enrichment) epcResult {
	if e.EPC == nil {
		return epcResult{score: neutralSubScore}
	}
	band := e.EPC.Band
	if s, ok := epcScores[band]; ok {
		return epcResult{
			score:           s,
			upgradeRequired: band == model.EPCBandE || band.SubStandard(),
			band:            band,
		}
	}
	return epcResult{score: neutralSubScore}
}

// dealDrivers lists the positive threshold rules that fired, in fixed order.
func dealDrivers(k *model.KPISet, e model.Enrichment) []string {
	var drivers []string
	if k.NetYieldPct >= 7 {
		drivers = append(drivers, fmt.Sprintf("strong net yield at %.2f%%", k.NetYieldPct))
	} else if k.GrossYieldPct >= 8 {
		drivers = append(drivers, fmt.Sprintf("high gross yield at %.2f%%", k.GrossYieldPct))
	}
	if k.MonthlyCashflow >= 200 {
		drivers = append(drivers, fmt.Sprintf("comfortable monthly cashflow of %.2f", k.MonthlyCashflow))
	}
	if k.DSCR != nil && *k.DSCR >= 1.5 {
		drivers = append(drivers, fmt.Sprintf("DSCR of %.2f well above lender threshold", *k.DSCR))
	}
	if k.ROIPct >= 10 {
		drivers = append(drivers, fmt.Sprintf("cash-on-cash return of %.2f%%", k.ROIPct))
	}
	if e.DemandIndex != nil && e.DemandIndex.Value >= 75 {
		drivers = append(drivers, "high tenant demand in the area")
	}
	return drivers
}

// dealRisks lists the risk rules that fired, in fixed order: financial
// first, then enrichment, then compliance.
func dealRisks(k *model.KPISet, e model.Enrichment, compliance *model.ComplianceReport, epc epcResult) []string {
	var risks []string
	if k.MonthlyCashflow < 0 {
		risks = append(risks, fmt.Sprintf("negative monthly cashflow of %.2f", k.MonthlyCashflow))
	}
	if k.DSCR != nil && *k.DSCR < 1.25 {
		risks = append(risks, fmt.Sprintf("DSCR of %.2f below lender threshold of 1.25", *k.DSCR))
	}
	if epc.upgradeRequired {
		risks = append(risks, fmt.Sprintf("EPC band %s: energy upgrade required to keep letting", epc.band))
	}
	if e.FloodRisk != nil && e.FloodRisk.Value >= 70 {
		risks = append(risks, "elevated flood risk in the area")
	}
	if e.CrimeRisk != nil && e.CrimeRisk.Value >= 70 {
		risks = append(risks, "elevated crime levels in the area")
	}
	if compliance != nil {
		if compliance.CriticalCount > 0 {
			risks = append(risks, fmt.Sprintf("%d critical compliance issue(s) outstanding", compliance.CriticalCount))
		}
		if compliance.HighCount > 0 {
			risks = append(risks, fmt.Sprintf("%d high-severity compliance issue(s) outstanding", compliance.HighCount))
		}
	}
	return risks
}
