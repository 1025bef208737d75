package scorer

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/yieldpilot/underwrite-cli/internal/config"
	"github.com/yieldpilot/underwrite-cli/internal/model"
	"github.com/yieldpilot/underwrite-cli/internal/regional"
)

// Feed-score factor curves. Fractions of the factor weight earned at each
// threshold, interpolated linearly in between.
var (
	// Gross yield %: 8%+ earns full weight, tailing to nothing below 4%.
	grossYieldStops = []bandStop{{0, 0}, {4, 0.4}, {6, 0.7}, {8, 1.0}}

	// Estimated net yield %: full weight from 5.5%.
	netYieldStops = []bandStop{{0, 0}, {2, 0.4}, {4, 0.7}, {5.5, 1.0}}

	// Price per square metre: cheaper space scores higher.
	pricePerAreaStops = []bandStop{{2000, 1.0}, {3500, 0.7}, {5000, 0.4}, {7000, 0}}

	// Days on market: fresh listings signal a liquid market.
	daysOnMarketStops = []bandStop{{14, 1.0}, {30, 0.7}, {60, 0.4}, {120, 0}}
)

// FeedScore grades a raw listing at ingestion, before full underwriting,
// from the listing facts and a monthly rent estimate alone. Operating
// assumptions for the net-yield estimate come from the regional defaults
// table.
func FeedScore(listing model.Listing, monthlyRent float64, w config.FeedWeights) (*model.ScoreResult, error) {
	if err := ValidateFeedWeights(w); err != nil {
		return nil, err
	}
	if listing.Price <= 0 {
		return nil, eris.Errorf("scorer: listing price must be > 0, got %.2f", listing.Price)
	}
	if monthlyRent < 0 {
		return nil, eris.Errorf("scorer: rent estimate must be >= 0, got %.2f", monthlyRent)
	}

	annualRent := monthlyRent * 12
	grossYield := annualRent / listing.Price * 100

	// Net yield estimate: regional operating percentages and insurance off
	// the top. No financing at feed stage, so no interest deduction.
	d := regional.For(listing.Region)
	opPct := d.VoidsPct + d.MaintenancePct + d.ManagementPct
	netYield := (annualRent*(1-opPct/100) - d.InsurancePerYear) / listing.Price * 100

	confidence := model.ConfidenceFull
	pricePerArea := 0.0
	areaFrac := 0.5 // neutral when floor area is unknown
	if listing.FloorAreaSqm > 0 {
		pricePerArea = listing.Price / listing.FloorAreaSqm
		areaFrac = curve(pricePerArea, pricePerAreaStops)
	} else {
		confidence = model.ConfidenceReduced
	}

	breakdown := map[string]float64{
		"gross_yield":    curve(grossYield, grossYieldStops) * w.GrossYield,
		"net_yield":      curve(netYield, netYieldStops) * w.NetYield,
		"price_per_area": areaFrac * w.PricePerArea,
		"days_on_market": curve(float64(listing.DaysOnMarket), daysOnMarketStops) * w.DaysOnMarket,
	}

	var total float64
	for _, pts := range breakdown {
		total += pts
	}
	total = clamp(total)

	res := &model.ScoreResult{
		Score:     model.Round2(total),
		Band:      bandFor(total),
		Breakdown: breakdown,
		Weights: map[string]float64{
			"gross_yield":    w.GrossYield,
			"net_yield":      w.NetYield,
			"price_per_area": w.PricePerArea,
			"days_on_market": w.DaysOnMarket,
		},
		Confidence: confidence,
	}

	zap.L().Debug("scorer: feed score computed",
		zap.String("listing_id", listing.ID),
		zap.Float64("score", res.Score),
		zap.String("band", string(res.Band)),
	)

	return res, nil
}
