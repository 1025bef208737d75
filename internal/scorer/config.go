package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/yieldpilot/underwrite-cli/internal/config"
)

// DefaultFeedWeights returns the documented feed-score weights (sum = 100).
func DefaultFeedWeights() config.FeedWeights {
	return config.FeedWeights{
		GrossYield:   35,
		NetYield:     30,
		PricePerArea: 20,
		DaysOnMarket: 15,
	}
}

// DefaultDealWeights returns the documented deal-score weights (sum = 1.0).
// The financial bucket internally averages its yield/cashflow/DSCR/ROI
// sub-scores unweighted; that split is tunable policy, not a business law.
func DefaultDealWeights() config.DealWeights {
	return config.DealWeights{
		Financial: 0.40,
		Value:     0.20,
		Demand:    0.15,
		Risk:      0.15,
		EPC:       0.10,
	}
}

// FeedWeightSum returns the total of the feed weights.
func FeedWeightSum(w config.FeedWeights) float64 {
	return w.GrossYield + w.NetYield + w.PricePerArea + w.DaysOnMarket
}

// DealWeightSum returns the total of the deal weights.
func DealWeightSum(w config.DealWeights) float64 {
	return w.Financial + w.Value + w.Demand + w.Risk + w.EPC
}

// ValidateFeedWeights checks the feed weight table is usable: every weight
// non-negative and a total of 100.
func ValidateFeedWeights(w config.FeedWeights) error {
	var errs []string
	for name, v := range map[string]float64{
		"gross_yield":    w.GrossYield,
		"net_yield":      w.NetYield,
		"price_per_area": w.PricePerArea,
		"days_on_market": w.DaysOnMarket,
	} {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}
	if sum := FeedWeightSum(w); math.Abs(sum-100) > 1e-9 {
		errs = append(errs, fmt.Sprintf("weights must sum to 100, got %.4f", sum))
	}
	if len(errs) > 0 {
		return eris.Errorf("scorer: feed weight validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ValidateDealWeights checks the deal weight table: every weight
// non-negative and a total of 1.0.
func ValidateDealWeights(w config.DealWeights) error {
	var errs []string
	for name, v := range map[string]float64{
		"financial": w.Financial,
		"value":     w.Value,
		"demand":    w.Demand,
		"risk":      w.Risk,
		"epc":       w.EPC,
	} {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}
	if sum := DealWeightSum(w); math.Abs(sum-1.0) > 1e-9 {
		errs = append(errs, fmt.Sprintf("weights must sum to 1.0, got %.6f", sum))
	}
	if len(errs) > 0 {
		return eris.Errorf("scorer: deal weight validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
