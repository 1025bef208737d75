package scorer

import "github.com/yieldpilot/underwrite-cli/internal/model"

// bandStop is one point on a factor curve: the factor value at a threshold.
// Stops are listed in ascending threshold order; values may rise or fall
// along the list.
type bandStop struct {
	at    float64
	value float64
}

// curve evaluates a piecewise-linear factor curve. Inputs beyond either end
// of the stop list take the end value; in between, the bracketing stops are
// interpolated linearly.
func curve(x float64, stops []bandStop) float64 {
	if len(stops) == 0 {
		return 0
	}
	if x <= stops[0].at {
		return stops[0].value
	}
	last := stops[len(stops)-1]
	if x >= last.at {
		return last.value
	}
	for i := 1; i < len(stops); i++ {
		lo, hi := stops[i-1], stops[i]
		if x <= hi.at {
			frac := (x - lo.at) / (hi.at - lo.at)
			return lo.value + frac*(hi.value-lo.value)
		}
	}
	return last.value
}

// clamp bounds a score to the 0-100 scale.
func clamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// bandFor maps a composite score to its letter band.
func bandFor(score float64) model.Band {
	switch {
	case score >= 80:
		return model.BandA
	case score >= 65:
		return model.BandB
	case score >= 50:
		return model.BandC
	case score >= 35:
		return model.BandD
	default:
		return model.BandE
	}
}
