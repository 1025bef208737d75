package model

// Band is a letter grade derived from a numeric score at fixed cutoffs.
type Band string

const (
	BandA Band = "A"
	BandB Band = "B"
	BandC Band = "C"
	BandD Band = "D"
	BandE Band = "E"
)

// ScoreConfidence distinguishes a fully-informed score from one computed
// with neutral defaults substituted for missing enrichment.
type ScoreConfidence string

const (
	ConfidenceFull    ScoreConfidence = "full"
	ConfidenceReduced ScoreConfidence = "reduced"
)

// ScoreResult is the output of either scoring mode: a clamped 0-100 score,
// its band, ordered narrative strings, and the weights plus per-factor
// breakdown that explain how the number was reached.
type ScoreResult struct {
	Score      float64            `json:"score"`
	Band       Band               `json:"band"`
	Drivers    []string           `json:"drivers,omitempty"`
	Risks      []string           `json:"risks,omitempty"`
	Breakdown  map[string]float64 `json:"breakdown"` // factor -> weighted points contributed
	Weights    map[string]float64 `json:"weights"`   // factor -> declared weight
	Confidence ScoreConfidence    `json:"confidence"`
}
