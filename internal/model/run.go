package model

import "time"

// UnderwriteRun is one persisted underwriting computation: the inputs, the
// hash that makes the result reproducible, and the outputs. Runs are
// written after the pure computation completes; there is no in-flight
// state to track.
type UnderwriteRun struct {
	ID              string       `json:"id"`
	Listing         Listing      `json:"listing"`
	MonthlyRent     float64      `json:"monthly_rent"`
	Assumptions     Assumptions  `json:"assumptions"`
	AssumptionsHash string       `json:"assumptions_hash"`
	KPIs            *KPISet      `json:"kpis,omitempty"`
	Score           *ScoreResult `json:"score,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}
