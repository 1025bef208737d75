// Package underwrite orchestrates a full underwriting pass over one
// listing: regional assumption defaults, KPI computation, compliance
// checks and the deal-mode score, assembled into a reproducible run
// record.
package underwrite

import (
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/yieldpilot/underwrite-cli/internal/compliance"
	"github.com/yieldpilot/underwrite-cli/internal/config"
	"github.com/yieldpilot/underwrite-cli/internal/kpi"
	"github.com/yieldpilot/underwrite-cli/internal/model"
	"github.com/yieldpilot/underwrite-cli/internal/regional"
	"github.com/yieldpilot/underwrite-cli/internal/scorer"
)

// Request carries the inputs for one underwriting run. Assumption fields
// left at zero are filled from regional defaults for the listing's region.
type Request struct {
	Listing     model.Listing     `json:"listing"`
	MonthlyRent float64           `json:"monthly_rent"`
	Assumptions model.Assumptions `json:"assumptions"`
	Enrichment  model.Enrichment  `json:"enrichment,omitempty"`
}

// Result is a completed underwriting pass. It extends the persisted run
// with the compliance report, which is recomputable and not stored.
type Result struct {
	Run        *model.UnderwriteRun    `json:"run"`
	Compliance *model.ComplianceReport `json:"compliance"`
}

// Run executes the underwriting pipeline for one listing. When the
// request carries no rent, the enrichment rent estimate is used instead.
func Run(req Request, weights config.DealWeights) (*Result, error) {
	if req.Listing.Price <= 0 {
		return nil, eris.Errorf("underwrite: listing %s has no price", req.Listing.ID)
	}

	rent := req.MonthlyRent
	if rent <= 0 && req.Enrichment.RentEstimate != nil {
		rent = req.Enrichment.RentEstimate.Value
	}
	if rent <= 0 {
		return nil, eris.Errorf("underwrite: listing %s has no rent and no rent estimate", req.Listing.ID)
	}

	assumptions := regional.Merge(req.Assumptions, req.Listing.Region)

	kpis, err := kpi.Compute(req.Listing.Price, rent, assumptions)
	if err != nil {
		return nil, eris.Wrapf(err, "underwrite: listing %s", req.Listing.ID)
	}

	report := compliance.Check(req.Listing, req.Enrichment)

	score, err := scorer.DealScore(kpis, req.Enrichment, report, weights)
	if err != nil {
		return nil, eris.Wrapf(err, "underwrite: listing %s", req.Listing.ID)
	}

	run := &model.UnderwriteRun{
		ID:              uuid.New().String(),
		Listing:         req.Listing,
		MonthlyRent:     rent,
		Assumptions:     assumptions,
		AssumptionsHash: assumptions.ContentHash(),
		KPIs:            kpis,
		Score:           score,
		CreatedAt:       time.Now().UTC(),
	}

	zap.L().Debug("underwrite complete",
		zap.String("listing", req.Listing.ID),
		zap.Float64("score", score.Score),
		zap.String("band", string(score.Band)),
	)
	return &Result{Run: run, Compliance: report}, nil
}

// CompleteDeals fills in missing KPI sets so callers can submit raw
// listing/rent/assumption triples to the portfolio and scenario layers.
func CompleteDeals(deals []model.Deal) ([]model.Deal, error) {
	out := make([]model.Deal, len(deals))
	for i, d := range deals {
		if d.KPIs == nil {
			d.Assumptions = regional.Merge(d.Assumptions, d.Listing.Region)
			kpis, err := kpi.Compute(d.Listing.Price, d.MonthlyRent, d.Assumptions)
			if err != nil {
				return nil, eris.Wrapf(err, "underwrite: deal %d (%s)", i, d.Listing.ID)
			}
			d.KPIs = kpis
		}
		out[i] = d
	}
	return out, nil
}
