package underwrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldpilot/underwrite-cli/internal/model"
	"github.com/yieldpilot/underwrite-cli/internal/scorer"
)

func sampleRequest() Request {
	return Request{
		Listing: model.Listing{
			ID:           "lst-1",
			Price:        300000,
			Currency:     "GBP",
			Bedrooms:     3,
			PropertyType: model.PropertyTypeTerraced,
			Region:       "GB",
			EPC:          model.EPCBandC,
		},
		MonthlyRent: 1500,
		Assumptions: model.Assumptions{
			DepositPct:      25,
			InterestRatePct: 5.5,
			TermYears:       25,
			InterestOnly:    true,
		},
	}
}

func TestRunProducesCompleteRecord(t *testing.T) {
	res, err := Run(sampleRequest(), scorer.DefaultDealWeights())
	require.NoError(t, err)

	run := res.Run
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())
	assert.Equal(t, run.Assumptions.ContentHash(), run.AssumptionsHash)

	require.NotNil(t, run.KPIs)
	assert.Equal(t, 6.0, run.KPIs.GrossYieldPct)

	require.NotNil(t, run.Score)
	assert.Greater(t, run.Score.Score, 0.0)

	require.NotNil(t, res.Compliance)
	// No flood data in the request, so only the EPC and HMO rules report.
	require.Len(t, res.Compliance.Checks, 2)
	types := []string{res.Compliance.Checks[0].Type, res.Compliance.Checks[1].Type}
	assert.Contains(t, types, "epc_minimum")
	assert.Contains(t, types, "hmo_licence")
}

func TestRunFillsRegionalDefaults(t *testing.T) {
	req := sampleRequest()
	req.Assumptions.VoidsPct = 0
	req.Assumptions.MaintenancePct = 0

	res, err := Run(req, scorer.DefaultDealWeights())
	require.NoError(t, err)

	// GB defaults apply to fields left at zero.
	assert.Equal(t, 5.0, res.Run.Assumptions.VoidsPct)
	assert.Equal(t, 8.0, res.Run.Assumptions.MaintenancePct)
}

func TestRunUsesRentEstimateWhenRentMissing(t *testing.T) {
	req := sampleRequest()
	req.MonthlyRent = 0
	req.Enrichment.RentEstimate = &model.EnrichmentValue{
		Value:      1400,
		Confidence: 0.8,
		Provenance: model.ProvenanceVerified,
	}

	res, err := Run(req, scorer.DefaultDealWeights())
	require.NoError(t, err)
	assert.Equal(t, 1400.0, res.Run.MonthlyRent)
}

func TestRunDeterministicHash(t *testing.T) {
	a, err := Run(sampleRequest(), scorer.DefaultDealWeights())
	require.NoError(t, err)
	b, err := Run(sampleRequest(), scorer.DefaultDealWeights())
	require.NoError(t, err)

	assert.Equal(t, a.Run.AssumptionsHash, b.Run.AssumptionsHash)
	assert.Equal(t, a.Run.KPIs, b.Run.KPIs)
	assert.NotEqual(t, a.Run.ID, b.Run.ID)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		want   string
	}{
		{"no price", func(r *Request) { r.Listing.Price = 0 }, "no price"},
		{"no rent", func(r *Request) { r.MonthlyRent = 0 }, "no rent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sampleRequest()
			tt.mutate(&req)
			_, err := Run(req, scorer.DefaultDealWeights())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
