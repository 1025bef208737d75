package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldpilot/underwrite-cli/internal/config"
	"github.com/yieldpilot/underwrite-cli/internal/model"
	"github.com/yieldpilot/underwrite-cli/internal/scorer"
	"github.com/yieldpilot/underwrite-cli/internal/store"
	"github.com/yieldpilot/underwrite-cli/internal/underwrite"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0, RateLimit: 100, RateBurst: 100},
		Scoring: config.ScoringConfig{
			Feed: scorer.DefaultFeedWeights(),
			Deal: scorer.DefaultDealWeights(),
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	return New(testConfig(), st)
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sampleListing() model.Listing {
	return model.Listing{
		ID:           "lst-1",
		Price:        300000,
		Currency:     "GBP",
		Bedrooms:     3,
		FloorAreaSqm: 95,
		PropertyType: model.PropertyTypeTerraced,
		Region:       "GB",
		DaysOnMarket: 14,
		EPC:          model.EPCBandC,
	}
}

func sampleAssumptions() model.Assumptions {
	return model.Assumptions{
		DepositPct:      25,
		InterestRatePct: 5.5,
		TermYears:       25,
		InterestOnly:    true,
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestUnderwritePersistsRun(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s.Handler(), "/v1/underwrite", underwrite.Request{
		Listing:     sampleListing(),
		MonthlyRent: 1500,
		Assumptions: sampleAssumptions(),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res underwrite.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.Run)
	assert.NotEmpty(t, res.Run.ID)
	require.NotNil(t, res.Run.KPIs)
	assert.Equal(t, 6.0, res.Run.KPIs.GrossYieldPct)
	require.NotNil(t, res.Compliance)

	// The run is readable back through the API.
	getReq := httptest.NewRequest(http.MethodGet, "/v1/runs/"+res.Run.ID, nil)
	getRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(getRec, getReq)
	assert.Equal(t, http.StatusOK, getRec.Code)

	listReq := httptest.NewRequest(http.MethodGet, "/v1/runs?listing_id=lst-1", nil)
	listRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(listRec, listReq)
	assert.Equal(t, http.StatusOK, listRec.Code)
	assert.Contains(t, listRec.Body.String(), `"count":1`)
}

func TestUnderwriteRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s.Handler(), "/v1/underwrite", underwrite.Request{
		Listing: sampleListing(), // no rent anywhere
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/underwrite", bytes.NewReader([]byte("{not json")))
	badRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(badRec, req)
	assert.Equal(t, http.StatusBadRequest, badRec.Code)
}

func TestFeedScore(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s.Handler(), "/v1/score/feed", map[string]any{
		"listing":      sampleListing(),
		"monthly_rent": 1500,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var score model.ScoreResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &score))
	assert.Greater(t, score.Score, 0.0)
	assert.NotEmpty(t, score.Band)
}

func TestDealScoreDoesNotPersist(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s.Handler(), "/v1/score/deal", underwrite.Request{
		Listing:     sampleListing(),
		MonthlyRent: 1500,
		Assumptions: sampleAssumptions(),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	listReq := httptest.NewRequest(http.MethodGet, "/v1/runs", nil)
	listRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(listRec, listReq)
	assert.Contains(t, listRec.Body.String(), `"count":0`)
}

func TestCapEx(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s.Handler(), "/v1/capex", map[string]any{
		"price":        300000,
		"monthly_rent": 1500,
		"region":       "GB",
		"assumptions":  sampleAssumptions(),
		"plan": model.CapExPlan{Lines: []model.CapExLine{
			{Item: "kitchen", Category: model.CapExCosmetic, UnitCost: 8000, Quantity: 1},
		}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"impact"`)
	assert.Contains(t, rec.Body.String(), `"adjusted"`)
}

func TestPortfolioComputesMissingKPIs(t *testing.T) {
	s := newTestServer(t)

	deal := model.Deal{
		Listing:     sampleListing(),
		MonthlyRent: 1500,
		Assumptions: sampleAssumptions(),
	}
	rec := postJSON(t, s.Handler(), "/v1/portfolio", map[string]any{
		"deals": []model.Deal{deal},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summary model.PortfolioSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.PropertyCount)
	assert.Equal(t, 300000.0, summary.TotalValue)
}

func TestScenariosUseDefaultsWhenOmitted(t *testing.T) {
	s := newTestServer(t)

	deal := model.Deal{
		Listing:     sampleListing(),
		MonthlyRent: 1500,
		Assumptions: sampleAssumptions(),
	}
	rec := postJSON(t, s.Handler(), "/v1/scenarios", map[string]any{
		"deals": []model.Deal{deal},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var results []model.ScenarioResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.Len(t, results, 4)
}

func TestGetRunNotFound(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/runs/nope", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RateLimit = 1
	cfg.Server.RateBurst = 1

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	s := New(cfg, st)

	codes := make(map[int]int)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/runs?limit=%d", i+1), nil)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		codes[rec.Code]++
	}
	assert.Positive(t, codes[http.StatusTooManyRequests])
}
