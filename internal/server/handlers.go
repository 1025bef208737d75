package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yieldpilot/underwrite-cli/internal/capex"
	"github.com/yieldpilot/underwrite-cli/internal/kpi"
	"github.com/yieldpilot/underwrite-cli/internal/model"
	"github.com/yieldpilot/underwrite-cli/internal/portfolio"
	"github.com/yieldpilot/underwrite-cli/internal/regional"
	"github.com/yieldpilot/underwrite-cli/internal/scenario"
	"github.com/yieldpilot/underwrite-cli/internal/scorer"
	"github.com/yieldpilot/underwrite-cli/internal/store"
	"github.com/yieldpilot/underwrite-cli/internal/underwrite"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "store": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUnderwrite(w http.ResponseWriter, r *http.Request) {
	var req underwrite.Request
	if !decode(w, r, &req) {
		return
	}

	res, err := underwrite.Run(req, s.cfg.Scoring.Deal)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx := r.Context()
	if req.Listing.ID != "" {
		if err := s.store.SaveListing(ctx, req.Listing); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := s.store.SaveRun(ctx, res.Run); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleFeedScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Listing     model.Listing `json:"listing"`
		MonthlyRent float64       `json:"monthly_rent"`
	}
	if !decode(w, r, &req) {
		return
	}

	score, err := scorer.FeedScore(req.Listing, req.MonthlyRent, s.cfg.Scoring.Feed)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, score)
}

func (s *Server) handleDealScore(w http.ResponseWriter, r *http.Request) {
	var req underwrite.Request
	if !decode(w, r, &req) {
		return
	}

	// Same pipeline as underwrite, but nothing is persisted.
	res, err := underwrite.Run(req, s.cfg.Scoring.Deal)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"score":      res.Run.Score,
		"kpis":       res.Run.KPIs,
		"compliance": res.Compliance,
	})
}

func (s *Server) handleCapEx(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Price       float64           `json:"price"`
		MonthlyRent float64           `json:"monthly_rent"`
		Region      string            `json:"region"`
		Assumptions model.Assumptions `json:"assumptions"`
		Plan        model.CapExPlan   `json:"plan"`
	}
	if !decode(w, r, &req) {
		return
	}

	assumptions := regional.Merge(req.Assumptions, req.Region)
	baseline, err := kpi.Compute(req.Price, req.MonthlyRent, assumptions)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	impact, adjusted, err := capex.Apply(req.Plan, baseline, req.Price)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"impact":   impact,
		"baseline": baseline,
		"adjusted": adjusted,
	})
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Deals     []model.Deal               `json:"deals"`
		Scenarios []model.ScenarioDefinition `json:"scenarios,omitempty"`
	}
	if !decode(w, r, &req) {
		return
	}

	deals, err := underwrite.CompleteDeals(req.Deals)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	results, err := scenario.Run(r.Context(), deals, req.Scenarios)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Deals []model.Deal `json:"deals"`
	}
	if !decode(w, r, &req) {
		return
	}

	deals, err := underwrite.CompleteDeals(req.Deals)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	summary, err := portfolio.Aggregate(deals)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	filter := store.RunFilter{
		ListingID:       r.URL.Query().Get("listing_id"),
		AssumptionsHash: r.URL.Query().Get("assumptions_hash"),
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	runs, err := s.store.ListRuns(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	filter := store.ListingFilter{Region: r.URL.Query().Get("region")}
	filter.MaxPrice, _ = strconv.ParseFloat(r.URL.Query().Get("max_price"), 64)
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	listings, err := s.store.ListListings(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"listings": listings, "count": len(listings)})
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := s.store.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, listing)
}
