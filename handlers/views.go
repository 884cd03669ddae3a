// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/polling-watch/aggregate"
	"github.com/danielhkuo/polling-watch/cliparse"
	"github.com/danielhkuo/polling-watch/middleware"
	"github.com/danielhkuo/polling-watch/models"
	"github.com/danielhkuo/polling-watch/report"
)

// ViewsHandler serves the derived views of the session. Every response is
// computed from one store version.
type ViewsHandler struct {
	deps Deps
	cfg  cliparse.Config
}

func NewViewsHandler(deps Deps, cfg cliparse.Config) *ViewsHandler {
	return &ViewsHandler{deps: deps, cfg: cfg}
}

// Dashboard handles GET /dashboard
func (h *ViewsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	v := h.deps.Store.Views()

	middleware.JSONResponse(w, http.StatusOK, models.DashboardResponse{
		Stats:            v.Summary.Stats,
		Coverage:         v.Summary.Coverage,
		CancelledVotes:   v.Summary.CancelledVotes,
		OverVotingAlerts: h.deps.Feed.ActiveOverVoting(v.Summary.OverVoting),
		Candidates:       aggregate.CandidateTotals(v.Records, h.deps.Candidates.List()),
		ResultCount:      len(v.Records),
		IncidentCount:    h.deps.Incidents.Len(),
		Version:          v.Version,
	})
}

// GetStats handles GET /stats
func (h *ViewsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.deps.Store.Summary().Stats)
}

// GetCancelledVotes handles GET /cancelled-votes
func (h *ViewsHandler) GetCancelledVotes(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.deps.Store.Summary().CancelledVotes)
}

// GetOverVoting handles GET /over-voting
// Dismissed alerts are still listed here.
func (h *ViewsHandler) GetOverVoting(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.deps.Store.Summary().OverVoting)
}

// GetCoverage handles GET /coverage
func (h *ViewsHandler) GetCoverage(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.deps.Store.Summary().Coverage)
}

// GetDistribution handles GET /distribution?lga=
func (h *ViewsHandler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	lga := r.URL.Query().Get("lga")
	dist := aggregate.Distribution(h.deps.Store.Records(), h.deps.Candidates.List(), lga)
	middleware.JSONResponse(w, http.StatusOK, dist)
}

// GetReport handles GET /report
func (h *ViewsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	v := h.deps.Store.Views()
	data := report.Build(h.cfg.ElectionID, h.deps.now(), v.Records, v.Summary, h.deps.Candidates.List(), h.deps.Incidents.Len())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := report.Render(w, data, false); err != nil {
		slog.Error("failed to render report", "error", err)
	}
}

// GetDirectory handles GET /directory?lga=
func (h *ViewsHandler) GetDirectory(w http.ResponseWriter, r *http.Request) {
	dir := h.deps.Store.Directory()
	resp := models.DirectoryResponse{
		Units: dir.Units(),
		LGAs:  dir.LGAs(),
	}
	if lga := r.URL.Query().Get("lga"); lga != "" {
		resp.Wards = dir.Wards(lga)
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
