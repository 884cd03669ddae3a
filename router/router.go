// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/polling-watch/cliparse"
	"github.com/danielhkuo/polling-watch/handlers"
	"github.com/danielhkuo/polling-watch/middleware"
)

func NewRouter(deps handlers.Deps, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	submissionHandler := handlers.NewSubmissionHandler(deps, cfg)
	resultsHandler := handlers.NewResultsHandler(deps, cfg)
	viewsHandler := handlers.NewViewsHandler(deps, cfg)
	candidateHandler := handlers.NewCandidateHandler(deps, cfg)
	incidentHandler := handlers.NewIncidentHandler(deps, cfg)
	feedHandler := handlers.NewFeedHandler(deps, cfg)
	agentHandler := handlers.NewAgentHandler(deps, cfg)

	public := middleware.WithLogging
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.ElectionID, cfg.AdminKeySalt, next))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
	}

	// Reference data (public)
	mux.HandleFunc("GET /directory", public(viewsHandler.GetDirectory))
	mux.HandleFunc("GET /candidates", public(candidateHandler.ListCandidates))

	// Agent submissions (X-Agent-Token checked against the body's polling unit)
	mux.HandleFunc("POST /submissions/accreditation", public(submissionHandler.RecordAccreditation))
	mux.HandleFunc("POST /submissions/results", public(submissionHandler.RecordResults))
	mux.HandleFunc("POST /incidents", public(incidentHandler.ReportIncident))

	// Agent tokens
	mux.HandleFunc("POST /admin/agent-tokens", admin(agentHandler.IssueToken))

	// Result records
	mux.HandleFunc("GET /results", admin(resultsHandler.ListResults))
	mux.HandleFunc("PUT /results/{id}", admin(resultsHandler.UpdateResult))
	mux.HandleFunc("DELETE /results/{id}", admin(resultsHandler.DeleteResult))
	mux.HandleFunc("POST /results/{id}/edit", admin(resultsHandler.EditResult))
	mux.HandleFunc("POST /results/{id}/verify", admin(resultsHandler.VerifyResult))
	mux.HandleFunc("POST /results/{id}/cancel", admin(resultsHandler.CancelResult))
	mux.HandleFunc("POST /results/bulk-status", admin(resultsHandler.BulkStatus))
	mux.HandleFunc("POST /results/bulk-delete", admin(resultsHandler.BulkDelete))

	// Derived views
	mux.HandleFunc("GET /dashboard", admin(viewsHandler.Dashboard))
	mux.HandleFunc("GET /stats", admin(viewsHandler.GetStats))
	mux.HandleFunc("GET /cancelled-votes", admin(viewsHandler.GetCancelledVotes))
	mux.HandleFunc("GET /over-voting", admin(viewsHandler.GetOverVoting))
	mux.HandleFunc("GET /coverage", admin(viewsHandler.GetCoverage))
	mux.HandleFunc("GET /distribution", admin(viewsHandler.GetDistribution))
	mux.HandleFunc("GET /report", admin(viewsHandler.GetReport))

	// Candidates
	mux.HandleFunc("POST /candidates", admin(candidateHandler.AddCandidate))
	mux.HandleFunc("DELETE /candidates/{id}", admin(candidateHandler.DeleteCandidate))

	// Incidents
	mux.HandleFunc("GET /incidents", admin(incidentHandler.ListIncidents))
	mux.HandleFunc("POST /incidents/{id}/status", admin(incidentHandler.UpdateStatus))
	mux.HandleFunc("POST /incidents/bulk-status", admin(incidentHandler.BulkStatus))
	mux.HandleFunc("POST /incidents/bulk-delete", admin(incidentHandler.BulkDelete))

	// Live feed
	mux.HandleFunc("GET /feed", admin(feedHandler.GetFeed))
	mux.HandleFunc("POST /feed/dismiss", admin(feedHandler.DismissAlert))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("polling-watch API v1"))
	})

	return mux
}
