// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/polling-watch/candidates"
	"github.com/danielhkuo/polling-watch/cliparse"
	"github.com/danielhkuo/polling-watch/middleware"
	"github.com/danielhkuo/polling-watch/models"
)

type CandidateHandler struct {
	deps Deps
	cfg  cliparse.Config
}

func NewCandidateHandler(deps Deps, cfg cliparse.Config) *CandidateHandler {
	return &CandidateHandler{deps: deps, cfg: cfg}
}

// ListCandidates handles GET /candidates
func (h *CandidateHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.deps.Candidates.List())
}

// AddCandidate handles POST /candidates
func (h *CandidateHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	c, err := h.deps.Candidates.Add(models.Candidate{ID: req.ID, Name: req.Name, Party: req.Party})
	switch {
	case errors.Is(err, candidates.ErrNameRequired):
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	case errors.Is(err, candidates.ErrDuplicateCandidate):
		middleware.ErrorResponse(w, http.StatusConflict, "Candidate already exists")
		return
	case err != nil:
		slog.Error("failed to add candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add candidate")
		return
	}

	slog.Info("candidate added", "candidate_id", c.ID, "name", c.Name, "party", c.Party)
	middleware.JSONResponse(w, http.StatusCreated, c)
}

// DeleteCandidate handles DELETE /candidates/{id}
// Scores already recorded for the candidate are kept.
func (h *CandidateHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.deps.Candidates.Delete(id) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	slog.Info("candidate deleted", "candidate_id", id)
	middleware.JSONResponse(w, http.StatusOK, models.BulkResponse{
		Affected: 1,
		Message:  "Candidate deleted",
	})
}
