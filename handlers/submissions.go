// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/polling-watch/cliparse"
	"github.com/danielhkuo/polling-watch/middleware"
	"github.com/danielhkuo/polling-watch/models"
)

type SubmissionHandler struct {
	deps Deps
	cfg  cliparse.Config
}

func NewSubmissionHandler(deps Deps, cfg cliparse.Config) *SubmissionHandler {
	return &SubmissionHandler{deps: deps, cfg: cfg}
}

// RecordAccreditation handles POST /submissions/accreditation
func (h *SubmissionHandler) RecordAccreditation(w http.ResponseWriter, r *http.Request) {
	var req models.AccreditationSubmission
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.PollingUnit = strings.TrimSpace(req.PollingUnit)
	if req.PollingUnit == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "polling_unit is required")
		return
	}
	if !authorizeAgent(w, r, req.PollingUnit, h.cfg.AdminKeySalt) {
		return
	}

	rec, err := h.deps.Engine.RecordAccreditation(req)
	if err != nil {
		slog.Error("failed to record accreditation", "polling_unit", req.PollingUnit, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record accreditation")
		return
	}

	h.deps.Feed.Post(fmt.Sprintf("Accreditation received from %s: %s accredited of %s registered.",
		rec.PollingUnit, humanize.Comma(int64(rec.AccreditedVoters)), humanize.Comma(int64(rec.RegisteredVoters))))

	middleware.JSONResponse(w, http.StatusOK, rec)
}

// RecordResults handles POST /submissions/results
func (h *SubmissionHandler) RecordResults(w http.ResponseWriter, r *http.Request) {
	var req models.ResultsSubmission
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.PollingUnit = strings.TrimSpace(req.PollingUnit)
	if req.PollingUnit == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "polling_unit is required")
		return
	}
	if !authorizeAgent(w, r, req.PollingUnit, h.cfg.AdminKeySalt) {
		return
	}

	rec, err := h.deps.Engine.RecordResults(req)
	if err != nil {
		slog.Error("failed to record results", "polling_unit", req.PollingUnit, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record results")
		return
	}

	h.deps.Feed.Post(fmt.Sprintf("Results received from %s: %s votes cast.",
		rec.PollingUnit, humanize.Comma(int64(rec.VotesCast))))

	middleware.JSONResponse(w, http.StatusOK, rec)
}
