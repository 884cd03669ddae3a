// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/polling-watch/cliparse"
	"github.com/danielhkuo/polling-watch/incidents"
	"github.com/danielhkuo/polling-watch/middleware"
	"github.com/danielhkuo/polling-watch/models"
)

type IncidentHandler struct {
	deps Deps
	cfg  cliparse.Config
}

func NewIncidentHandler(deps Deps, cfg cliparse.Config) *IncidentHandler {
	return &IncidentHandler{deps: deps, cfg: cfg}
}

// ReportIncident handles POST /incidents
func (h *IncidentHandler) ReportIncident(w http.ResponseWriter, r *http.Request) {
	var req models.ReportIncidentRequest
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

	inc, err := h.deps.Incidents.Report(req)
	if errors.Is(err, incidents.ErrMissingField) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "type is required")
		return
	}
	if err != nil {
		slog.Error("failed to report incident", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to report incident")
		return
	}

	h.deps.Metrics.IncidentReported()
	slog.Info("incident reported", "incident_id", inc.ID, "polling_unit", inc.PollingUnit, "type", inc.Type)
	h.deps.Feed.Post(fmt.Sprintf("Incident reported at %s: %s.", inc.PollingUnit, inc.Type))

	middleware.JSONResponse(w, http.StatusCreated, inc)
}

// ListIncidents handles GET /incidents
func (h *IncidentHandler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.deps.Incidents.List())
}

// UpdateStatus handles POST /incidents/{id}/status
func (h *IncidentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.IncidentStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	found, err := h.deps.Incidents.UpdateStatus(id, req.Status)
	if errors.Is(err, incidents.ErrInvalidStatus) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be Pending, Resolved, Urgent or Escalated")
		return
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Incident not found")
		return
	}

	slog.Info("incident status updated", "incident_id", id, "status", req.Status)
	middleware.JSONResponse(w, http.StatusOK, models.BulkResponse{
		Affected: 1,
		Message:  fmt.Sprintf("Incident set to %s", req.Status),
	})
}

// BulkStatus handles POST /incidents/bulk-status
func (h *IncidentHandler) BulkStatus(w http.ResponseWriter, r *http.Request) {
	var req models.BulkIncidentStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	n, err := h.deps.Incidents.BulkUpdateStatus(trimIDs(req.IDs), req.Status)
	if errors.Is(err, incidents.ErrInvalidStatus) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be Pending, Resolved, Urgent or Escalated")
		return
	}

	slog.Info("incident bulk status applied", "requested", len(req.IDs), "affected", n, "status", req.Status)
	middleware.JSONResponse(w, http.StatusOK, models.BulkResponse{
		Affected: n,
		Message:  fmt.Sprintf("%d incidents set to %s", n, req.Status),
	})
}

// BulkDelete handles POST /incidents/bulk-delete
func (h *IncidentHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req models.BulkIDsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	n := h.deps.Incidents.BulkDelete(trimIDs(req.IDs))

	slog.Info("incident bulk delete applied", "requested", len(req.IDs), "affected", n)
	middleware.JSONResponse(w, http.StatusOK, models.BulkResponse{
		Affected: n,
		Message:  fmt.Sprintf("%d incidents deleted", n),
	})
}
