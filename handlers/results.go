// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/polling-watch/aggregate"
	"github.com/danielhkuo/polling-watch/cliparse"
	"github.com/danielhkuo/polling-watch/metrics"
	"github.com/danielhkuo/polling-watch/middleware"
	"github.com/danielhkuo/polling-watch/models"
	"github.com/danielhkuo/polling-watch/reconcile"
	"github.com/danielhkuo/polling-watch/store"
)

type ResultsHandler struct {
	deps Deps
	cfg  cliparse.Config
}

func NewResultsHandler(deps Deps, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{deps: deps, cfg: cfg}
}

// ListResults handles GET /results?date=&lga=&ward=&q=
func (h *ResultsHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ResultFilter{
		Date:  q.Get("date"),
		LGA:   q.Get("lga"),
		Ward:  q.Get("ward"),
		Query: q.Get("q"),
	}
	if filter.Date != "" {
		if _, err := time.Parse("2006-01-02", filter.Date); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	records := aggregate.Filter(h.deps.Store.Records(), filter)

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Results: records,
		Totals:  aggregate.Totals(records, h.deps.Candidates.List()),
	})
}

// UpdateResult handles PUT /results/{id}
// The record is replaced as sent; status is not re-derived.
func (h *ResultsHandler) UpdateResult(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var rec models.ResultRecord
	if err := middleware.ParseJSONBody(r, &rec); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	rec.ID = id

	found, err := h.deps.Store.UpdateSingle(rec)
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Result record not found")
		return
	}
	if err != nil {
		writeRecordError(w, err)
		return
	}

	h.deps.Metrics.BulkApplied(metrics.OpUpdate, 1)
	slog.Info("result record replaced", "id", id, "polling_unit", rec.PollingUnit, "status", rec.Status)

	updated, _ := h.deps.Store.Get(id)
	middleware.JSONResponse(w, http.StatusOK, updated)
}

// EditResult handles POST /results/{id}/edit
// Unlike UpdateResult, votes cast and status are re-derived.
func (h *ResultsHandler) EditResult(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var rec models.ResultRecord
	if err := middleware.ParseJSONBody(r, &rec); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	rec.ID = id

	updated, found, err := h.deps.Engine.EditRecord(rec)
	if errors.Is(err, reconcile.ErrPollingUnitRequired) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "polling_unit is required")
		return
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Result record not found")
		return
	}
	if err != nil {
		writeRecordError(w, err)
		return
	}

	h.deps.Feed.Post(fmt.Sprintf("Result for %s edited by admin.", updated.PollingUnit))

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// VerifyResult handles POST /results/{id}/verify
func (h *ResultsHandler) VerifyResult(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.StatusVerified)
}

// CancelResult handles POST /results/{id}/cancel
func (h *ResultsHandler) CancelResult(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.StatusCancelled)
}

func (h *ResultsHandler) setStatus(w http.ResponseWriter, r *http.Request, status models.ResultStatus) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	n, err := h.deps.Store.BulkSetStatus([]string{id}, status)
	if err != nil {
		writeRecordError(w, err)
		return
	}
	if n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Result record not found")
		return
	}

	h.deps.Metrics.BulkApplied(metrics.OpSetStatus, n)
	rec, _ := h.deps.Store.Get(id)
	slog.Info("result status set", "id", id, "polling_unit", rec.PollingUnit, "status", status)
	h.deps.Feed.Post(fmt.Sprintf("Result for %s marked %s.", rec.PollingUnit, status))

	middleware.JSONResponse(w, http.StatusOK, rec)
}

// DeleteResult handles DELETE /results/{id}
func (h *ResultsHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	if !h.deps.Store.DeleteSingle(id) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Result record not found")
		return
	}

	h.deps.Metrics.BulkApplied(metrics.OpDelete, 1)
	slog.Info("result record deleted", "id", id)

	middleware.JSONResponse(w, http.StatusOK, models.BulkResponse{
		Affected: 1,
		Message:  "Result record deleted",
	})
}

// BulkStatus handles POST /results/bulk-status
func (h *ResultsHandler) BulkStatus(w http.ResponseWriter, r *http.Request) {
	var req models.BulkStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	n, err := h.deps.Store.BulkSetStatus(trimIDs(req.IDs), req.Status)
	if err != nil {
		writeRecordError(w, err)
		return
	}

	h.deps.Metrics.BulkApplied(metrics.OpSetStatus, n)
	slog.Info("bulk status applied", "requested", len(req.IDs), "affected", n, "status", req.Status)
	if n > 0 {
		h.deps.Feed.Post(fmt.Sprintf("%d results marked %s.", n, req.Status))
	}

	middleware.JSONResponse(w, http.StatusOK, models.BulkResponse{
		Affected: n,
		Message:  fmt.Sprintf("%d records set to %s", n, req.Status),
	})
}

// BulkDelete handles POST /results/bulk-delete
func (h *ResultsHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req models.BulkIDsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	n := h.deps.Store.BulkDelete(trimIDs(req.IDs))

	h.deps.Metrics.BulkApplied(metrics.OpDelete, n)
	slog.Info("bulk delete applied", "requested", len(req.IDs), "affected", n)

	middleware.JSONResponse(w, http.StatusOK, models.BulkResponse{
		Affected: n,
		Message:  fmt.Sprintf("%d records deleted", n),
	})
}

// writeRecordError maps store errors to HTTP responses.
func writeRecordError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidStatus):
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be Pending, Verified, Disputed or Cancelled")
	case errors.Is(err, store.ErrPollingUnitRequired):
		middleware.ErrorResponse(w, http.StatusBadRequest, "polling_unit is required")
	case errors.Is(err, store.ErrPollingUnitTaken):
		middleware.ErrorResponse(w, http.StatusConflict, "Polling unit already has a result record")
	default:
		slog.Error("failed to update result record", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update result record")
	}
}
