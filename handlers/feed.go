// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/danielhkuo/polling-watch/cliparse"
	"github.com/danielhkuo/polling-watch/middleware"
	"github.com/danielhkuo/polling-watch/models"
)

type FeedHandler struct {
	deps Deps
	cfg  cliparse.Config
}

func NewFeedHandler(deps Deps, cfg cliparse.Config) *FeedHandler {
	return &FeedHandler{deps: deps, cfg: cfg}
}

// GetFeed handles GET /feed
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.FeedResponse{
		Events:        h.deps.Feed.Events(),
		Notifications: h.deps.Feed.Notifications(),
	})
}

// DismissAlert handles POST /feed/dismiss
// The alert comes back if the unit is flagged again.
func (h *FeedHandler) DismissAlert(w http.ResponseWriter, r *http.Request) {
	var req models.DismissAlertRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	pu := strings.TrimSpace(req.PollingUnit)
	if pu == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "polling_unit is required")
		return
	}

	h.deps.Feed.Dismiss(pu)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"polling_unit": pu,
		"status":       "dismissed",
	})
}
