// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/polling-watch/auth"
	"github.com/danielhkuo/polling-watch/cliparse"
	"github.com/danielhkuo/polling-watch/middleware"
	"github.com/danielhkuo/polling-watch/models"
)

type AgentHandler struct {
	deps Deps
	cfg  cliparse.Config
}

func NewAgentHandler(deps Deps, cfg cliparse.Config) *AgentHandler {
	return &AgentHandler{deps: deps, cfg: cfg}
}

// IssueToken handles POST /admin/agent-tokens
// Tokens can be issued for units outside the directory; their records fall
// back to the name-derived location.
func (h *AgentHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req models.AgentTokenRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	pu := strings.TrimSpace(req.PollingUnit)
	if pu == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "polling_unit is required")
		return
	}

	if _, known := h.deps.Store.Directory().Lookup(pu); !known {
		slog.Warn("agent token issued for unit outside directory", "polling_unit", pu)
	} else {
		slog.Info("agent token issued", "polling_unit", pu)
	}

	middleware.JSONResponse(w, http.StatusCreated, models.AgentTokenResponse{
		PollingUnit: pu,
		AgentToken:  auth.GenerateAgentToken(pu, h.cfg.AdminKeySalt),
	})
}
