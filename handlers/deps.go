// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/polling-watch/alerts"
	"github.com/danielhkuo/polling-watch/auth"
	"github.com/danielhkuo/polling-watch/candidates"
	"github.com/danielhkuo/polling-watch/clock"
	"github.com/danielhkuo/polling-watch/incidents"
	"github.com/danielhkuo/polling-watch/metrics"
	"github.com/danielhkuo/polling-watch/middleware"
	"github.com/danielhkuo/polling-watch/reconcile"
	"github.com/danielhkuo/polling-watch/store"
)

// Deps are the session services shared by every handler.
type Deps struct {
	Store      *store.Store
	Engine     *reconcile.Engine
	Feed       *alerts.Feed
	Incidents  *incidents.Registry
	Candidates *candidates.Registry
	Metrics    *metrics.Metrics
	Clock      clock.Clock
}

func (d Deps) now() time.Time {
	if d.Clock == nil {
		return clock.System{}.Now()
	}
	return d.Clock.Now()
}

// authorizeAgent checks the X-Agent-Token header against pollingUnit and
// writes a 401 when it does not match.
func authorizeAgent(w http.ResponseWriter, r *http.Request, pollingUnit, salt string) bool {
	token := r.Header.Get(middleware.AgentTokenHeader)
	if err := auth.ValidateAgentToken(pollingUnit, token, salt); err != nil {
		slog.Warn("agent token rejected",
			"polling_unit", pollingUnit,
			"client_ip", middleware.GetClientIP(r),
		)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid agent token")
		return false
	}
	return true
}

func trimIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
