// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package incidents keeps field incident reports for the session, newest
// first.
package incidents

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/danielhkuo/polling-watch/clock"
	"github.com/danielhkuo/polling-watch/models"
)

var (
	ErrInvalidStatus = errors.New("invalid incident status")
	ErrMissingField  = errors.New("polling unit and type are required")
)

type Registry struct {
	mu        sync.RWMutex
	clock     clock.Clock
	incidents []models.Incident
}

func New(c clock.Clock) *Registry {
	if c == nil {
		c = clock.System{}
	}
	return &Registry{clock: c}
}

// Report files a Pending incident and returns it.
func (r *Registry) Report(req models.ReportIncidentRequest) (models.Incident, error) {
	pu := strings.TrimSpace(req.PollingUnit)
	kind := strings.TrimSpace(req.Type)
	if pu == "" || kind == "" {
		return models.Incident{}, ErrMissingField
	}

	inc := models.Incident{
		ID:          uuid.NewString(),
		PollingUnit: pu,
		Type:        kind,
		Status:      models.IncidentPending,
		ImageURL:    req.ImageURL,
		Time:        r.clock.Now(),
	}

	r.mu.Lock()
	r.incidents = append([]models.Incident{inc}, r.incidents...)
	r.mu.Unlock()
	return inc, nil
}

// List returns every incident, newest first.
func (r *Registry) List() []models.Incident {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Incident{}, r.incidents...)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.incidents)
}

// UpdateStatus sets the status of one incident. It reports false when the
// ID is unknown.
func (r *Registry) UpdateStatus(id string, status models.IncidentStatus) (bool, error) {
	n, err := r.BulkUpdateStatus([]string{id}, status)
	return n == 1, err
}

// BulkUpdateStatus sets status on every listed incident and returns how many
// changed. Unknown IDs are skipped.
func (r *Registry) BulkUpdateStatus(ids []string, status models.IncidentStatus) (int, error) {
	if !status.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	want := toSet(ids)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for i := range r.incidents {
		if want[r.incidents[i].ID] {
			r.incidents[i].Status = status
			n++
		}
	}
	return n, nil
}

// BulkDelete removes the listed incidents and returns how many were removed.
func (r *Registry) BulkDelete(ids []string) int {
	drop := toSet(ids)

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]models.Incident, 0, len(r.incidents))
	for _, inc := range r.incidents {
		if !drop[inc.ID] {
			kept = append(kept, inc)
		}
	}
	n := len(r.incidents) - len(kept)
	r.incidents = kept
	return n
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
