// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package candidates keeps the admin-managed candidate list in insertion
// order. Removing a candidate leaves existing scores untouched; totals simply
// stop counting them.
package candidates

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/danielhkuo/polling-watch/models"
)

var (
	ErrDuplicateCandidate = errors.New("candidate already exists")
	ErrNameRequired       = errors.New("candidate name is required")
)

type Registry struct {
	mu         sync.RWMutex
	candidates []models.Candidate
}

// New returns a registry seeded with initial, which may be empty.
func New(initial ...models.Candidate) (*Registry, error) {
	r := &Registry{}
	for _, c := range initial {
		if _, err := r.Add(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add appends a candidate. An empty ID is replaced with a generated one.
func (r *Registry) Add(c models.Candidate) (models.Candidate, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Party = strings.TrimSpace(c.Party)
	c.ID = strings.TrimSpace(c.ID)
	if c.Name == "" {
		return models.Candidate{}, ErrNameRequired
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(c.ID) >= 0 {
		return models.Candidate{}, fmt.Errorf("%w: %s", ErrDuplicateCandidate, c.ID)
	}
	r.candidates = append(r.candidates, c)
	return c, nil
}

// Delete removes a candidate and reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return false
	}
	r.candidates = append(r.candidates[:i], r.candidates[i+1:]...)
	return true
}

func (r *Registry) Get(id string) (models.Candidate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexLocked(id)
	if i < 0 {
		return models.Candidate{}, false
	}
	return r.candidates[i], true
}

func (r *Registry) List() []models.Candidate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Candidate{}, r.candidates...)
}

func (r *Registry) indexLocked(id string) int {
	for i, c := range r.candidates {
		if c.ID == id {
			return i
		}
	}
	return -1
}
