// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/polling-watch/aggregate"
	"github.com/danielhkuo/polling-watch/clock"
	"github.com/danielhkuo/polling-watch/directory"
	"github.com/danielhkuo/polling-watch/models"
)

// Views is a consistent copy of the records and their derived views at one
// store version.
type Views struct {
	Version uint64
	Records []models.ResultRecord
	Summary models.Summary
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for record timestamps.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithIDGenerator sets the function used to mint record IDs.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// Store owns every result record of the session. All writes go through
// Update or the bulk operations; readers only ever see copies.
type Store struct {
	mu      sync.RWMutex
	records []*models.ResultRecord
	byUnit  map[string]*models.ResultRecord
	byID    map[string]*models.ResultRecord
	summary models.Summary
	version uint64

	dir   *directory.Directory
	clock clock.Clock
	newID func() string

	// held from commit until subscribers return so deliveries stay ordered
	notifyMu    sync.Mutex
	subMu       sync.Mutex
	subscribers []subscription
	nextSub     int
}

type subscription struct {
	id int
	fn func(Views)
}

// New creates an empty store resolving locations through dir.
func New(dir *directory.Directory, opts ...Option) *Store {
	s := &Store{
		byUnit: make(map[string]*models.ResultRecord),
		byID:   make(map[string]*models.ResultRecord),
		dir:    dir,
		clock:  clock.System{},
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.summary = aggregate.Summarize(nil, dir)
	return s
}

// Directory returns the polling-unit directory the store enriches with.
func (s *Store) Directory() *directory.Directory {
	return s.dir
}

// Tx is the write handle passed to Update. It is only valid inside the
// callback.
type Tx struct {
	s       *Store
	now     time.Time
	changed bool
}

// Now is the timestamp applied to every record touched in this transaction.
func (tx *Tx) Now() time.Time {
	return tx.now
}

// Directory returns the directory records are enriched from.
func (tx *Tx) Directory() *directory.Directory {
	return tx.s.dir
}

// FindByPollingUnit returns the live record for a polling unit, or nil.
func (tx *Tx) FindByPollingUnit(pollingUnit string) *models.ResultRecord {
	return tx.s.byUnit[pollingUnit]
}

// Create appends a new Pending record for pollingUnit with ward and LGA
// resolved from the directory. The caller must have checked that no record
// exists for the key.
func (tx *Tx) Create(pollingUnit string) *models.ResultRecord {
	r := &models.ResultRecord{
		ID:              tx.s.newID(),
		PollingUnit:     pollingUnit,
		CandidateScores: []models.CandidateScore{},
		Status:          models.StatusPending,
		Timestamp:       tx.now,
	}
	tx.s.dir.Enrich(r)

	tx.s.records = append(tx.s.records, r)
	tx.s.byUnit[r.PollingUnit] = r
	tx.s.byID[r.ID] = r
	tx.changed = true
	return r
}

// Touch marks r as modified and refreshes its timestamp.
func (tx *Tx) Touch(r *models.ResultRecord) {
	r.Timestamp = tx.now
	tx.changed = true
}

// Update runs fn with exclusive access to the records. When fn touched or
// created a record the derived views are recomputed and subscribers are
// notified before Update returns. The returned views reflect the state after
// fn.
func (s *Store) Update(fn func(tx *Tx)) Views {
	s.mu.Lock()
	tx := &Tx{s: s, now: s.clock.Now()}
	s.runLocked(tx, fn)
	if !tx.changed {
		v := s.viewsLocked()
		s.mu.Unlock()
		return v
	}
	return s.commitLocked()
}

// runLocked calls fn. If fn panics, the views are brought back in line with
// whatever fn already changed and s.mu is released before the panic goes on.
func (s *Store) runLocked(tx *Tx, fn func(tx *Tx)) {
	defer func() {
		if p := recover(); p != nil {
			if tx.changed {
				s.version++
				s.summary = aggregate.Summarize(s.snapshotLocked(), s.dir)
			}
			s.mu.Unlock()
			panic(p)
		}
	}()
	fn(tx)
}

// commitLocked recomputes the summary, bumps the version and releases s.mu
// while holding notifyMu, then delivers the new views.
func (s *Store) commitLocked() Views {
	s.version++
	s.summary = aggregate.Summarize(s.snapshotLocked(), s.dir)
	v := s.viewsLocked()

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, fn := range s.subscriberList() {
		fn(v)
	}
	return v
}

func (s *Store) subscriberList() []func(Views) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	out := make([]func(Views), len(s.subscribers))
	for i, sub := range s.subscribers {
		out[i] = sub.fn
	}
	return out
}

// Subscribe registers fn to receive the views after every committed change,
// in commit order. fn runs on the writer's goroutine and must not write to
// the store. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Views)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers = append(s.subscribers, subscription{id: id, fn: fn})
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Views returns a deep copy of the current records and derived views.
func (s *Store) Views() Views {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewsLocked()
}

// Records returns a deep copy of all records in insertion order.
func (s *Store) Records() []models.ResultRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Summary returns the derived views of the current records.
func (s *Store) Summary() models.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSummary(s.summary)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns a copy of the record with the given ID.
func (s *Store) Get(id string) (models.ResultRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byID[id]
	if !ok {
		return models.ResultRecord{}, false
	}
	return r.Clone(), true
}

// FindByPollingUnit returns a copy of the record for a polling unit.
func (s *Store) FindByPollingUnit(pollingUnit string) (models.ResultRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byUnit[pollingUnit]
	if !ok {
		return models.ResultRecord{}, false
	}
	return r.Clone(), true
}

// Restore replaces the store contents with records, keeping their IDs,
// statuses and timestamps. Later records win when two share a polling unit.
// A record whose ID is already held by another polling unit gets a fresh ID.
// Restore is meant for start-up before any submission arrives.
func (s *Store) Restore(records []models.ResultRecord) Views {
	s.mu.Lock()

	s.records = nil
	byUnit := make(map[string]int, len(records))
	byID := make(map[string]int, len(records))
	for _, rec := range records {
		r := rec.Clone()
		if r.CandidateScores == nil {
			r.CandidateScores = []models.CandidateScore{}
		}

		i, replacing := byUnit[r.PollingUnit]
		if replacing {
			delete(byID, s.records[i].ID)
		}
		if _, taken := byID[r.ID]; taken || r.ID == "" {
			r.ID = s.newID()
		}

		if !replacing {
			i = len(s.records)
			s.records = append(s.records, nil)
			byUnit[r.PollingUnit] = i
		}
		s.records[i] = &r
		byID[r.ID] = i
	}
	s.reindexLocked()

	return s.commitLocked()
}

// reindexLocked rebuilds both lookup maps from s.records.
func (s *Store) reindexLocked() {
	s.byUnit = make(map[string]*models.ResultRecord, len(s.records))
	s.byID = make(map[string]*models.ResultRecord, len(s.records))
	for _, r := range s.records {
		s.byUnit[r.PollingUnit] = r
		s.byID[r.ID] = r
	}
}

func (s *Store) snapshotLocked() []models.ResultRecord {
	out := make([]models.ResultRecord, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

func (s *Store) viewsLocked() Views {
	return Views{
		Version: s.version,
		Records: s.snapshotLocked(),
		Summary: cloneSummary(s.summary),
	}
}

func cloneSummary(in models.Summary) models.Summary {
	out := in
	out.CancelledVotes = append([]models.CancelledVote{}, in.CancelledVotes...)
	out.OverVoting = append([]models.OverVotingIncident{}, in.OverVoting...)
	return out
}
