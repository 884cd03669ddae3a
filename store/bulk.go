// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/polling-watch/models"
)

var (
	ErrInvalidStatus       = errors.New("invalid result status")
	ErrPollingUnitTaken    = errors.New("polling unit already has a result record")
	ErrPollingUnitRequired = errors.New("polling unit is required")
)

// FindByID returns the live record with the given ID, or nil.
func (tx *Tx) FindByID(id string) *models.ResultRecord {
	return tx.s.byID[id]
}

// Replace overwrites the record with rec.ID wholesale. Status is taken as
// given; negative counts and scores are floored to 0. Ward and LGA are
// re-resolved from the directory when the polling unit changes or either is
// missing. It reports false when no such record exists.
func (tx *Tx) Replace(rec models.ResultRecord) (bool, error) {
	cur, ok := tx.s.byID[rec.ID]
	if !ok {
		return false, nil
	}
	rec = rec.Clone()
	rec.PollingUnit = strings.TrimSpace(rec.PollingUnit)
	if rec.PollingUnit == "" {
		return true, ErrPollingUnitRequired
	}
	if !rec.Status.Valid() {
		return true, fmt.Errorf("%w: %q", ErrInvalidStatus, rec.Status)
	}
	if other, taken := tx.s.byUnit[rec.PollingUnit]; taken && other != cur {
		return true, fmt.Errorf("%w: %s", ErrPollingUnitTaken, rec.PollingUnit)
	}

	rec.RegisteredVoters = max(rec.RegisteredVoters, 0)
	rec.AccreditedVoters = max(rec.AccreditedVoters, 0)
	rec.VotesCast = max(rec.VotesCast, 0)
	rec.VotesCancelled = max(rec.VotesCancelled, 0)
	for i := range rec.CandidateScores {
		rec.CandidateScores[i].Score = max(rec.CandidateScores[i].Score, 0)
	}
	if rec.CandidateScores == nil {
		rec.CandidateScores = []models.CandidateScore{}
	}
	if rec.PollingUnit != cur.PollingUnit || rec.Ward == "" || rec.LGA == "" {
		tx.s.dir.Enrich(&rec)
	}

	delete(tx.s.byUnit, cur.PollingUnit)
	*cur = rec
	tx.s.byUnit[cur.PollingUnit] = cur
	tx.Touch(cur)
	return true, nil
}

// Delete removes the records with the given IDs and returns how many were
// removed. Unknown IDs are skipped.
func (tx *Tx) Delete(ids ...string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := tx.s.byID[id]; ok {
			drop[id] = true
		}
	}
	if len(drop) == 0 {
		return 0
	}

	kept := tx.s.records[:0]
	for _, r := range tx.s.records {
		if !drop[r.ID] {
			kept = append(kept, r)
		}
	}
	// release dropped pointers held past the new length
	for i := len(kept); i < len(tx.s.records); i++ {
		tx.s.records[i] = nil
	}
	tx.s.records = kept
	tx.s.reindexLocked()
	tx.changed = true
	return len(drop)
}

// BulkSetStatus sets status on every record in ids, whatever its counts.
// Unknown IDs are skipped. An invalid status changes nothing.
func (s *Store) BulkSetStatus(ids []string, status models.ResultStatus) (int, error) {
	if !status.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	n := 0
	s.Update(func(tx *Tx) {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			r := tx.FindByID(id)
			if r == nil || seen[id] {
				continue
			}
			seen[id] = true
			r.Status = status
			tx.Touch(r)
			n++
		}
	})
	return n, nil
}

// BulkDelete removes every record in ids. Unknown IDs are skipped.
func (s *Store) BulkDelete(ids []string) int {
	n := 0
	s.Update(func(tx *Tx) {
		n = tx.Delete(ids...)
	})
	return n
}

// DeleteSingle removes one record and reports whether it existed.
func (s *Store) DeleteSingle(id string) bool {
	return s.BulkDelete([]string{id}) == 1
}

// UpdateSingle replaces the record with rec.ID wholesale without deriving
// its status. Counts are floored to 0 and an empty polling unit is rejected
// with ErrPollingUnitRequired. It reports false when the ID is unknown.
func (s *Store) UpdateSingle(rec models.ResultRecord) (bool, error) {
	var (
		found bool
		err   error
	)
	s.Update(func(tx *Tx) {
		found, err = tx.Replace(rec)
	})
	return found, err
}
