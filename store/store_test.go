// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/polling-watch/clock"
	"github.com/danielhkuo/polling-watch/directory"
	"github.com/danielhkuo/polling-watch/models"
)

var start = time.Date(2027, 2, 18, 9, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("rec-%d", n)
	}
}

func newTestStore(t *testing.T) (*Store, *clock.FakeClock) {
	t.Helper()
	clk := clock.NewFakeClock(start)
	return New(directory.Default(), WithClock(clk), WithIDGenerator(sequentialIDs())), clk
}

// seed creates a record per unit with the given cast and accredited counts.
func seed(s *Store, unit string, accredited, cast int) string {
	var id string
	s.Update(func(tx *Tx) {
		r := tx.Create(unit)
		r.AccreditedVoters = accredited
		r.VotesCast = cast
		tx.Touch(r)
		id = r.ID
	})
	return id
}

func TestCreateEnrichesAndStamps(t *testing.T) {
	s, _ := newTestStore(t)

	v := s.Update(func(tx *Tx) {
		tx.Create("PU 005, Kofar Arewa")
		tx.Create("PU 120, Birniwa")
	})

	require.Len(t, v.Records, 2)
	assert.Equal(t, uint64(1), v.Version)

	first := v.Records[0]
	assert.Equal(t, "rec-1", first.ID)
	assert.Equal(t, "Kasuwa", first.Ward)
	assert.Equal(t, "Hadejia", first.LGA)
	assert.Equal(t, models.StatusPending, first.Status)
	assert.Equal(t, start, first.Timestamp)
	assert.NotNil(t, first.CandidateScores)

	second := v.Records[1]
	assert.Equal(t, directory.Unknown, second.Ward)
	assert.Equal(t, "Birniwa", second.LGA)

	assert.Equal(t, 2, v.Summary.Coverage.Reported)
	assert.Equal(t, 15, v.Summary.Coverage.Total)
}

func TestUpdateWithoutChangesKeepsVersion(t *testing.T) {
	s, _ := newTestStore(t)
	seed(s, "PU 001, Kofar Fada", 100, 50)

	calls := 0
	s.Subscribe(func(Views) { calls++ })

	v := s.Update(func(tx *Tx) {
		_ = tx.FindByPollingUnit("PU 001, Kofar Fada")
	})

	assert.Equal(t, uint64(1), v.Version)
	assert.Equal(t, 0, calls)
}

func TestReadersGetCopies(t *testing.T) {
	s, _ := newTestStore(t)
	id := seed(s, "PU 001, Kofar Fada", 100, 50)
	s.Update(func(tx *Tx) {
		r := tx.FindByID(id)
		r.CandidateScores = []models.CandidateScore{{CandidateID: "1", Score: 50}}
		tx.Touch(r)
	})

	got, ok := s.Get(id)
	require.True(t, ok)
	got.VotesCast = 9999
	got.CandidateScores[0].Score = 9999

	again, _ := s.Get(id)
	assert.Equal(t, 50, again.VotesCast)
	assert.Equal(t, 50, again.CandidateScores[0].Score)

	records := s.Records()
	records[0].Status = models.StatusCancelled
	assert.Equal(t, models.StatusPending, s.Records()[0].Status)
}

func TestSummaryFollowsEveryMutation(t *testing.T) {
	s, _ := newTestStore(t)
	id := seed(s, "PU 001, Kofar Fada", 800, 900)

	assert.Len(t, s.Summary().OverVoting, 1)
	assert.Equal(t, 900, s.Summary().Stats.Cast)

	_, err := s.BulkSetStatus([]string{id}, models.StatusCancelled)
	require.NoError(t, err)

	sum := s.Summary()
	assert.Equal(t, 0, sum.Stats.Cast)
	assert.Equal(t, 900, sum.Stats.Cancelled)
	assert.Equal(t, 1, sum.Coverage.Cancelled)

	s.BulkDelete([]string{id})
	assert.Equal(t, models.Summary{
		Stats:          models.VoteStats{},
		CancelledVotes: []models.CancelledVote{},
		OverVoting:     []models.OverVotingIncident{},
		Coverage:       models.Coverage{Total: 15, NotReported: 15},
	}, s.Summary())
}

func TestSubscribersSeeCommitOrder(t *testing.T) {
	s, _ := newTestStore(t)

	var (
		mu       sync.Mutex
		versions []uint64
	)
	unsubscribe := s.Subscribe(func(v Views) {
		mu.Lock()
		versions = append(versions, v.Version)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seed(s, fmt.Sprintf("PU %03d", i), 10, 5)
		}(i)
	}
	wg.Wait()

	require.Len(t, versions, 20)
	for i, v := range versions {
		assert.Equal(t, uint64(i+1), v)
	}
	assert.Equal(t, 20, s.Len())

	unsubscribe()
	seed(s, "PU 999", 10, 5)
	assert.Len(t, versions, 20)
}

func TestRestore(t *testing.T) {
	s, _ := newTestStore(t)
	seed(s, "PU 001, Kofar Fada", 10, 5)

	stamp := start.Add(-time.Hour)
	v := s.Restore([]models.ResultRecord{
		{ID: "a", PollingUnit: "PU 002, Gidan Bera", Ward: "Limawa", LGA: "Dutse", VotesCast: 10, Status: models.StatusVerified, Timestamp: stamp},
		{ID: "b", PollingUnit: "PU 003, Sakwaya", Status: models.StatusCancelled, VotesCast: 40, Timestamp: stamp},
		{ID: "c", PollingUnit: "PU 002, Gidan Bera", VotesCast: 20, Status: models.StatusPending, Timestamp: stamp},
	})

	require.Len(t, v.Records, 2)
	assert.Equal(t, "c", v.Records[0].ID)
	assert.Equal(t, 20, v.Records[0].VotesCast)
	assert.Equal(t, stamp, v.Records[0].Timestamp)
	assert.Equal(t, models.StatusCancelled, v.Records[1].Status)

	_, ok := s.Get("a")
	assert.False(t, ok)
	r, ok := s.FindByPollingUnit("PU 002, Gidan Bera")
	require.True(t, ok)
	assert.Equal(t, "c", r.ID)

	assert.Equal(t, 20, v.Summary.Stats.Cast)
	assert.Equal(t, 40, v.Summary.Stats.Cancelled)
}

func TestBulkSetStatus(t *testing.T) {
	s, clk := newTestStore(t)
	a := seed(s, "PU 001, Kofar Fada", 800, 900)
	b := seed(s, "PU 002, Gidan Bera", 800, 700)
	clk.Advance(time.Minute)

	n, err := s.BulkSetStatus([]string{a, "missing", b, a}, models.StatusVerified)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, id := range []string{a, b} {
		r, _ := s.Get(id)
		// unconditional: over-voting record is Verified too
		assert.Equal(t, models.StatusVerified, r.Status)
		assert.Equal(t, start.Add(time.Minute), r.Timestamp)
	}
}

func TestBulkSetStatusRejectsInvalidStatus(t *testing.T) {
	s, _ := newTestStore(t)
	id := seed(s, "PU 001, Kofar Fada", 10, 5)

	n, err := s.BulkSetStatus([]string{id}, "Approved")
	assert.True(t, errors.Is(err, ErrInvalidStatus))
	assert.Equal(t, 0, n)

	r, _ := s.Get(id)
	assert.Equal(t, models.StatusPending, r.Status)
}

func TestBulkDelete(t *testing.T) {
	s, _ := newTestStore(t)
	a := seed(s, "PU 001, Kofar Fada", 10, 5)
	b := seed(s, "PU 002, Gidan Bera", 10, 5)
	c := seed(s, "PU 003, Sakwaya", 10, 5)

	n := s.BulkDelete([]string{"nonexistent-id", b})
	assert.Equal(t, 1, n)

	records := s.Records()
	require.Len(t, records, 2)
	assert.Equal(t, a, records[0].ID)
	assert.Equal(t, c, records[1].ID)

	_, ok := s.FindByPollingUnit("PU 002, Gidan Bera")
	assert.False(t, ok)
	_, ok = s.FindByPollingUnit("PU 003, Sakwaya")
	assert.True(t, ok)

	assert.Equal(t, 0, s.BulkDelete(nil))
	assert.False(t, s.DeleteSingle(b))
	assert.True(t, s.DeleteSingle(a))
	assert.Equal(t, 1, s.Len())
}

func TestUpdateSingle(t *testing.T) {
	s, clk := newTestStore(t)
	a := seed(s, "PU 001, Kofar Fada", 800, 700)
	seed(s, "PU 002, Gidan Bera", 10, 5)
	clk.Advance(time.Hour)

	t.Run("wholesale replace without status derivation", func(t *testing.T) {
		rec, _ := s.Get(a)
		rec.VotesCast = 5000
		rec.AgentName = "Hauwa Abdullahi"
		rec.Status = models.StatusVerified
		rec.CandidateScores = nil

		found, err := s.UpdateSingle(rec)
		require.NoError(t, err)
		assert.True(t, found)

		got, _ := s.Get(a)
		assert.Equal(t, 5000, got.VotesCast)
		assert.Equal(t, models.StatusVerified, got.Status)
		assert.Equal(t, "Hauwa Abdullahi", got.AgentName)
		assert.Equal(t, start.Add(time.Hour), got.Timestamp)
		assert.NotNil(t, got.CandidateScores)
		assert.Len(t, s.Summary().OverVoting, 1)
	})

	t.Run("moving to a new polling unit rekeys", func(t *testing.T) {
		rec, _ := s.Get(a)
		rec.PollingUnit = "PU 009, Balago"

		_, err := s.UpdateSingle(rec)
		require.NoError(t, err)

		_, ok := s.FindByPollingUnit("PU 001, Kofar Fada")
		assert.False(t, ok)
		got, ok := s.FindByPollingUnit("PU 009, Balago")
		require.True(t, ok)
		assert.Equal(t, a, got.ID)
		assert.Equal(t, "Balago", got.Ward)
		assert.Equal(t, "Kiyawa", got.LGA)
	})

	t.Run("polling unit owned by another record", func(t *testing.T) {
		rec, _ := s.Get(a)
		rec.PollingUnit = "PU 002, Gidan Bera"

		found, err := s.UpdateSingle(rec)
		assert.True(t, found)
		assert.True(t, errors.Is(err, ErrPollingUnitTaken))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("invalid status", func(t *testing.T) {
		rec, _ := s.Get(a)
		rec.Status = ""

		_, err := s.UpdateSingle(rec)
		assert.True(t, errors.Is(err, ErrInvalidStatus))
	})

	t.Run("unknown id", func(t *testing.T) {
		found, err := s.UpdateSingle(models.ResultRecord{ID: "nope", Status: models.StatusPending})
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("negative counts floored", func(t *testing.T) {
		rec, _ := s.Get(a)
		rec.RegisteredVoters = -3
		rec.AccreditedVoters = -1
		rec.VotesCast = -500
		rec.VotesCancelled = -7
		rec.CandidateScores = []models.CandidateScore{{CandidateID: "1", Score: -20}, {CandidateID: "2", Score: 15}}

		_, err := s.UpdateSingle(rec)
		require.NoError(t, err)

		got, _ := s.Get(a)
		assert.Equal(t, 0, got.RegisteredVoters)
		assert.Equal(t, 0, got.AccreditedVoters)
		assert.Equal(t, 0, got.VotesCast)
		assert.Equal(t, 0, got.VotesCancelled)
		assert.Equal(t, []models.CandidateScore{{CandidateID: "1", Score: 0}, {CandidateID: "2", Score: 15}}, got.CandidateScores)
		// status kept as given
		assert.Equal(t, models.StatusVerified, got.Status)

		stats := s.Summary().Stats
		assert.GreaterOrEqual(t, stats.Registered, 0)
		assert.GreaterOrEqual(t, stats.Cast, 0)
	})

	t.Run("empty polling unit", func(t *testing.T) {
		rec, _ := s.Get(a)
		rec.PollingUnit = "   "

		found, err := s.UpdateSingle(rec)
		assert.True(t, found)
		assert.True(t, errors.Is(err, ErrPollingUnitRequired))

		got, _ := s.Get(a)
		assert.Equal(t, "PU 009, Balago", got.PollingUnit)
	})

	t.Run("missing ward and lga are resolved", func(t *testing.T) {
		rec, _ := s.Get(a)
		rec.Ward = ""
		rec.LGA = ""

		_, err := s.UpdateSingle(rec)
		require.NoError(t, err)

		got, _ := s.Get(a)
		assert.Equal(t, "Balago", got.Ward)
		assert.Equal(t, "Kiyawa", got.LGA)
	})
}

func TestRestoreReassignsDuplicateIDs(t *testing.T) {
	s, _ := newTestStore(t)

	v := s.Restore([]models.ResultRecord{
		{ID: "x", PollingUnit: "PU 001, Kofar Fada", Status: models.StatusPending},
		{ID: "x", PollingUnit: "PU 002, Gidan Bera", Status: models.StatusPending},
	})

	require.Len(t, v.Records, 2)
	assert.Equal(t, "x", v.Records[0].ID)
	assert.NotEqual(t, "x", v.Records[1].ID)

	assert.Equal(t, 1, s.BulkDelete([]string{"x"}))
	records := s.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "PU 002, Gidan Bera", records[0].PollingUnit)
	_, ok := s.Get(records[0].ID)
	assert.True(t, ok)
}

func TestUpdateReleasesLockOnPanic(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Panics(t, func() {
		s.Update(func(tx *Tx) {
			tx.Create("PU 001, Kofar Fada")
			panic("boom")
		})
	})

	// the store is still usable and its views match the records
	seed(s, "PU 002, Gidan Bera", 10, 5)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.Summary().Coverage.Reported)
}
