// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"log/slog"
	"strings"

	"github.com/danielhkuo/polling-watch/metrics"
	"github.com/danielhkuo/polling-watch/models"
	"github.com/danielhkuo/polling-watch/store"
)

// ErrPollingUnitRequired is returned for a submission or edit without a polling unit.
var ErrPollingUnitRequired = store.ErrPollingUnitRequired

// Notifier receives an alert whenever a write leaves a record over-voting.
// Notify is called after the store lock is released.
type Notifier interface {
	Notify(alert models.OverVotingAlert)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(models.OverVotingAlert)

func (f NotifierFunc) Notify(a models.OverVotingAlert) { f(a) }

type Option func(*Engine)

func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// Engine merges agent submissions into the store and keeps record status in
// line with the over-voting rule.
type Engine struct {
	store    *store.Store
	notifier Notifier
	metrics  *metrics.Metrics
}

func New(st *store.Store, opts ...Option) *Engine {
	e := &Engine{store: st}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RecordAccreditation creates or updates the record for sub.PollingUnit with
// the registered and accredited counts, then re-applies the status rule.
func (e *Engine) RecordAccreditation(sub models.AccreditationSubmission) (models.ResultRecord, error) {
	pu := strings.TrimSpace(sub.PollingUnit)
	if pu == "" {
		return models.ResultRecord{}, ErrPollingUnitRequired
	}

	var (
		out   models.ResultRecord
		alert *models.OverVotingAlert
	)
	e.store.Update(func(tx *store.Tx) {
		r := tx.FindByPollingUnit(pu)
		if r == nil {
			r = tx.Create(pu)
		}
		if r.AgentName == "" {
			r.AgentName = sub.AgentName
		}
		r.RegisteredVoters = clamp(sub.RegisteredVoters)
		r.AccreditedVoters = clamp(sub.AccreditedVoters)
		alert = applyStatusRule(r)
		tx.Touch(r)
		out = r.Clone()
	})

	e.metrics.SubmissionRecorded(metrics.KindAccreditation)
	slog.Info("accreditation recorded",
		"polling_unit", pu,
		"registered", out.RegisteredVoters,
		"accredited", out.AccreditedVoters,
		"status", out.Status)
	e.emit(alert)
	return out, nil
}

// RecordResults creates or updates the record for sub.PollingUnit with the
// candidate scores. VotesCast is always the sum of the scores.
func (e *Engine) RecordResults(sub models.ResultsSubmission) (models.ResultRecord, error) {
	pu := strings.TrimSpace(sub.PollingUnit)
	if pu == "" {
		return models.ResultRecord{}, ErrPollingUnitRequired
	}

	scores := clampScores(sub.CandidateScores)

	var (
		out   models.ResultRecord
		alert *models.OverVotingAlert
	)
	e.store.Update(func(tx *store.Tx) {
		r := tx.FindByPollingUnit(pu)
		if r == nil {
			r = tx.Create(pu)
			r.AgentName = sub.AgentName
		}
		r.CandidateScores = scores
		r.VotesCast = sumScores(scores)
		r.VotesCancelled = clamp(sub.VotesCancelled)
		r.ResultSheetURL = sub.ResultSheetURL
		alert = applyStatusRule(r)
		tx.Touch(r)
		out = r.Clone()
	})

	e.metrics.SubmissionRecorded(metrics.KindResults)
	slog.Info("results recorded",
		"polling_unit", pu,
		"votes_cast", out.VotesCast,
		"accredited", out.AccreditedVoters,
		"status", out.Status)
	e.emit(alert)
	return out, nil
}

// EditRecord applies an admin's full-record edit. Unlike
// store.UpdateSingle, VotesCast is recomputed from the scores when any are
// given and the status rule runs afterwards. The bool is false when rec.ID
// is unknown.
func (e *Engine) EditRecord(rec models.ResultRecord) (models.ResultRecord, bool, error) {
	rec = rec.Clone()
	rec.PollingUnit = strings.TrimSpace(rec.PollingUnit)
	if rec.PollingUnit == "" {
		return models.ResultRecord{}, false, ErrPollingUnitRequired
	}
	if rec.Status == "" {
		rec.Status = models.StatusPending
	}
	rec.RegisteredVoters = clamp(rec.RegisteredVoters)
	rec.AccreditedVoters = clamp(rec.AccreditedVoters)
	rec.VotesCancelled = clamp(rec.VotesCancelled)
	rec.VotesCast = clamp(rec.VotesCast)
	if len(rec.CandidateScores) > 0 {
		rec.CandidateScores = clampScores(rec.CandidateScores)
		rec.VotesCast = sumScores(rec.CandidateScores)
	}

	var (
		out   models.ResultRecord
		found bool
		err   error
		alert *models.OverVotingAlert
	)
	e.store.Update(func(tx *store.Tx) {
		found, err = tx.Replace(rec)
		if !found || err != nil {
			return
		}
		r := tx.FindByID(rec.ID)
		alert = applyStatusRule(r)
		out = r.Clone()
	})
	if !found || err != nil {
		return models.ResultRecord{}, found, err
	}

	e.metrics.SubmissionRecorded(metrics.KindEdit)
	slog.Info("result record edited",
		"id", out.ID,
		"polling_unit", out.PollingUnit,
		"votes_cast", out.VotesCast,
		"status", out.Status)
	e.emit(alert)
	return out, true, nil
}

func (e *Engine) emit(alert *models.OverVotingAlert) {
	if alert == nil {
		return
	}
	e.metrics.OverVotingDetected()
	slog.Warn("over-voting detected",
		"polling_unit", alert.PollingUnit,
		"votes_cast", alert.VotesCast,
		"accredited", alert.AccreditedVoters)
	if e.notifier != nil {
		e.notifier.Notify(*alert)
	}
}

// applyStatusRule marks an over-voting record Disputed and returns the alert
// to send. A Disputed record that no longer over-votes goes back to Pending.
// Any other status is left alone.
func applyStatusRule(r *models.ResultRecord) *models.OverVotingAlert {
	if r.IsOverVoting() {
		r.Status = models.StatusDisputed
		return &models.OverVotingAlert{
			PollingUnit:      r.PollingUnit,
			VotesCast:        r.VotesCast,
			AccreditedVoters: r.AccreditedVoters,
		}
	}
	if r.Status == models.StatusDisputed {
		r.Status = models.StatusPending
	}
	return nil
}

func clamp(n int) int {
	return max(n, 0)
}

func clampScores(in []models.CandidateScore) []models.CandidateScore {
	out := make([]models.CandidateScore, len(in))
	for i, s := range in {
		out[i] = models.CandidateScore{CandidateID: s.CandidateID, Score: clamp(s.Score)}
	}
	return out
}

func sumScores(scores []models.CandidateScore) int {
	total := 0
	for _, s := range scores {
		total += s.Score
	}
	return total
}
