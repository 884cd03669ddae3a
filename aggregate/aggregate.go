// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"github.com/danielhkuo/polling-watch/directory"
	"github.com/danielhkuo/polling-watch/models"
)

// ComputeVoteStats sums the counts of all non-cancelled records. The votes
// cast at cancelled units are added to the cancelled total.
func ComputeVoteStats(records []models.ResultRecord) models.VoteStats {
	var stats models.VoteStats
	cancelledUnitVotes := 0

	for _, r := range records {
		if r.Status == models.StatusCancelled {
			cancelledUnitVotes += r.VotesCast
			continue
		}
		stats.Registered += r.RegisteredVoters
		stats.Accredited += r.AccreditedVoters
		stats.Cast += r.VotesCast
		// invalid ballots inside an otherwise valid submission
		stats.Cancelled += r.VotesCancelled
	}

	stats.Cancelled += cancelledUnitVotes
	return stats
}

// DeriveCancelledVotes lists over-voting entries for non-cancelled records with
// rejected ballots, followed by one admin-action entry per cancelled record.
func DeriveCancelledVotes(records []models.ResultRecord) []models.CancelledVote {
	overVoting := []models.CancelledVote{}
	adminCancelled := []models.CancelledVote{}

	for _, r := range records {
		switch {
		case r.Status == models.StatusCancelled:
			adminCancelled = append(adminCancelled, models.CancelledVote{
				ID:             "CV-" + r.ID,
				PollingUnit:    r.PollingUnit,
				Reason:         models.ReasonAdminAction,
				VotesCancelled: r.VotesCast,
				Timestamp:      r.Timestamp,
			})
		case r.VotesCancelled > 0:
			overVoting = append(overVoting, models.CancelledVote{
				ID:             "CV-" + r.ID,
				PollingUnit:    r.PollingUnit,
				Reason:         models.ReasonOverVoting,
				VotesCancelled: r.VotesCancelled,
				Timestamp:      r.Timestamp,
			})
		}
	}

	return append(overVoting, adminCancelled...)
}

// DeriveOverVotingIncidents returns every record currently over-voting,
// whatever its stored status.
func DeriveOverVotingIncidents(records []models.ResultRecord) []models.OverVotingIncident {
	incidents := []models.OverVotingIncident{}
	for _, r := range records {
		if !r.IsOverVoting() {
			continue
		}
		incidents = append(incidents, models.OverVotingIncident{
			PollingUnit:      r.PollingUnit,
			VotesCast:        r.VotesCast,
			AccreditedVoters: r.AccreditedVoters,
		})
	}
	return incidents
}

// ComputePollingUnitCoverage counts distinct reported and cancelled polling
// units against the directory size.
func ComputePollingUnitCoverage(records []models.ResultRecord, dir *directory.Directory) models.Coverage {
	reported := make(map[string]struct{})
	cancelled := make(map[string]struct{})

	for _, r := range records {
		if r.Status == models.StatusCancelled {
			cancelled[r.PollingUnit] = struct{}{}
		} else {
			reported[r.PollingUnit] = struct{}{}
		}
	}

	cov := models.Coverage{
		Total:     dir.Len(),
		Reported:  len(reported),
		Cancelled: len(cancelled),
	}
	cov.NotReported = max(0, cov.Total-cov.Reported-cov.Cancelled)
	return cov
}

// Summarize computes every derived view in one pass over the caller's slice.
func Summarize(records []models.ResultRecord, dir *directory.Directory) models.Summary {
	return models.Summary{
		Stats:          ComputeVoteStats(records),
		CancelledVotes: DeriveCancelledVotes(records),
		OverVoting:     DeriveOverVotingIncidents(records),
		Coverage:       ComputePollingUnitCoverage(records, dir),
	}
}

// Percent returns part as a rounded percentage of whole, or 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int((float64(part)*100)/float64(whole) + 0.5)
}
