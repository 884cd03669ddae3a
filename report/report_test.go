// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/polling-watch/models"
)

func sample() Data {
	return Data{
		Election:    "jigawa-2027",
		GeneratedAt: time.Date(2027, 2, 18, 18, 0, 0, 0, time.UTC),
		Summary: models.Summary{
			Stats:    models.VoteStats{Registered: 12000, Accredited: 8000, Cast: 7500, Cancelled: 500},
			Coverage: models.Coverage{Total: 15, Reported: 5, NotReported: 8, Cancelled: 2},
			OverVoting: []models.OverVotingIncident{
				{PollingUnit: "PU 001, Kofar Fada", VotesCast: 1200, AccreditedVoters: 800},
			},
			CancelledVotes: []models.CancelledVote{
				{ID: "CV-1", PollingUnit: "PU 003, Sakwaya", Reason: models.ReasonAdminAction, VotesCancelled: 450},
			},
		},
		Candidates: []models.CandidateTotal{
			{CandidateID: "1", Name: "Amina Bello", Party: "APC", Votes: 4500},
			{CandidateID: "2", Name: "Musa Ibrahim", Party: "PDP", Votes: 3000},
		},
		Records:   7,
		Incidents: 2,
	}
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(), false))
	out := buf.String()

	assert.Contains(t, out, "Election Report: jigawa-2027")
	assert.Contains(t, out, "12,000")
	assert.Contains(t, out, "67% of registered")
	assert.Contains(t, out, "Amina Bello")
	assert.Contains(t, out, "7,500")
	assert.Contains(t, out, "60%")
	assert.Contains(t, out, "PU 001, Kofar Fada")
	assert.Contains(t, out, "Admin Action")
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(), true))

	assert.Contains(t, buf.String(), "\x1b[")
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Data{Election: "general"}, false))
	out := buf.String()

	assert.Contains(t, out, "Vote Statistics")
	assert.False(t, strings.Contains(out, "Over-voting Incidents"))
	assert.False(t, strings.Contains(out, "Cancelled Votes"))
}

func TestBuild(t *testing.T) {
	at := time.Date(2027, 2, 18, 18, 0, 0, 0, time.UTC)
	records := []models.ResultRecord{
		{ID: "a", PollingUnit: "PU 001, Kofar Fada", CandidateScores: []models.CandidateScore{{CandidateID: "1", Score: 300}, {CandidateID: "2", Score: 100}}},
		{ID: "b", PollingUnit: "PU 002, Gidan Bera", CandidateScores: []models.CandidateScore{{CandidateID: "2", Score: 50}}},
	}
	candidates := []models.Candidate{{ID: "1", Name: "Amina Bello", Party: "APC"}, {ID: "2", Name: "Musa Ibrahim", Party: "PDP"}}

	d := Build("jigawa-2027", at, records, models.Summary{}, candidates, 3)

	assert.Equal(t, "jigawa-2027", d.Election)
	assert.Equal(t, at, d.GeneratedAt)
	assert.Equal(t, 2, d.Records)
	assert.Equal(t, 3, d.Incidents)
	require.Len(t, d.Candidates, 2)
	assert.Equal(t, 300, d.Candidates[0].Votes)
	assert.Equal(t, 150, d.Candidates[1].Votes)
}
