// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// ResultStatus is the review state of a polling unit's result record.
type ResultStatus string

// Result status constants
const (
	StatusPending   ResultStatus = "Pending"
	StatusVerified  ResultStatus = "Verified"
	StatusDisputed  ResultStatus = "Disputed"
	StatusCancelled ResultStatus = "Cancelled"
)

// Valid reports whether s is one of the four known statuses.
func (s ResultStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusDisputed, StatusCancelled:
		return true
	}
	return false
}

// Cancelled vote reasons
const (
	ReasonOverVoting  = "Over-voting"
	ReasonAdminAction = "Admin Action"
)

// Domain types

type PollingUnit struct {
	Name string `json:"name"`
	LGA  string `json:"lga"`
	Ward string `json:"ward"`
}

type Candidate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party"`
}

type CandidateScore struct {
	CandidateID string `json:"candidate_id"`
	Score       int    `json:"score"`
}

// ResultRecord merges the accreditation and results submissions of one
// polling unit. PollingUnit is the merge key.
type ResultRecord struct {
	ID               string           `json:"id"`
	PollingUnit      string           `json:"polling_unit"`
	Ward             string           `json:"ward"`
	LGA              string           `json:"lga"`
	RegisteredVoters int              `json:"registered_voters"`
	AccreditedVoters int              `json:"accredited_voters"`
	VotesCast        int              `json:"votes_cast"`
	VotesCancelled   int              `json:"votes_cancelled"`
	AgentName        string           `json:"agent_name"`
	CandidateScores  []CandidateScore `json:"candidate_scores"`
	ResultSheetURL   string           `json:"result_sheet_url"`
	Status           ResultStatus     `json:"status"`
	Timestamp        time.Time        `json:"timestamp"`
}

// IsOverVoting reports whether more votes were cast than voters accredited.
// A unit with no accreditation yet is never over-voting.
func (r ResultRecord) IsOverVoting() bool {
	return r.AccreditedVoters > 0 && r.VotesCast > r.AccreditedVoters
}

// Clone returns a copy that shares no memory with r.
func (r ResultRecord) Clone() ResultRecord {
	c := r
	if r.CandidateScores != nil {
		c.CandidateScores = make([]CandidateScore, len(r.CandidateScores))
		copy(c.CandidateScores, r.CandidateScores)
	}
	return c
}

// Derived views

type VoteStats struct {
	Registered int `json:"registered"`
	Accredited int `json:"accredited"`
	Cast       int `json:"cast"`
	Cancelled  int `json:"cancelled"`
}

type CancelledVote struct {
	ID             string    `json:"id"`
	PollingUnit    string    `json:"polling_unit"`
	Reason         string    `json:"reason"`
	VotesCancelled int       `json:"votes_cancelled"`
	Timestamp      time.Time `json:"timestamp"`
}

type OverVotingIncident struct {
	PollingUnit      string `json:"polling_unit"`
	VotesCast        int    `json:"votes_cast"`
	AccreditedVoters int    `json:"accredited_voters"`
}

// OverVotingAlert is handed to the notification collaborator whenever a
// submission leaves a record over-voting.
type OverVotingAlert = OverVotingIncident

type Coverage struct {
	Total       int `json:"total"`
	Reported    int `json:"reported"`
	NotReported int `json:"not_reported"`
	Cancelled   int `json:"cancelled"`
}

type Summary struct {
	Stats          VoteStats            `json:"stats"`
	CancelledVotes []CancelledVote      `json:"cancelled_votes"`
	OverVoting     []OverVotingIncident `json:"over_voting"`
	Coverage       Coverage             `json:"coverage"`
}

type CandidateTotal struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Party       string `json:"party"`
	Votes       int    `json:"votes"`
}

// ResultTotals is the footer row of a filtered results table.
type ResultTotals struct {
	RegisteredVoters int              `json:"registered_voters"`
	AccreditedVoters int              `json:"accredited_voters"`
	VotesCast        int              `json:"votes_cast"`
	VotesCancelled   int              `json:"votes_cancelled"`
	Candidates       []CandidateTotal `json:"candidates"`
}

type VoteDistribution struct {
	LGA        string           `json:"lga,omitempty"`
	LGAs       []string         `json:"lgas"`
	Candidates []CandidateTotal `json:"candidates"`
	TotalVotes int              `json:"total_votes"`
}

// ResultFilter narrows a record list. Empty fields match everything.
type ResultFilter struct {
	Date  string // YYYY-MM-DD prefix of the record timestamp
	LGA   string
	Ward  string
	Query string
}

// Incidents

type IncidentStatus string

const (
	IncidentPending   IncidentStatus = "Pending"
	IncidentResolved  IncidentStatus = "Resolved"
	IncidentUrgent    IncidentStatus = "Urgent"
	IncidentEscalated IncidentStatus = "Escalated"
)

func (s IncidentStatus) Valid() bool {
	switch s {
	case IncidentPending, IncidentResolved, IncidentUrgent, IncidentEscalated:
		return true
	}
	return false
}

type Incident struct {
	ID          string         `json:"id"`
	PollingUnit string         `json:"polling_unit"`
	Type        string         `json:"type"`
	Status      IncidentStatus `json:"status"`
	ImageURL    string         `json:"image_url,omitempty"`
	Time        time.Time      `json:"time"`
}

// Alerts

type FeedEvent struct {
	Message string    `json:"message"`
	Level   string    `json:"level"`
	Time    time.Time `json:"time"`
}

type Notification struct {
	ID      int64     `json:"id"`
	Message string    `json:"message"`
	Level   string    `json:"level"`
	Time    time.Time `json:"time"`
}

// Submissions

type AccreditationSubmission struct {
	PollingUnit      string `json:"polling_unit"`
	AgentName        string `json:"agent_name"`
	RegisteredVoters int    `json:"registered_voters"`
	AccreditedVoters int    `json:"accredited_voters"`
}

type ResultsSubmission struct {
	PollingUnit     string           `json:"polling_unit"`
	AgentName       string           `json:"agent_name"`
	CandidateScores []CandidateScore `json:"candidate_scores"`
	VotesCancelled  int              `json:"votes_cancelled"`
	ResultSheetURL  string           `json:"result_sheet_url"`
}
