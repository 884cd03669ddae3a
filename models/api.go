// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Request types

type ReportIncidentRequest struct {
	PollingUnit string `json:"polling_unit"`
	Type        string `json:"type"`
	ImageURL    string `json:"image_url"`
}

type AgentTokenRequest struct {
	PollingUnit string `json:"polling_unit"`
}

type BulkStatusRequest struct {
	IDs    []string     `json:"ids"`
	Status ResultStatus `json:"status"`
}

type BulkIDsRequest struct {
	IDs []string `json:"ids"`
}

type IncidentStatusRequest struct {
	Status IncidentStatus `json:"status"`
}

type BulkIncidentStatusRequest struct {
	IDs    []string       `json:"ids"`
	Status IncidentStatus `json:"status"`
}

type AddCandidateRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party"`
}

type DismissAlertRequest struct {
	PollingUnit string `json:"polling_unit"`
}

// Response types

type AgentTokenResponse struct {
	PollingUnit string `json:"polling_unit"`
	AgentToken  string `json:"agent_token"`
}

type ResultsResponse struct {
	Results []ResultRecord `json:"results"`
	Totals  ResultTotals   `json:"totals"`
}

type BulkResponse struct {
	Affected int    `json:"affected"`
	Message  string `json:"message"`
}

type DashboardResponse struct {
	Stats            VoteStats            `json:"stats"`
	Coverage         Coverage             `json:"coverage"`
	CancelledVotes   []CancelledVote      `json:"cancelled_votes"`
	OverVotingAlerts []OverVotingIncident `json:"over_voting_alerts"`
	Candidates       []CandidateTotal     `json:"candidates"`
	ResultCount      int                  `json:"result_count"`
	IncidentCount    int                  `json:"incident_count"`
	Version          uint64               `json:"version"`
}

type DirectoryResponse struct {
	Units []PollingUnit `json:"units"`
	LGAs  []string      `json:"lgas"`
	Wards []string      `json:"wards,omitempty"`
}

type FeedResponse struct {
	Events        []FeedEvent    `json:"events"`
	Notifications []Notification `json:"notifications"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
