// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, derived-view, request and response types.

# Domain Types

  - PollingUnit: directory entry (name, lga, ward)
  - Candidate: contestant referenced by candidate scores
  - ResultRecord: one polling unit's accreditation and results, merged
  - Incident: field incident report

# Derived Views

Never stored, always recomputed from the current records:

  - VoteStats: registered, accredited, cast, cancelled
  - CancelledVote: per-unit cancelled votes (over-voting or admin action)
  - OverVotingIncident: units where votes cast exceed accredited voters
  - Coverage: total, reported, not reported, cancelled polling units
  - Summary: all of the above in one value

# Constants

Result status values:

	StatusPending   = "Pending"
	StatusVerified  = "Verified"
	StatusDisputed  = "Disputed"
	StatusCancelled = "Cancelled"

Incident status values:

	IncidentPending   = "Pending"
	IncidentResolved  = "Resolved"
	IncidentUrgent    = "Urgent"
	IncidentEscalated = "Escalated"

Cancelled vote reasons:

	ReasonOverVoting  = "Over-voting"
	ReasonAdminAction = "Admin Action"
*/
package models
