// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Polling Watch API.

# Handler Types

Each handler is a struct holding the shared session services and config:

  - SubmissionHandler: Accreditation and results submissions from agents
  - ResultsHandler: Record listing, admin edits and bulk operations
  - ViewsHandler: Dashboard, derived views, distribution and report
  - CandidateHandler: Candidate registry
  - IncidentHandler: Field incident reports
  - FeedHandler: Live feed and alert dismissal
  - AgentHandler: Agent token issuing

Handlers are created via constructor functions that accept Deps and Config:

	submissions := handlers.NewSubmissionHandler(deps, cfg)

# Agent Submissions

Agents submit in two phases, merged by polling unit:

	POST /submissions/accreditation → RecordAccreditation
	POST /submissions/results       → RecordResults
	POST /incidents                 → ReportIncident

Agent operations require an X-Agent-Token issued for the polling_unit named
in the body. Over-voting (votes cast above accredited) marks the record
Disputed and raises an alert in the live feed.

# Admin Operations

Admin routes require the X-Admin-Key header (see middleware.RequireAdmin).

	PUT  /results/{id}        → UpdateResult (stored as sent)
	POST /results/{id}/edit   → EditResult (votes cast and status re-derived)
	POST /results/bulk-status → BulkStatus
	POST /results/bulk-delete → BulkDelete

Unknown IDs in bulk requests are skipped; the response reports how many
records were affected.

# Derived Views

	GET /dashboard       → Dashboard
	GET /stats           → GetStats
	GET /cancelled-votes → GetCancelledVotes
	GET /over-voting     → GetOverVoting
	GET /coverage        → GetCoverage
	GET /distribution    → GetDistribution
	GET /report          → GetReport (plain text tables)

Views always match the records of the same store version.
*/
package handlers
