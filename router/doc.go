// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Polling Watch API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(deps, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Reference data (public):

	GET /directory  - Polling units, LGAs (and wards with ?lga=)
	GET /candidates - Registered candidates

Agent submissions (requires X-Agent-Token for the body's polling_unit):

	POST /submissions/accreditation - Registered and accredited counts
	POST /submissions/results       - Candidate scores and rejected ballots
	POST /incidents                 - Field incident report

Admin (requires X-Admin-Key):

	POST   /admin/agent-tokens     - Issue an agent token
	GET    /results                - Filtered records and totals
	PUT    /results/{id}           - Replace a record as sent
	DELETE /results/{id}           - Delete a record
	POST   /results/{id}/edit      - Edit with re-derived votes and status
	POST   /results/{id}/verify    - Mark Verified
	POST   /results/{id}/cancel    - Mark Cancelled
	POST   /results/bulk-status    - Set status on many records
	POST   /results/bulk-delete    - Delete many records
	GET    /dashboard              - Stats, coverage, alerts, totals
	GET    /stats                  - Vote statistics
	GET    /cancelled-votes        - Cancelled vote entries
	GET    /over-voting            - Over-voting incidents
	GET    /coverage               - Polling unit coverage
	GET    /distribution           - Per-candidate distribution (?lga=)
	GET    /report                 - Plain-text report
	POST   /candidates             - Add candidate
	DELETE /candidates/{id}        - Remove candidate
	GET    /incidents              - List incidents
	POST   /incidents/{id}/status  - Set incident status
	POST   /incidents/bulk-status  - Set status on many incidents
	POST   /incidents/bulk-delete  - Delete many incidents
	GET    /feed                   - Live feed and notifications
	POST   /feed/dismiss           - Dismiss an over-voting alert

# Handler Initialization

The router creates handler instances with dependency injection:

	submissionHandler := handlers.NewSubmissionHandler(deps, cfg)
	resultsHandler := handlers.NewResultsHandler(deps, cfg)

All handlers receive the shared session services and configuration.
*/
package router
