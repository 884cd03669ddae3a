// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Polling Watch API server.

Polling Watch collects accreditation and result submissions from polling-unit
agents on election day, reconciles them into one record per polling unit,
flags over-voting and aggregates the live tallies for the situation room.

# Starting the Server

The server reads a .env file when present, then environment variables, then
CLI flags:

	ADMIN_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -admin-salt "..." -election jigawa-2027

# Configuration

Required settings:

  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key and agent token HMACs

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - ELECTION_ID (-election): Election the admin key is bound to (default: general)
  - PU_DIRECTORY_FILE (-directory): CSV polling-unit directory (default: built-in)
  - FEED_LIMIT (-feed-limit): Live feed and notification cap (default: 100)
  - DATABASE_URL (-d): Session mirror database; the mirror is off when empty
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - RESTORE_SESSION (-restore): Reload the mirrored records at start-up

The admin key is logged at start-up. Agent tokens are issued per polling unit
through POST /admin/agent-tokens.

# Architecture

  - handlers: HTTP request handlers (submissions, results, views, incidents)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin auth, JSON helpers
  - reconcile: Submission merging and the over-voting rule
  - store: In-memory result records and derived views
  - aggregate: Vote stats, coverage, totals and distribution
  - alerts: Live feed and over-voting notifications
  - db: Optional session mirror with migrations
  - report: Closing text report printed on shutdown

See package documentation for each component.
*/
package main
