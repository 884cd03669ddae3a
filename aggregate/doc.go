// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package aggregate derives read-only views from a slice of result records.

Every function is pure: it reads the slice it is given and returns fresh
values. The store calls Summarize under its lock after each mutation so the
views are never stale.

# Vote Statistics

Registered, accredited and cast totals skip cancelled records. The cancelled
total is the rejected ballots of non-cancelled records plus all votes cast at
cancelled records.

# Cancelled Votes

One entry per non-cancelled record with rejected ballots (reason
"Over-voting"), then one per cancelled record (reason "Admin Action"). Each
group keeps the input order. Entry IDs are "CV-" plus the record ID.

# Coverage

	Reported    = distinct non-cancelled polling units
	Cancelled   = distinct cancelled polling units
	NotReported = max(0, directory size - Reported - Cancelled)

# Tables

Filter, Totals, CandidateTotals and Distribution back the results table and
the distribution view. Scores for candidate IDs not in the registry are
skipped by the per-candidate totals.
*/
package aggregate
