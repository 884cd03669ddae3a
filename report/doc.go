// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package report renders the election summary as plain-text tables: vote
// statistics, polling unit coverage, candidate totals, over-voting incidents
// and cancelled votes. The server prints it in color on shutdown and serves
// it uncolored at GET /report.
package report
