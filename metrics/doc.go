// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus counters and gauges for submissions,
over-voting alerts, admin bulk operations and record statuses.

	m := metrics.New()
	mux.Handle("GET /metrics", m.Handler())

All methods accept a nil receiver, so components can be built without
metrics in tests.

# Series

	pollwatch_submissions_total{kind}
	pollwatch_over_voting_alerts_total
	pollwatch_bulk_operations_total{op}
	pollwatch_bulk_records_affected_total{op}
	pollwatch_result_records{status}
	pollwatch_incidents_reported_total
*/
package metrics
