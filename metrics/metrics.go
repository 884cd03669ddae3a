// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/polling-watch/models"
)

// Submission kinds
const (
	KindAccreditation = "accreditation"
	KindResults       = "results"
	KindEdit          = "edit"
)

// Bulk operation names
const (
	OpSetStatus = "set_status"
	OpDelete    = "delete"
	OpUpdate    = "update"
)

// Metrics holds the service's Prometheus instruments. A nil *Metrics is a
// valid no-op.
type Metrics struct {
	registry          *prometheus.Registry
	submissions       *prometheus.CounterVec
	overVoting        prometheus.Counter
	bulkOps           *prometheus.CounterVec
	bulkRecords       *prometheus.CounterVec
	records           *prometheus.GaugeVec
	incidentsReported prometheus.Counter
}

// New creates the instruments on a private registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return newMetrics(reg)
}

func newMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pollwatch_submissions_total",
			Help: "Agent submissions and manual edits applied to result records.",
		}, []string{"kind"}),
		overVoting: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pollwatch_over_voting_alerts_total",
			Help: "Over-voting alerts raised by submissions.",
		}),
		bulkOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pollwatch_bulk_operations_total",
			Help: "Admin bulk operations by kind.",
		}, []string{"op"}),
		bulkRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pollwatch_bulk_records_affected_total",
			Help: "Result records changed or removed by admin bulk operations.",
		}, []string{"op"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pollwatch_result_records",
			Help: "Result records currently held, by status.",
		}, []string{"status"}),
		incidentsReported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pollwatch_incidents_reported_total",
			Help: "Incident reports filed by field agents.",
		}),
	}

	reg.MustRegister(m.submissions, m.overVoting, m.bulkOps, m.bulkRecords, m.records, m.incidentsReported)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) SubmissionRecorded(kind string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(kind).Inc()
}

func (m *Metrics) OverVotingDetected() {
	if m == nil {
		return
	}
	m.overVoting.Inc()
}

// BulkApplied counts one bulk operation and the records it affected.
func (m *Metrics) BulkApplied(op string, affected int) {
	if m == nil {
		return
	}
	m.bulkOps.WithLabelValues(op).Inc()
	m.bulkRecords.WithLabelValues(op).Add(float64(affected))
}

func (m *Metrics) IncidentReported() {
	if m == nil {
		return
	}
	m.incidentsReported.Inc()
}

// ObserveRecords sets the per-status record gauge. Every status is written so
// statuses that drop to zero are reset.
func (m *Metrics) ObserveRecords(records []models.ResultRecord) {
	if m == nil {
		return
	}
	counts := map[models.ResultStatus]int{
		models.StatusPending:   0,
		models.StatusVerified:  0,
		models.StatusDisputed:  0,
		models.StatusCancelled: 0,
	}
	for _, r := range records {
		counts[r.Status]++
	}
	for status, n := range counts {
		m.records.WithLabelValues(string(status)).Set(float64(n))
	}
}
