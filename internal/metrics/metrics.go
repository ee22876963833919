// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics counts run events with Prometheus collectors. A batch run
// has no scrape endpoint, so the counters are written to a node_exporter
// textfile at the end of the run. All methods are no-ops on a nil *Metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pdiddy/domain-finder/pkg/types"
)

// Metrics holds the run counters.
type Metrics struct {
	Outcomes        *prometheus.CounterVec
	SearchFailures  *prometheus.CounterVec
	ProbeFailures   prometheus.Counter
	Skipped         *prometheus.CounterVec
	Checkpoints     prometheus.Counter
	AssignedDomains prometheus.Gauge

	registry *prometheus.Registry
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "domain_finder_outcomes_total",
			Help: "Institutions resolved, by status and resolution source",
		}, []string{"status", "source"}),
		SearchFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "domain_finder_search_failures_total",
			Help: "Failed search requests, by failure kind",
		}, []string{"kind"}),
		ProbeFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "domain_finder_probe_failures_total",
			Help: "Candidates discarded because the liveness probe failed",
		}),
		Skipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "domain_finder_skipped_records_total",
			Help: "Input records not processed, by reason",
		}, []string{"reason"}),
		Checkpoints: f.NewCounter(prometheus.CounterOpts{
			Name: "domain_finder_checkpoints_total",
			Help: "Incremental writes of buffered results",
		}),
		AssignedDomains: f.NewGauge(prometheus.GaugeOpts{
			Name: "domain_finder_assigned_domains",
			Help: "Domains held in the run's dedup registry",
		}),
		registry: reg,
	}
}

// Outcome counts one resolved institution.
func (m *Metrics) Outcome(status types.Status, source types.Source) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(string(status), string(source)).Inc()
}

// SearchFailed counts a failed search request of the given kind.
func (m *Metrics) SearchFailed(kind string) {
	if m == nil {
		return
	}
	m.SearchFailures.WithLabelValues(kind).Inc()
}

// ProbeFailed counts a candidate dropped by the liveness probe.
func (m *Metrics) ProbeFailed() {
	if m == nil {
		return
	}
	m.ProbeFailures.Inc()
}

// SkippedRecords counts n input records skipped for reason.
func (m *Metrics) SkippedRecords(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Skipped.WithLabelValues(reason).Add(float64(n))
}

// Checkpointed counts one incremental write.
func (m *Metrics) Checkpointed() {
	if m == nil {
		return
	}
	m.Checkpoints.Inc()
}

// SetAssignedDomains records the size of the dedup registry.
func (m *Metrics) SetAssignedDomains(n int) {
	if m == nil {
		return
	}
	m.AssignedDomains.Set(float64(n))
}

// WriteTextfile writes the current values in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
