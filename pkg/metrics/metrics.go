// Package metrics defines the Prometheus metric collectors used by the search
// core. Collectors are registered on a caller-supplied registerer so several
// engines (and tests) can coexist in one process.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds all Prometheus collectors for the search core. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	DocsIndexedTotal     prometheus.Counter
	DocsRemovedTotal     prometheus.Counter
	LiveDocuments        prometheus.Gauge
	SearchQueriesTotal   *prometheus.CounterVec
	SearchLatency        *prometheus.HistogramVec
	SearchResultsCount   prometheus.Histogram
	DuplicatesRemoved    prometheus.Counter
	EmptyResultRequests  prometheus.Counter
	ThrottledRequests    prometheus.Counter
	InvalidRequestsTotal *prometheus.CounterVec
}

// New creates all collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_indexed_total",
				Help: "Total documents added to the index.",
			},
		),
		DocsRemovedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_removed_total",
				Help: "Total documents removed from the index.",
			},
		),
		LiveDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "live_documents",
				Help: "Number of documents currently indexed.",
			},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_queries_total",
				Help: "Total search queries by execution path and outcome.",
			},
			[]string{"path", "outcome"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
			},
			[]string{"path"},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of results returned per search query.",
				Buckets: []float64{0, 1, 2, 3, 4, 5, 10},
			},
		),
		DuplicatesRemoved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "duplicates_removed_total",
				Help: "Total documents removed as duplicates.",
			},
		),
		EmptyResultRequests: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "request_queue_empty_results_total",
				Help: "Requests recorded by the request queue that returned no documents.",
			},
		),
		ThrottledRequests: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "request_queue_throttled_total",
				Help: "Requests rejected by the request queue rate limiter.",
			},
		),
		InvalidRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invalid_requests_total",
				Help: "Operations rejected with invalid input, by operation.",
			},
			[]string{"operation"},
		),
	}

	reg.MustRegister(
		m.DocsIndexedTotal,
		m.DocsRemovedTotal,
		m.LiveDocuments,
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.DuplicatesRemoved,
		m.EmptyResultRequests,
		m.ThrottledRequests,
		m.InvalidRequestsTotal,
	)

	return m
}

func (m *Metrics) DocumentAdded(live int) {
	if m == nil {
		return
	}
	m.DocsIndexedTotal.Inc()
	m.LiveDocuments.Set(float64(live))
}

func (m *Metrics) DocumentRemoved(live int) {
	if m == nil {
		return
	}
	m.DocsRemovedTotal.Inc()
	m.LiveDocuments.Set(float64(live))
}

// ObserveSearch records one ranked query. outcome is "hit", "zero_result"
// or "error".
func (m *Metrics) ObserveSearch(path, outcome string, took time.Duration, results int) {
	if m == nil {
		return
	}
	m.SearchQueriesTotal.WithLabelValues(path, outcome).Inc()
	m.SearchLatency.WithLabelValues(path).Observe(took.Seconds())
	if outcome != "error" {
		m.SearchResultsCount.Observe(float64(results))
	}
}

func (m *Metrics) InvalidRequest(operation string) {
	if m == nil {
		return
	}
	m.InvalidRequestsTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) DuplicateRemoved() {
	if m == nil {
		return
	}
	m.DuplicatesRemoved.Inc()
}

func (m *Metrics) EmptyResult() {
	if m == nil {
		return
	}
	m.EmptyResultRequests.Inc()
}

func (m *Metrics) Throttled() {
	if m == nil {
		return
	}
	m.ThrottledRequests.Inc()
}

// WriteText dumps every metric family gathered from g in the Prometheus
// text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
