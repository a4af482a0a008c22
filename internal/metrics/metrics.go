// Package metrics defines Prometheus metrics for schemascout.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schemascout_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schemascout_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schemascout_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	GraphBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schemascout_graph_build_duration_seconds",
			Help:    "Schema graph build duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	GraphBuildsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schemascout_graph_builds_total",
			Help: "Total schema graph builds, including rebuilds",
		},
	)

	GraphTraversals = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schemascout_graph_traversals_total",
			Help: "Total K-hop traversals served",
		},
	)

	GraphExplorations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schemascout_graph_explorations_total",
			Help: "Total ranked neighborhood explorations served",
		},
	)

	GraphTables = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "schemascout_graph_tables",
			Help: "Tables in the current graph snapshot",
		},
	)

	GraphRelationships = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "schemascout_graph_relationships",
			Help: "Relationships in the current graph snapshot",
		},
	)

	QueriesExecuted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schemascout_queries_executed_total",
			Help: "Structured queries executed against the target database",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		GraphBuildDuration, GraphBuildsTotal,
		GraphTraversals, GraphExplorations,
		GraphTables, GraphRelationships,
		QueriesExecuted,
	)
}
