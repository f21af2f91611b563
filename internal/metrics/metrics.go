// Package metrics declares the Prometheus collectors for the API server
// and the export worker. Collectors register on the default registry so
// promhttp.Handler picks them up without extra wiring.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPRequests counts handled requests by method, route pattern and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "uangku",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests by method, route and status code.",
}, []string{"method", "route", "status"})

// HTTPDuration tracks request latency by route pattern.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "uangku",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency in seconds by route.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
}, []string{"method", "route"})

// LedgerWrites counts committed ledger mutations by entity and operation.
var LedgerWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "uangku",
	Subsystem: "ledger",
	Name:      "writes_total",
	Help:      "Total ledger mutations by entity (account, transaction, transfer) and op.",
}, []string{"entity", "op"})

// ChangesPublished counts change events handed to the message broker.
var ChangesPublished = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "uangku",
	Subsystem: "amqp",
	Name:      "changes_published_total",
	Help:      "Total ledger change events published to the broker.",
})

// PublishFailures counts change events that could not be published.
// Mutations still commit when publishing fails.
var PublishFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "uangku",
	Subsystem: "amqp",
	Name:      "publish_failures_total",
	Help:      "Total ledger change events that failed to publish.",
})

// StatementsExported counts statement CSV files written by the worker.
var StatementsExported = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "uangku",
	Subsystem: "export",
	Name:      "statements_total",
	Help:      "Total statement exports by outcome.",
}, []string{"outcome"})

// StatementCache tracks hits and misses of the statement response cache.
var StatementCache = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "uangku",
	Subsystem: "cache",
	Name:      "statement_lookups_total",
	Help:      "Statement cache lookups by result (hit, miss).",
}, []string{"result"})

// Handler exposes the default registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
