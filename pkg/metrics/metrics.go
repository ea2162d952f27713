package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ── Salesforce 同步指标 ──

var (
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pmo_sync_runs_total",
			Help: "Salesforce sync runs by result",
		},
		[]string{"result"}, // "success" | "failed" | "locked"
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pmo_sync_duration_seconds",
			Help:    "Duration of a full Salesforce sync run",
			Buckets: []float64{1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	SyncRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pmo_sync_records_total",
			Help: "Records processed by the Salesforce sync, by entity and outcome",
		},
		[]string{"entity", "outcome"}, // outcome: "inserted" | "updated" | "error"
	)
)

// ── Salesforce API 指标 ──

var (
	SalesforceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pmo_salesforce_requests_total",
			Help: "Salesforce API requests by kind and result",
		},
		[]string{"kind", "result"}, // kind: "token" | "query" | "describe"
	)

	SalesforceBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pmo_salesforce_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// ── HTTP 指标 ──

var HTTPRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pmo_http_requests_total",
		Help: "HTTP requests by route and status class",
	},
	[]string{"method", "route", "status"},
)
