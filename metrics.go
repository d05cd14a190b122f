package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the service's prometheus collectors.
type metrics struct {
	requests         *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	recordsGenerated prometheus.Counter
	schemasSaved     prometheus.Counter
	authFailures     prometheus.Counter
}

// newMetrics creates the collectors and registers them with reg.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mockapi",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mockapi",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		recordsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mockapi",
			Name:      "records_generated_total",
			Help:      "Mock records returned to clients.",
		}),
		schemasSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mockapi",
			Name:      "schemas_saved_total",
			Help:      "Endpoint schemas written.",
		}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mockapi",
			Name:      "auth_failures_total",
			Help:      "Requests rejected for a missing or invalid credential.",
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.recordsGenerated, m.schemasSaved, m.authFailures)
	return m
}
