// Package metrics exposes the Prometheus collectors of the fulfillment service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fulfillment"

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

type Metrics struct {
	registry *prometheus.Registry

	ActionsTotal           *prometheus.CounterVec
	ActionDuration         *prometheus.HistogramVec
	BackendRequestDuration *prometheus.HistogramVec
	BackendBreakerState    *prometheus.GaugeVec
	EventsPublished        *prometheus.CounterVec
	OTPLockouts            prometheus.Counter
	LedgerEntriesPurged    prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.ActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Total number of order workflow actions by outcome",
		},
		[]string{"action", "outcome"},
	)

	m.ActionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_duration_seconds",
			Help:      "Order workflow action duration in seconds",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"action"},
	)

	m.BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Order store request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation", "status"},
	)

	m.BackendBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "backend_circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	m.EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of order events published",
		},
		[]string{"event_type", "status"},
	)

	m.OTPLockouts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_lockouts_total",
			Help:      "Total number of OTP submissions refused by the lockout policy",
		},
	)

	m.LedgerEntriesPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_entries_purged_total",
			Help:      "Total number of expired ledger and OTP attempt rows removed",
		},
	)

	registry.MustRegister(
		m.ActionsTotal,
		m.ActionDuration,
		m.BackendRequestDuration,
		m.BackendBreakerState,
		m.EventsPublished,
		m.OTPLockouts,
		m.LedgerEntriesPurged,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordAction(action, outcome string, duration time.Duration) {
	m.ActionsTotal.WithLabelValues(action, outcome).Inc()
	m.ActionDuration.WithLabelValues(action).Observe(duration.Seconds())
}

func (m *Metrics) RecordBackendRequest(operation, status string, duration time.Duration) {
	m.BackendRequestDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

func (m *Metrics) SetBreakerState(name string, state int) {
	m.BackendBreakerState.WithLabelValues(name).Set(float64(state))
}

func (m *Metrics) RecordEventPublished(eventType string, success bool) {
	status := OutcomeSuccess
	if !success {
		status = OutcomeFailed
	}
	m.EventsPublished.WithLabelValues(eventType, status).Inc()
}
