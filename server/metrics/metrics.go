package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "folio"

// Submission outcomes
const (
	ACCEPTED     = "accepted"
	INVALID      = "invalid"
	RATE_LIMITED = "rate_limited"
	ERROR        = "error"
)

// Notification outcomes
const (
	SENT    = "sent"
	FAILED  = "failed"
	SKIPPED = "skipped"
)

// Metrics holds the collectors exposed on /metrics. Each instance owns its
// registry so several servers can live in one process.
type Metrics struct {
	registry      *prometheus.Registry
	submissions   *prometheus.CounterVec
	notifications *prometheus.CounterVec
	requests      *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "contact_submissions_total",
				Help:      "Count of contact form submissions by outcome.",
			},
			[]string{"outcome"},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_total",
				Help:      "Count of owner notifications by outcome.",
			},
			[]string{"outcome"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Count of HTTP requests by method and status code.",
			},
			[]string{"method", "code"},
		),
	}

	m.registry.MustRegister(
		m.submissions,
		m.notifications,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) RecordSubmission(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordNotification(outcome string) {
	m.notifications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordRequest(method, code string) {
	m.requests.WithLabelValues(method, code).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
