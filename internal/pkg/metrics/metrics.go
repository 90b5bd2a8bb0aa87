// Package metrics holds the Prometheus instruments of the API: HTTP request
// counters and latencies, plus counters for the project workflows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "capstone"

// Rejection reasons recorded by RegistrationRejected
const (
	ReasonValidation = "validation"
	ReasonCapacity   = "capacity"
	ReasonNotFound   = "not_found"
	ReasonConflict   = "conflict"
)

// Metrics groups every instrument. A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ProjectsRegistered    prometheus.Counter
	RegistrationsRejected *prometheus.CounterVec
	StageUpdates          *prometheus.CounterVec
	ProjectsDeleted       prometheus.Counter
}

// New creates the instruments and registers them on reg.
// Production passes the application registry served at /metrics; tests pass a fresh one.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
		ProjectsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "projects",
			Name:      "registered_total",
			Help:      "Projects created with their review",
		}),
		RegistrationsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "projects",
				Name:      "registrations_rejected_total",
				Help:      "Project registrations rejected by reason",
			},
			[]string{"reason"},
		),
		StageUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "reviews",
				Name:      "stage_updates_total",
				Help:      "Review stage updates by stage",
			},
			[]string{"stage"},
		),
		ProjectsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "projects",
			Name:      "deleted_total",
			Help:      "Projects deleted together with their review",
		}),
	}
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// ProjectRegistered counts a successful registration
func (m *Metrics) ProjectRegistered() {
	if m == nil {
		return
	}
	m.ProjectsRegistered.Inc()
}

// RegistrationRejected counts a rejected registration
func (m *Metrics) RegistrationRejected(reason string) {
	if m == nil {
		return
	}
	m.RegistrationsRejected.WithLabelValues(reason).Inc()
}

// StageUpdated counts an applied stage update
func (m *Metrics) StageUpdated(stage string) {
	if m == nil {
		return
	}
	m.StageUpdates.WithLabelValues(stage).Inc()
}

// ProjectDeleted counts a project deletion
func (m *Metrics) ProjectDeleted() {
	if m == nil {
		return
	}
	m.ProjectsDeleted.Inc()
}
