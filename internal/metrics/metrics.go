package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for submissions.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	FormViews        prometheus.Counter
	Submissions      *prometheus.CounterVec
	FieldErrors      *prometheus.CounterVec
	RenderFailures   prometheus.Counter
	RequestDurations *prometheus.HistogramVec
}

// New creates and registers all metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FormViews: f.NewCounter(prometheus.CounterOpts{
			Name: "registration_form_views_total",
			Help: "Total number of empty registration forms served",
		}),
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_submissions_total",
			Help: "Registration submissions by outcome",
		}, []string{"outcome"}),
		FieldErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_field_errors_total",
			Help: "Field validation failures by field and tag",
		}, []string{"field", "tag"}),
		RenderFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "registration_render_failures_total",
			Help: "Views that could not be rendered",
		}),
		RequestDurations: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route, method and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

// All methods are no-ops on a nil *Metrics so handlers can run without them.

func (m *Metrics) IncFormViews() {
	if m == nil {
		return
	}
	m.FormViews.Inc()
}

func (m *Metrics) IncSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncFieldError(field, tag string) {
	if m == nil {
		return
	}
	m.FieldErrors.WithLabelValues(field, tag).Inc()
}

func (m *Metrics) IncRenderFailures() {
	if m == nil {
		return
	}
	m.RenderFailures.Inc()
}

func (m *Metrics) ObserveRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDurations.WithLabelValues(route, method, status).Observe(seconds)
}
