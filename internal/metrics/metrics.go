package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Report outcomes
const (
	OutcomeSuccess     = "success"
	OutcomeDenied      = "denied"
	OutcomeUnavailable = "unavailable"
	OutcomeCancelled   = "cancelled"
)

// Recorder records service-level measurements
type Recorder interface {
	ObserveReport(outcome string, duration time.Duration)
	IncrementMutation(entity, operation string)
}

// PrometheusMetrics implements Recorder and the HTTP middleware with Prometheus
// collectors
type PrometheusMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	reportsTotal    *prometheus.CounterVec
	reportDuration  prometheus.Histogram
	mutationsTotal  *prometheus.CounterVec
}

// NewPrometheusMetrics creates the collectors and registers them with reg
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		reportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_reports_total",
				Help: "Total number of dashboard reports computed, by outcome",
			},
			[]string{"outcome"},
		),
		reportDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dashboard_report_duration_milliseconds",
				Help:    "Dashboard report duration in milliseconds, record reads included",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		mutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "record_mutations_total",
				Help: "Total number of record writes, by entity and operation",
			},
			[]string{"entity", "operation"},
		),
	}

	reg.MustRegister(m.requestsTotal, m.requestDuration, m.reportsTotal, m.reportDuration, m.mutationsTotal)
	return m
}

// ObserveReport implements Recorder
func (m *PrometheusMetrics) ObserveReport(outcome string, duration time.Duration) {
	m.reportsTotal.WithLabelValues(outcome).Inc()
	m.reportDuration.Observe(float64(duration.Milliseconds()))
}

// IncrementMutation implements Recorder
func (m *PrometheusMetrics) IncrementMutation(entity, operation string) {
	m.mutationsTotal.WithLabelValues(entity, operation).Inc()
}

// Middleware returns an Echo middleware that counts and times requests by route
func (m *PrometheusMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.requestsTotal.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// NoOpRecorder discards all measurements (for tests or when metrics are disabled)
type NoOpRecorder struct{}

// ObserveReport does nothing
func (NoOpRecorder) ObserveReport(outcome string, duration time.Duration) {}

// IncrementMutation does nothing
func (NoOpRecorder) IncrementMutation(entity, operation string) {}
