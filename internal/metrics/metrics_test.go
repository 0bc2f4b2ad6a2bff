package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetrics_ObserveReport(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())

	m.ObserveReport(OutcomeSuccess, 12*time.Millisecond)
	m.ObserveReport(OutcomeSuccess, 3*time.Millisecond)
	m.ObserveReport(OutcomeDenied, 0)

	assert.Equal(t, 2.0, promtestutil.ToFloat64(m.reportsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.reportsTotal.WithLabelValues(OutcomeDenied)))
	assert.Equal(t, 0.0, promtestutil.ToFloat64(m.reportsTotal.WithLabelValues(OutcomeUnavailable)))
}

func TestPrometheusMetrics_IncrementMutation(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())

	m.IncrementMutation("expense", "created")
	m.IncrementMutation("expense", "created")
	m.IncrementMutation("client", "deleted")

	assert.Equal(t, 2.0, promtestutil.ToFloat64(m.mutationsTotal.WithLabelValues("expense", "created")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.mutationsTotal.WithLabelValues("client", "deleted")))
}

func TestNewPrometheusMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusMetrics(reg)

	assert.Panics(t, func() { NewPrometheusMetrics(reg) })
}

func TestMiddleware_CountsByRoute(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/v1/expenses/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/api/v1/payments/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Payment not found")
	})

	for _, target := range []string{"/api/v1/expenses/a", "/api/v1/expenses/b", "/api/v1/payments/c"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	}

	assert.Equal(t, 2.0, promtestutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/api/v1/expenses/:id", "200")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/api/v1/payments/:id", "404")))
}

func TestNoOpRecorder(t *testing.T) {
	var r Recorder = NoOpRecorder{}

	assert.NotPanics(t, func() {
		r.ObserveReport(OutcomeCancelled, time.Second)
		r.IncrementMutation("payment", "updated")
	})
}
