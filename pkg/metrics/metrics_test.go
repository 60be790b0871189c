package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveBackendCall(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.ObserveBackendCall("products.list", http.StatusOK, 20*time.Millisecond)
	m.ObserveBackendCall("products.list", 0, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BackendRequestsTotal.WithLabelValues("products.list", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BackendRequestsTotal.WithLabelValues("products.list", "error")))
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/aff/:code", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/aff/abc123", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/aff/:code", "200")))
}

func TestBusinessCounters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.RecordLoginAttempt("admin", false)
	m.RecordRedirect("no_destination")
	m.RecordStoragePurge(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("admin", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Redirects.WithLabelValues("no_destination")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.StorageRowsPurged))
}
