package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Backend metrics
	BackendRequestsTotal   *prometheus.CounterVec
	BackendRequestDuration *prometheus.HistogramVec

	// Business metrics
	ViewLoads       *prometheus.CounterVec
	LoginAttempts   *prometheus.CounterVec
	UsersRegistered prometheus.Counter
	LinksGenerated  prometheus.Counter
	PayoutRequests  *prometheus.CounterVec
	Redirects       *prometheus.CounterVec

	// Storage metrics
	StorageRowsPurged prometheus.Counter
}

// New creates a Metrics instance registered on the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a Metrics instance registered on reg
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000, 500000, 1000000},
			},
			[]string{"method", "path"},
		),

		BackendRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_requests_total",
				Help: "Total number of calls to the affiliate backend",
			},
			[]string{"operation", "status"}, // status: HTTP code or "error"
		),
		BackendRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backend_request_duration_seconds",
				Help:    "Affiliate backend call latency in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"},
		),

		ViewLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "view_loads_total",
				Help: "Total number of view entries",
			},
			[]string{"view"},
		),
		LoginAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "login_attempts_total",
				Help: "Total number of login attempts",
			},
			[]string{"kind", "status"}, // kind: user, admin
		),
		UsersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of users registered through the storefront",
		}),
		LinksGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "affiliate_links_generated_total",
			Help: "Total number of affiliate links generated",
		}),
		PayoutRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_requests_total",
				Help: "Total number of payout requests",
			},
			[]string{"status"}, // submitted, rejected_validation, failed
		),
		Redirects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "affiliate_redirects_total",
				Help: "Total number of affiliate redirects",
			},
			[]string{"outcome"}, // destination, no_destination, error
		),

		StorageRowsPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "client_storage_rows_purged_total",
			Help: "Total number of expired client storage rows purged",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.BackendRequestsTotal,
		m.BackendRequestDuration,
		m.ViewLoads,
		m.LoginAttempts,
		m.UsersRegistered,
		m.LinksGenerated,
		m.PayoutRequests,
		m.Redirects,
		m.StorageRowsPurged,
	)

	return m
}

// Middleware creates an Echo middleware for Prometheus metrics
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			path := c.Path() // route pattern, e.g. /aff/:code

			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			m.HTTPRequestsTotal.WithLabelValues(req.Method, path, status).Inc()
			m.HTTPRequestDuration.WithLabelValues(req.Method, path, status).Observe(time.Since(start).Seconds())
			m.HTTPResponseSize.WithLabelValues(req.Method, path).Observe(float64(c.Response().Size))

			return err
		}
	}
}

// ObserveBackendCall records one affiliate backend call. status is the HTTP
// status code, or 0 when the request never got a response.
func (m *Metrics) ObserveBackendCall(operation string, status int, duration time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.BackendRequestsTotal.WithLabelValues(operation, label).Inc()
	m.BackendRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordViewLoad increments the view entry counter
func (m *Metrics) RecordViewLoad(view string) {
	m.ViewLoads.WithLabelValues(view).Inc()
}

// RecordLoginAttempt increments login attempts counter
func (m *Metrics) RecordLoginAttempt(kind string, success bool) {
	status := "failed"
	if success {
		status = "success"
	}
	m.LoginAttempts.WithLabelValues(kind, status).Inc()
}

// RecordUserRegistered increments users registered counter
func (m *Metrics) RecordUserRegistered() {
	m.UsersRegistered.Inc()
}

// RecordLinkGenerated increments the generated links counter
func (m *Metrics) RecordLinkGenerated() {
	m.LinksGenerated.Inc()
}

// RecordPayoutRequest increments payout requests by outcome
func (m *Metrics) RecordPayoutRequest(status string) {
	m.PayoutRequests.WithLabelValues(status).Inc()
}

// RecordRedirect increments redirects by outcome
func (m *Metrics) RecordRedirect(outcome string) {
	m.Redirects.WithLabelValues(outcome).Inc()
}

// RecordStoragePurge adds purged storage rows
func (m *Metrics) RecordStoragePurge(rows int64) {
	m.StorageRowsPurged.Add(float64(rows))
}
