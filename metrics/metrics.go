package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	initOnce sync.Once

	// HTTP metrics
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Transfer and authentication metrics
	transfersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfers_total",
			Help: "Total number of file transfer attempts.",
		},
		[]string{"direction", "outcome"},
	)

	authFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Total number of invalid password submissions.",
		},
		[]string{"direction"},
	)

	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of webhook notification deliveries.",
		},
		[]string{"outcome"},
	)
)

// Init registers all collectors exactly once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(httpRequestsTotal)
		prometheus.MustRegister(httpRequestDuration)
		prometheus.MustRegister(transfersTotal)
		prometheus.MustRegister(authFailuresTotal)
		prometheus.MustRegister(notificationsTotal)
	})
}

// Handler exposes the /metrics HTTP handler.
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}

// statusCapturingWriter records the status code written by the handler.
type statusCapturingWriter struct {
	w      http.ResponseWriter
	status int
}

func (s *statusCapturingWriter) Header() http.Header         { return s.w.Header() }
func (s *statusCapturingWriter) Write(b []byte) (int, error) { return s.w.Write(b) }
func (s *statusCapturingWriter) WriteHeader(code int) {
	s.status = code
	s.w.WriteHeader(code)
}

// HTTPMetricsMiddleware captures basic HTTP metrics.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	Init()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		scw := &statusCapturingWriter{w: w, status: 200}
		next.ServeHTTP(scw, r)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, itoa(scw.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// ObserveTransfer records the outcome of a file transfer attempt.
func ObserveTransfer(direction, outcome string) {
	Init()
	transfersTotal.WithLabelValues(direction, outcome).Inc()
}

// ObserveAuthFailure records an invalid password submission.
func ObserveAuthFailure(direction string) {
	Init()
	authFailuresTotal.WithLabelValues(direction).Inc()
}

// ObserveNotification records a webhook delivery attempt.
func ObserveNotification(outcome string) {
	Init()
	notificationsTotal.WithLabelValues(outcome).Inc()
}

// Small helper to avoid importing strconv everywhere.
func itoa(i int) string {
	// tiny fastpath for common statuses
	switch i {
	case 200:
		return "200"
	case 204:
		return "204"
	case 400:
		return "400"
	case 401:
		return "401"
	case 404:
		return "404"
	case 500:
		return "500"
	default:
		return strconv.Itoa(i)
	}
}
