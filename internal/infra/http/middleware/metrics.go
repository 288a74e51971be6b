package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_created_total",
			Help: "Total number of buyer leads created",
		},
		[]string{"source"},
	)

	leadsImported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_imported_total",
			Help: "Total number of buyer leads inserted via CSV import",
		},
	)

	importRowsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "import_rows_rejected_total",
			Help: "Total number of CSV import rows rejected by validation",
		},
	)

	updateConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "update_conflicts_total",
			Help: "Total number of updates rejected by the version-token check",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordLeadCreated(source string) {
	leadsCreated.WithLabelValues(source).Inc()
}

func RecordImport(inserted, rejected int) {
	leadsImported.Add(float64(inserted))
	importRowsRejected.Add(float64(rejected))
}

func RecordUpdateConflict() {
	updateConflicts.Inc()
}
