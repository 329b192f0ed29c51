package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "exercise_tracker",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exercise_tracker",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "exercise_tracker",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	usersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "exercise_tracker",
			Subsystem: "users",
			Name:      "created_total",
			Help:      "Total number of users created.",
		},
	)

	exercisesLogged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "exercise_tracker",
			Subsystem: "exercises",
			Name:      "logged_total",
			Help:      "Total number of exercises logged.",
		},
	)

	outcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exercise_tracker",
			Subsystem: "api",
			Name:      "outcomes_total",
			Help:      "Operation results by kind: ok, conflict or error.",
		},
		[]string{"operation", "result"},
	)

	logRecords = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "exercise_tracker",
			Subsystem: "logs",
			Name:      "records_returned",
			Help:      "Number of exercises returned per log query.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	maintenanceRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exercise_tracker",
			Subsystem: "maintenance",
			Name:      "runs_total",
			Help:      "Total number of store maintenance runs.",
		},
		[]string{"success"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		usersCreated,
		exercisesLogged,
		outcomes,
		logRecords,
		maintenanceRuns,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
// Requests are labelled by chi route pattern to keep user ids out of label values.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordUserCreated counts a successful user creation.
func RecordUserCreated() {
	usersCreated.Inc()
}

// RecordExerciseLogged counts a successfully stored exercise.
func RecordExerciseLogged() {
	exercisesLogged.Inc()
}

// RecordOutcome counts an operation result; result is "ok", "conflict" or "error".
func RecordOutcome(operation, result string) {
	outcomes.WithLabelValues(operation, result).Inc()
}

// RecordLogQuery observes how many records a log query returned.
func RecordLogQuery(count int) {
	logRecords.Observe(float64(count))
}

// RecordMaintenance counts a maintenance run.
func RecordMaintenance(success bool) {
	maintenanceRuns.WithLabelValues(strconv.FormatBool(success)).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack is required for websocket upgrades of instrumented routes.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("metrics: underlying ResponseWriter does not support hijacking")
	}
	if r.status == http.StatusOK {
		r.status = http.StatusSwitchingProtocols
	}
	return h.Hijack()
}
