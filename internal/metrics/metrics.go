// Package metrics exposes Prometheus collectors for the portal.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matheustorresii/vitrine-sorocabana/internal/apiclient"
	"github.com/matheustorresii/vitrine-sorocabana/internal/middleware"
)

const namespace = "vitrine"

type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight   prometheus.Gauge
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	backendFetches *prometheus.CounterVec
	storeMutations *prometheus.CounterVec
	services       prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "path"}),
		backendFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "fetches_total",
			Help:      "Backend API fetches by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		storeMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "services",
			Name:      "mutations_total",
			Help:      "Service store mutations by operation and outcome.",
		}, []string{"op", "outcome"}),
		services: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "services",
			Name:      "count",
			Help:      "Number of services currently stored.",
		}),
	}
	m.Registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.backendFetches,
		m.storeMutations,
		m.services,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Instrument wraps next with request metrics. /metrics itself is skipped.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		rec := middleware.NewStatusRecorder(w)
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := routeLabel(r)
		method := strings.ToUpper(r.Method)
		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.Status)).Inc()
		m.httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

// ObserveFetch matches apiclient.Observer.
func (m *Metrics) ObserveFetch(path string, err error) {
	outcome := "ok"
	if err != nil {
		switch apiclient.KindOf(err) {
		case apiclient.KindStatus:
			outcome = "status"
		case apiclient.KindMalformed:
			outcome = "malformed"
		default:
			outcome = "transport"
		}
	}
	m.backendFetches.WithLabelValues(path, outcome).Inc()
}

// RecordMutation matches services.Recorder.
func (m *Metrics) RecordMutation(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.storeMutations.WithLabelValues(op, outcome).Inc()
}

// SetServiceCount tracks the size of the services list.
func (m *Metrics) SetServiceCount(n int) {
	m.services.Set(float64(n))
}

// unmatchedPath labels requests no route matched.
const unmatchedPath = "unmatched"

// routeLabel uses the matched route template so the label set stays bounded.
// Variable patterns are dropped: "/x/{id:[0-9]+}" becomes "/x/{id}".
func routeLabel(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unmatchedPath
	}
	tpl, err := route.GetPathTemplate()
	if err != nil || tpl == "" {
		return unmatchedPath
	}
	var b strings.Builder
	depth := 0
	skipping := false
	for _, c := range tpl {
		switch {
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				skipping = false
			}
		case c == ':' && depth == 1:
			skipping = true
			continue
		}
		if skipping && depth > 0 {
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
