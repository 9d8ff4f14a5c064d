package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "roi_calculator"

// metrics holds the collectors of one handler. Each handler owns its registry
// so several handlers can live in one process.
type metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	calculations    *prometheus.CounterVec
	projected       prometheus.Histogram
	missingBlocks   prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &metrics{registry: reg}

	m.requests = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"route", "code"},
	)

	m.requestDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time spent serving API requests",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"route"},
	)

	m.calculations = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "calculations_total",
			Help:      "Total number of savings calculations by risk tolerance and industry",
		},
		[]string{"risk_tolerance", "industry"},
	)

	m.projected = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "projected_cost_reduction_ratio",
			Help:      "Target savings as a fraction of current operating expense",
			Buckets:   prometheus.LinearBuckets(0, 0.025, 10),
		},
	)

	m.missingBlocks = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "report_missing_blocks_total",
			Help:      "Content blocks requested by report assembly but absent from the library",
		},
	)

	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records request counts and latency per route template.
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unknown"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	})
}
