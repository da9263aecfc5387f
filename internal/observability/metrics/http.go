package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	analysisTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	structureDocs    *prometheus.HistogramVec
	skippedDocuments *prometheus.CounterVec
}

func NewServerMetrics(service string) *ServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ctc",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ctc",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ctc",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	analysisTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ctc",
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Total analysis runs by terminal state.",
		},
		[]string{"service", "state"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ctc",
			Subsystem: "analysis",
			Name:      "run_duration_seconds",
			Help:      "Analysis run duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	structureDocs := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ctc",
			Subsystem: "analysis",
			Name:      "structure_documents",
			Help:      "Distribution of scored structure documents per run.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		},
		[]string{"service"},
	)
	skippedDocuments := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ctc",
			Subsystem: "analysis",
			Name:      "skipped_documents_total",
			Help:      "Total documents skipped without producing a score, by document role.",
		},
		[]string{"service", "role"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		analysisTotal,
		analysisDuration,
		structureDocs,
		skippedDocuments,
	)

	return &ServerMetrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestInFlight:  requestInFlight,
		analysisTotal:    analysisTotal,
		analysisDuration: analysisDuration,
		structureDocs:    structureDocs,
		skippedDocuments: skippedDocuments,
	}
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "/v1/analyses/") {
		return "/v1/analyses/current"
	}
	return path
}

func (m *ServerMetrics) RecordAnalysisRun(service, state string, scoredDocs int, duration time.Duration) {
	if state == "" {
		state = "unknown"
	}
	m.analysisTotal.WithLabelValues(service, state).Inc()
	m.analysisDuration.WithLabelValues(service).Observe(duration.Seconds())
	m.structureDocs.WithLabelValues(service).Observe(float64(scoredDocs))
}

func (m *ServerMetrics) RecordSkippedDocuments(service, role string, count int) {
	if count <= 0 {
		return
	}
	m.skippedDocuments.WithLabelValues(service, role).Add(float64(count))
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}
