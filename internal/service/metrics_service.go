package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/sis-reg-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the gateway.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	upstreamErrors  *prometheus.CounterVec
	eligibilityHits prometheus.Counter
	eligibilityMiss prometheus.Counter
	commitItems     *prometheus.CounterVec
	drops           *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	upstreamLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_request_duration_seconds",
		Help:    "Duration of catalog backend calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	upstreamErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_request_errors_total",
		Help: "Total failed catalog backend calls",
	}, []string{"method", "path"})

	eligibilityHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eligibility_cache_hits_total",
		Help: "Eligibility verdicts served from the session cache",
	})

	eligibilityMiss := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eligibility_cache_misses_total",
		Help: "Eligibility verdicts that required an upstream lookup",
	})

	commitItems := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registration_commit_items_total",
		Help: "Per-item commit outcomes",
	}, []string{"outcome"})

	drops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registration_drops_total",
		Help: "Drop request outcomes",
	}, []string{"outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, upstreamLatency, upstreamErrors,
		eligibilityHits, eligibilityMiss, commitItems, drops, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		upstreamLatency: upstreamLatency,
		upstreamErrors:  upstreamErrors,
		eligibilityHits: eligibilityHits,
		eligibilityMiss: eligibilityMiss,
		commitItems:     commitItems,
		drops:           drops,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveUpstreamRequest records one catalog backend call.
func (m *MetricsService) ObserveUpstreamRequest(method, path string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(method, path).Observe(duration.Seconds())
	if !success {
		m.upstreamErrors.WithLabelValues(method, path).Inc()
	}
}

// ObserveEligibilityLookup records a session-cache hit or miss.
func (m *MetricsService) ObserveEligibilityLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.eligibilityHits.Inc()
	} else {
		m.eligibilityMiss.Inc()
	}
}

// ObserveCommitItem records a per-item commit outcome.
func (m *MetricsService) ObserveCommitItem(outcome models.RegistrationOutcome) {
	if m == nil {
		return
	}
	m.commitItems.WithLabelValues(string(outcome)).Inc()
}

// ObserveDrop records a drop outcome.
func (m *MetricsService) ObserveDrop(outcome models.RegistrationOutcome) {
	if m == nil {
		return
	}
	m.drops.WithLabelValues(string(outcome)).Inc()
}
