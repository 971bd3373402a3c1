package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	ActiveSessions prometheus.Gauge
	AuthEvents     *prometheus.CounterVec
	PlanMutations  *prometheus.CounterVec
	CacheEvents    *prometheus.CounterVec
	AssistRequests *prometheus.CounterVec
	AssistLatency  prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of live login sessions.",
		}),
		AuthEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_events_total",
			Help:      "Authentication events by type.",
		}, []string{"event"}),
		PlanMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_mutations_total",
			Help:      "Plan mutations by operation and outcome.",
		}, []string{"op", "outcome"}),
		CacheEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_cache_events_total",
			Help:      "Plan list cache hits, misses and invalidations.",
		}, []string{"event"}),
		AssistRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assist_requests_total",
			Help:      "Advisory AI requests by operation and outcome.",
		}, []string{"op", "outcome"}),
		AssistLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assist_latency_ms",
			Help:      "Latency of advisory AI provider calls in milliseconds.",
			Buckets:   []float64{100, 300, 700, 1500, 3000, 6000, 12000, 30000},
		}),
	}
}

func (m *Metrics) ObserveAssistLatency(d time.Duration) {
	m.AssistLatency.Observe(float64(d.Milliseconds()))
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
