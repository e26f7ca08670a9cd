package observability

import (
	"time"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the console BFF.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	backendDuration *prometheus.HistogramVec
	backendErrors   *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	snapshotOps     *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		backendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "atelie_backend_request_duration_seconds",
				Help:    "Duration of ateliê API calls by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		backendErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atelie_backend_errors_total",
				Help: "Total failed ateliê API calls by resource.",
			},
			[]string{"resource"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atelie_cache_hits_total",
				Help: "Reads served from the session snapshot without a fetch.",
			},
			[]string{"slice"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atelie_cache_misses_total",
				Help: "Reads that had to trigger a backend load first.",
			},
			[]string{"slice"},
		),
		snapshotOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atelie_snapshot_ops_total",
				Help: "Snapshot persistence operations by kind and outcome.",
			},
			[]string{"op"}, // persist, persist_error, restore, bulk_load, load_error
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atelie_requests_total",
				Help: "Total console requests processed.",
			},
			[]string{"status"},
		),
	}
}

// RecordBackendDuration records the duration of one backend call.
func (m *Metrics) RecordBackendDuration(operation string, d time.Duration) {
	m.backendDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrBackendError increments the backend error counter for a resource.
func (m *Metrics) IncrBackendError(resource string) {
	m.backendErrors.WithLabelValues(resource).Inc()
}

// IncrCacheHit increments the hit counter for a snapshot slice.
func (m *Metrics) IncrCacheHit(slice string) {
	m.cacheHits.WithLabelValues(slice).Inc()
}

// IncrCacheMiss increments the miss counter for a snapshot slice.
func (m *Metrics) IncrCacheMiss(slice string) {
	m.cacheMisses.WithLabelValues(slice).Inc()
}

// IncrSnapshotOp counts a snapshot persistence operation.
func (m *Metrics) IncrSnapshotOp(op string) {
	m.snapshotOps.WithLabelValues(op).Inc()
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// GetCacheStats returns a snapshot of cache-serving metrics suitable for the
// GET /v1/metrics/cache endpoint.
func (m *Metrics) GetCacheStats() *domain.CacheStats {
	slices := []string{
		"materiais", "movimentacoes", "resumo", "pecasProntas",
		"vendas", "encomendas", "listas", "atelie",
	}

	var hits, misses float64
	for _, s := range slices {
		hits += getCounterValue(m.cacheHits, s)
		misses += getCounterValue(m.cacheMisses, s)
	}

	hitRate := float64(0)
	if hits+misses > 0 {
		hitRate = hits / (hits + misses)
	}

	return &domain.CacheStats{
		Hits:        int64(hits),
		Misses:      int64(misses),
		HitRate:     hitRate,
		Persists:    int64(getCounterValue(m.snapshotOps, "persist")),
		Restores:    int64(getCounterValue(m.snapshotOps, "restore")),
		BulkLoads:   int64(getCounterValue(m.snapshotOps, "bulk_load")),
		FailedLoads: int64(getCounterValue(m.snapshotOps, "load_error")),
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
