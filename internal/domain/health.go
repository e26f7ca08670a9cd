package domain

// ============================================================
// Health & cache metrics API responses
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth represents the health of an individual dependency.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latencyMs"`
	LastChecked string `json:"lastChecked"`
}

// CacheStats is returned by GET /v1/metrics/cache: a snapshot of how the
// session store has been serving reads since boot.
type CacheStats struct {
	Hits        int64   `json:"hits"`
	Misses      int64   `json:"misses"`
	HitRate     float64 `json:"hitRate"`
	Persists    int64   `json:"persists"`
	Restores    int64   `json:"restores"`
	BulkLoads   int64   `json:"bulkLoads"`
	FailedLoads int64   `json:"failedLoads"`
}

// SuccessResponse wraps a successful single-entity response.
type SuccessResponse struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
