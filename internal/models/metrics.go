package models

import "time"

// Outcomes of a classroom provider request, used as metric labels.
const (
	FetchOutcomeOK      = "ok"
	FetchOutcomeError   = "error"
	FetchOutcomeTimeout = "timeout"
	FetchOutcomeAuth    = "unauthenticated"
)

// ServiceMetrics is a point-in-time snapshot of process counters.
type ServiceMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"avg_request_duration_ms"`
	UpstreamFetches          uint64    `json:"upstream_fetches"`
	UpstreamFailures         uint64    `json:"upstream_failures"`
	AverageUpstreamFetchMs   float64   `json:"avg_upstream_fetch_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
