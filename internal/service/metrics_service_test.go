package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.RecordCacheOperation("courses", true, time.Millisecond)
	m.RecordCacheOperation("courses", false, time.Millisecond)
	m.RecordCacheOperation("teachers", true, time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/api/classroom/summary", http.StatusOK, 20*time.Millisecond)
	m.ObserveUpstreamFetch("courses", models.FetchOutcomeOK, 10*time.Millisecond)
	m.ObserveUpstreamFetch("students", models.FetchOutcomeTimeout, 30*time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.CacheHits)
	assert.Equal(t, uint64(1), snap.CacheMisses)
	assert.InDelta(t, 2.0/3.0, snap.CacheHitRatio, 0.0001)
	assert.Equal(t, uint64(1), snap.RequestsTotal)
	assert.InDelta(t, 20, snap.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(2), snap.UpstreamFetches)
	assert.Equal(t, uint64(1), snap.UpstreamFailures)
	assert.InDelta(t, 20, snap.AverageUpstreamFetchMs, 0.001)
}

func TestMetricsServiceHandlerExposesCollectors(t *testing.T) {
	m := NewMetricsService()
	m.ObserveUpstreamFetch("courseWork", models.FetchOutcomeError, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `classroom_fetch_duration_seconds_count{outcome="error",resource="courseWork"} 1`)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.RecordCacheOperation("x", true, 0)
	m.ObserveCacheWrite(0)
	m.ObserveUpstreamFetch("x", models.FetchOutcomeOK, 0)
	m.ObserveHTTPRequest(http.MethodGet, "/", 200, 0)
	assert.Zero(t, m.Snapshot().RequestsTotal)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
