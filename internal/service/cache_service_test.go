package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
)

type fakeCacheRepo struct {
	mu       sync.Mutex
	data     map[string][]byte
	ttls     map[string]time.Duration
	getErr   error
	patterns []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return f.getErr
	}
	payload, ok := f.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = payload
	f.ttls[key] = ttl
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patterns = append(f.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			delete(f.data, key)
		}
	}
	return nil
}

func (f *fakeCacheRepo) keys(namespace string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for key := range f.data {
		if strings.HasPrefix(key, namespace+":") {
			count++
		}
	}
	return count
}

func TestCacheKeyIsOrderIndependent(t *testing.T) {
	a := CacheKey("courses", CacheParams{"pageSize": "10", "cohort": "2025-a"})
	b := CacheKey("courses", CacheParams{"cohort": "2025-a", "pageSize": "10"})
	assert.Equal(t, a, b)
	assert.Equal(t, `courses:{"cohort":"2025-a","pageSize":"10"}`, a)
	assert.Equal(t, "teachers:{}", CacheKey("teachers", nil))
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newFakeCacheRepo()
	svc := NewCacheService(repo, NewMetricsService(), 30*time.Second, nil, true)
	ctx := context.Background()

	var out []string
	hit, err := svc.Get(ctx, "courses", CacheParams{"pageSize": "5"}, &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(ctx, "courses", CacheParams{"pageSize": "5"}, []string{"a", "b"}, 0))
	assert.Equal(t, 30*time.Second, repo.ttls[`courses:{"pageSize":"5"}`])

	hit, err = svc.Get(ctx, "courses", CacheParams{"pageSize": "5"}, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestCacheServiceClearScopesToNamespace(t *testing.T) {
	repo := newFakeCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, nil, true)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "courses", CacheParams{"a": "1"}, 1, 0))
	require.NoError(t, svc.Set(ctx, "students", CacheParams{"a": "1"}, 2, 0))

	require.NoError(t, svc.Clear(ctx, "courses"))
	assert.Zero(t, repo.keys("courses"))
	assert.Equal(t, 1, repo.keys("students"))

	require.NoError(t, svc.Clear(ctx, ""))
	assert.Equal(t, []string{"courses:*", "*"}, repo.patterns)
	assert.Zero(t, repo.keys("students"))
}

func TestCacheServiceBackendErrorSurfaces(t *testing.T) {
	repo := newFakeCacheRepo()
	repo.getErr = errors.New("connection refused")
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	var out int
	hit, err := svc.Get(context.Background(), "courses", nil, &out)
	assert.False(t, hit)
	assert.Error(t, err)
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newFakeCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, nil, false)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "courses", nil, 1, 0))
	assert.Zero(t, repo.keys("courses"))

	var out int
	hit, err := svc.Get(ctx, "courses", nil, &out)
	require.NoError(t, err)
	assert.False(t, hit)
}
