package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheParams identifies an entry inside a namespace. Keys are serialised in
// sorted order so callers do not need to normalise them.
type CacheParams map[string]string

// CacheService stores provider payloads under namespace + params keys.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// DefaultTTL returns the lifetime applied when Set receives ttl <= 0.
func (s *CacheService) DefaultTTL() time.Duration {
	if s == nil {
		return 0
	}
	return s.defaultTTL
}

// CacheKey derives the storage key of an entry.
func CacheKey(namespace string, params CacheParams) string {
	if params == nil {
		params = CacheParams{}
	}
	payload, err := json.Marshal(params)
	if err != nil {
		return namespace + ":__key__"
	}
	return namespace + ":" + string(payload)
}

// Get attempts to retrieve a cached entry. It returns true when the cache was hit.
// Expired entries are reported as misses.
func (s *CacheService) Get(ctx context.Context, namespace string, params CacheParams, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	key := CacheKey(namespace, params)
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	duration := time.Since(start)
	if err != nil {
		s.metrics.RecordCacheOperation(namespace, false, duration)
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return false, nil
		}
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	s.metrics.RecordCacheOperation(namespace, true, duration)
	return true, nil
}

// Set stores the value in cache, replacing any previous entry.
func (s *CacheService) Set(ctx context.Context, namespace string, params CacheParams, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	key := CacheKey(namespace, params)
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Clear removes every entry of a namespace. An empty namespace clears all entries.
func (s *CacheService) Clear(ctx context.Context, namespace string) error {
	if !s.Enabled() {
		return nil
	}
	pattern := "*"
	if namespace = strings.TrimSpace(namespace); namespace != "" {
		pattern = namespace + ":*"
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache clear failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	return nil
}
