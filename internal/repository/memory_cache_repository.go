package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
)

type memoryEntry struct {
	payload []byte
	expires time.Time
}

// MemoryCacheRepository is a process-local cache. Entries are checked for
// expiry when read and evicted then; there is no background sweep, and the
// store is not shared between processes.
type MemoryCacheRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCacheRepository constructs an empty in-memory cache.
func NewMemoryCacheRepository() *MemoryCacheRepository {
	return &MemoryCacheRepository{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get unmarshals a live entry into dest or returns ErrCacheMiss.
func (r *MemoryCacheRepository) Get(_ context.Context, key string, dest interface{}) error {
	r.mu.Lock()
	entry, ok := r.entries[key]
	if ok && r.now().After(entry.expires) {
		delete(r.entries, key)
		ok = false
	}
	r.mu.Unlock()

	if !ok {
		return appErrors.ErrCacheMiss
	}
	if err := json.Unmarshal(entry.payload, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

// Set replaces the entry for key.
func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	r.mu.Lock()
	r.entries[key] = memoryEntry{payload: payload, expires: r.now().Add(ttl)}
	r.mu.Unlock()
	return nil
}

// DeleteByPattern removes entries matching pattern. Only a trailing "*"
// wildcard is understood; any other pattern is an exact key.
func (r *MemoryCacheRepository) DeleteByPattern(_ context.Context, pattern string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		for key := range r.entries {
			if strings.HasPrefix(key, prefix) {
				delete(r.entries, key)
			}
		}
		return nil
	}
	delete(r.entries, pattern)
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (r *MemoryCacheRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
