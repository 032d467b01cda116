package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
)

const cacheEntriesSchema = `CREATE TABLE IF NOT EXISTS cache_entries (
    key TEXT PRIMARY KEY,
    value JSONB NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL
)`

type cacheEntryRow struct {
	Value     []byte    `db:"value"`
	ExpiresAt time.Time `db:"expires_at"`
}

// PostgresCacheRepository stores cache entries in a table so that instances
// without Redis can still share one cache. Expired rows are deleted when read.
type PostgresCacheRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPostgresCacheRepository constructs the SQL cache store.
func NewPostgresCacheRepository(db *sqlx.DB) *PostgresCacheRepository {
	return &PostgresCacheRepository{db: db, now: time.Now}
}

// EnsureSchema creates the cache table when missing.
func (r *PostgresCacheRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, cacheEntriesSchema); err != nil {
		return fmt.Errorf("create cache_entries: %w", err)
	}
	return nil
}

// Get loads a live entry into dest or returns ErrCacheMiss.
func (r *PostgresCacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	var row cacheEntryRow
	err := r.db.GetContext(ctx, &row, "SELECT value, expires_at FROM cache_entries WHERE key = $1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrCacheMiss
		}
		return fmt.Errorf("select cache entry %s: %w", key, err)
	}
	if r.now().After(row.ExpiresAt) {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE key = $1 AND expires_at = $2", key, row.ExpiresAt); err != nil {
			return fmt.Errorf("evict cache entry %s: %w", key, err)
		}
		return appErrors.ErrCacheMiss
	}
	if err := json.Unmarshal(row.Value, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

// Set upserts the entry for key.
func (r *PostgresCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	query := `INSERT INTO cache_entries (key, value, expires_at) VALUES ($1, $2, $3)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`
	if _, err := r.db.ExecContext(ctx, query, key, payload, r.now().Add(ttl).UTC()); err != nil {
		return fmt.Errorf("upsert cache entry %s: %w", key, err)
	}
	return nil
}

// DeleteByPattern removes rows whose key matches the glob pattern ("*" only).
func (r *PostgresCacheRepository) DeleteByPattern(ctx context.Context, pattern string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key LIKE $1 ESCAPE '\'`, globToLike(pattern)); err != nil {
		return fmt.Errorf("delete cache pattern %s: %w", pattern, err)
	}
	return nil
}

func globToLike(pattern string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`, `*`, `%`)
	return replacer.Replace(pattern)
}
