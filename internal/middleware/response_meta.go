package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
)

const (
	responseMetaKey = "response_meta"
	cacheHeader     = "X-Cache"
)

type requestMeta struct {
	start    time.Time
	lookups  int
	cacheHit bool
}

// WithResponseMeta starts the per-request timer and cache bookkeeping read by ResponseMeta.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(responseMetaKey, &requestMeta{start: time.Now()})
		c.Next()
	}
}

// RecordCacheHit folds one cache lookup into the response. A response counts
// as a hit only when every lookup it made was served from cache.
func RecordCacheHit(c *gin.Context, hit bool) {
	meta := metaFrom(c)
	if meta == nil {
		return
	}
	if meta.lookups == 0 {
		meta.cacheHit = hit
	} else {
		meta.cacheHit = meta.cacheHit && hit
	}
	meta.lookups++
	if meta.cacheHit {
		c.Header(cacheHeader, "HIT")
	} else {
		c.Header(cacheHeader, "MISS")
	}
}

// ResponseMeta renders the envelope meta block. fallbackStart is used when
// WithResponseMeta is not installed on the route.
func ResponseMeta(c *gin.Context, fallbackStart time.Time) *models.ResponseMeta {
	start := fallbackStart
	hit := false
	if meta := metaFrom(c); meta != nil {
		start = meta.start
		hit = meta.cacheHit
	}
	return &models.ResponseMeta{
		CacheHit:         hit,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}
}

func metaFrom(c *gin.Context) *requestMeta {
	if c == nil {
		return nil
	}
	if value, exists := c.Get(responseMetaKey); exists {
		if meta, ok := value.(*requestMeta); ok {
			return meta
		}
	}
	return nil
}
