package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
)

func serveMeta(t *testing.T, hits ...bool) (*models.ResponseMeta, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithResponseMeta())
	var meta *models.ResponseMeta
	r.GET("/x", func(c *gin.Context) {
		for _, hit := range hits {
			RecordCacheHit(c, hit)
		}
		meta = ResponseMeta(c, time.Now())
		c.Status(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NotNil(t, meta)
	return meta, rec
}

func TestResponseMetaSingleHit(t *testing.T) {
	meta, rec := serveMeta(t, true)
	assert.True(t, meta.CacheHit)
	assert.GreaterOrEqual(t, meta.ProcessingTimeMs, int64(0))
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
}

func TestResponseMetaMixedLookupsIsMiss(t *testing.T) {
	meta, rec := serveMeta(t, true, false, true)
	assert.False(t, meta.CacheHit)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
}

func TestResponseMetaWithoutLookups(t *testing.T) {
	meta, rec := serveMeta(t)
	assert.False(t, meta.CacheHit)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestResponseMetaWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	RecordCacheHit(c, true)
	meta := ResponseMeta(c, time.Now().Add(-time.Second))
	assert.False(t, meta.CacheHit)
	assert.GreaterOrEqual(t, meta.ProcessingTimeMs, int64(1000))
}
