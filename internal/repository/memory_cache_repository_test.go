package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
)

func TestMemoryCacheRoundTripAndExpiry(t *testing.T) {
	repo := NewMemoryCacheRepository()
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "courses:{}", []string{"c1", "c2"}, time.Minute))

	var got []string
	require.NoError(t, repo.Get(ctx, "courses:{}", &got))
	assert.Equal(t, []string{"c1", "c2"}, got)

	now = now.Add(time.Minute + time.Millisecond)
	err := repo.Get(ctx, "courses:{}", &got)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
	assert.Equal(t, 0, repo.Len(), "expired entry is evicted on read")
}

func TestMemoryCacheSetReplaces(t *testing.T) {
	repo := NewMemoryCacheRepository()
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "k", 1, time.Minute))
	require.NoError(t, repo.Set(ctx, "k", 2, time.Minute))

	var got int
	require.NoError(t, repo.Get(ctx, "k", &got))
	assert.Equal(t, 2, got)
}

func TestMemoryCacheDeleteByPattern(t *testing.T) {
	repo := NewMemoryCacheRepository()
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, `students:{"courseId":"1"}`, 1, time.Minute))
	require.NoError(t, repo.Set(ctx, `students:{"courseId":"2"}`, 1, time.Minute))
	require.NoError(t, repo.Set(ctx, `studentsX:{}`, 1, time.Minute))
	require.NoError(t, repo.Set(ctx, `teachers:{"courseId":"1"}`, 1, time.Minute))

	require.NoError(t, repo.DeleteByPattern(ctx, "students:*"))
	assert.Equal(t, 2, repo.Len())

	require.NoError(t, repo.DeleteByPattern(ctx, "*"))
	assert.Equal(t, 0, repo.Len())
}
