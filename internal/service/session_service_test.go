package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
)

type fakeSessionStore struct {
	status  models.SessionStatus
	cleared bool
}

func (f *fakeSessionStore) Status() models.SessionStatus { return f.status }

func (f *fakeSessionStore) Clear() {
	f.cleared = true
	f.status = models.SessionStatus{}
}

func TestSessionServiceLogoutClearsEverything(t *testing.T) {
	repo := newFakeCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, NamespaceCourses, nil, 1, 0))
	require.NoError(t, cache.Set(ctx, NamespaceSubmissions, nil, 1, 0))

	store := &fakeSessionStore{status: models.SessionStatus{Authenticated: true}}
	svc := NewSessionService(store, cache, nil)
	assert.True(t, svc.Authenticated(ctx))

	require.NoError(t, svc.Logout(ctx))
	assert.True(t, store.cleared)
	assert.False(t, svc.Authenticated(ctx))
	assert.Zero(t, repo.keys(NamespaceCourses))
	assert.Zero(t, repo.keys(NamespaceSubmissions))
}
