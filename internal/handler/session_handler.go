package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
	"github.com/noah-isme/classroom-dashboard-api/pkg/response"
)

type sessionService interface {
	Status(ctx context.Context) models.SessionStatus
	Logout(ctx context.Context) error
}

type cacheRefresher interface {
	Refresh(ctx context.Context, namespace string) (*models.CacheRefresh, error)
}

// SessionHandler exposes the upstream session state and cache controls.
type SessionHandler struct {
	sessions sessionService
	cache    cacheRefresher
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(sessions sessionService, cache cacheRefresher) *SessionHandler {
	return &SessionHandler{sessions: sessions, cache: cache}
}

// Session godoc
// @Summary Upstream classroom session status
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/session [get]
func (h *SessionHandler) Session(c *gin.Context) {
	response.OK(c, h.sessions.Status(c.Request.Context()))
}

// Logout godoc
// @Summary Drop the classroom session and all cached data
// @Tags Session
// @Success 204
// @Router /auth/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RefreshCache godoc
// @Summary Invalidate cached classroom data and queue a warm-up
// @Tags Cache
// @Produce json
// @Param namespace query string false "Cache namespace; all when empty"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/classroom/cache/refresh [post]
func (h *SessionHandler) RefreshCache(c *gin.Context) {
	result, err := h.cache.Refresh(c.Request.Context(), c.Query("namespace"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, result)
}
