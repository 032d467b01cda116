package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
	"github.com/noah-isme/classroom-dashboard-api/pkg/response"
)

type sessionChecker interface {
	Authenticated(ctx context.Context) bool
}

// RequireSession rejects requests while no upstream classroom session exists.
func RequireSession(sessions sessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions == nil || !sessions.Authenticated(c.Request.Context()) {
			response.Error(c, appErrors.ErrNotAuthenticated)
			return
		}
		c.Next()
	}
}
