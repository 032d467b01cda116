package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessions bool

func (s stubSessions) Authenticated(context.Context) bool { return bool(s) }

func newSessionRouter(sessions sessionChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireSession(sessions))
	r.GET("/courses", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRequireSessionRejectsMissingSession(t *testing.T) {
	rec := httptest.NewRecorder()
	newSessionRouter(stubSessions(false)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NOT_AUTHENTICATED", body.Error.Code)
}

func TestRequireSessionPassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	newSessionRouter(stubSessions(true)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
