package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Data       interface{}          `json:"data,omitempty"`
	Error      *appErrors.Error     `json:"error,omitempty"`
	Pagination *models.Pagination   `json:"pagination,omitempty"`
	Meta       *models.ResponseMeta `json:"meta,omitempty"`
}

// JSON sends a success response. Classroom data changes underneath the
// service, so intermediaries are told not to store it.
func JSON(c *gin.Context, status int, data interface{}, pagination *models.Pagination, meta *models.ResponseMeta) {
	noStore(c)
	c.JSON(status, Envelope{Data: data, Pagination: pagination, Meta: meta})
}

// OK is JSON with status 200 and no pagination.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data, nil, nil)
}

// Accepted responds with HTTP 202 Accepted.
func Accepted(c *gin.Context, data interface{}) {
	JSON(c, http.StatusAccepted, data, nil, nil)
}

// Error converts err to the common structure. The original error is attached
// to the gin context for the request logger.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	noStore(c)
	c.AbortWithStatusJSON(appErr.Status, Envelope{Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
