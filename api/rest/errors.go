package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qingyunzi/xiuxian/server/gameerr"
)

// writeError renders an operation error. Game rejections become HTTP 400
// with a machine-readable kind; anything else is an internal error.
func writeError(c *gin.Context, err error) {
	if ge := gameerr.As(err); ge != nil {
		body := gin.H{
			"kind":  ge.Kind,
			"error": ge.Message,
		}
		if ge.Kind == gameerr.InsufficientResource {
			body["resource"] = ge.Resource
			body["need"] = ge.Need
			body["have"] = ge.Have
		}
		if ge.Kind == gameerr.NotYetReady {
			body["remainingMinutes"] = ge.RemainingMinutes()
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
