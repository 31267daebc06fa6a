package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// internalError logs the underlying cause and answers with a generic
// envelope so internals never leak to clients.
func internalError(c *gin.Context, err error) {
	logrus.WithFields(logrus.Fields{
		"request_id": c.GetString("requestID"),
		"path":       c.Request.URL.Path,
	}).WithError(err).Error("internal server error")

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal server error",
	})
}

func enterpriseID(c *gin.Context) uint {
	return c.GetUint("enterpriseID")
}
