package middlewares

import (
	"SMCHealth/exceptions"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// HttpError maps err to its status, logs server side failures and writes the
// client message.
func HttpError(c *gin.Context, log *zap.Logger, err error) {
	status := exceptions.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	} else {
		log.Debug("request rejected",
			zap.String("path", c.FullPath()),
			zap.String("kind", exceptions.KindOf(err).String()),
			zap.Error(err))
	}
	c.JSON(status, gin.H{
		"error": exceptions.ClientMessage(err),
		"kind":  exceptions.KindOf(err).String(),
	})
}

// BadRequest answers a request whose body or parameters could not be parsed.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "kind": exceptions.KindInvalidInput.String()})
}
