package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashleendsilva/food-rescue/pkg/httperr"
)

// respondOK writes the success envelope, merging any extra payload keys.
func respondOK(c *gin.Context, message string, extra gin.H) {
	body := gin.H{"status": "success"}
	if message != "" {
		body["message"] = message
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// respondError maps an error from the taxonomy to the error envelope.
// Internal causes are logged here and never leave the server.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status, msg := httperr.Status(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"status": "error", "message": msg})
}

// respondBadBody handles an unparseable request body.
func respondBadBody(c *gin.Context, log *zap.Logger, err error) {
	log.Warn("failed to parse request body",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
}
