package handlers

import (
	"net/http"

	"skiply/middleware"
	"skiply/models"
	"skiply/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request logger from the Gin context, or the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.L()
}

// identityFrom reads the authenticated caller, answering 401 when absent.
func identityFrom(c *gin.Context) (models.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authorized", "")
	}
	return identity, ok
}
