package handlers

import (
	"net/http"

	"skiply/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency snapshot taken by the health monitor.
func HealthHandler(snapshot func() utils.HealthStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := snapshot()
		code := http.StatusOK
		if !status.Mongo {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}
