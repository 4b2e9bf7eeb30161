package handlers

import (
	"net/http"

	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency probe; 503 when one is down.
func HealthHandler(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if monitor == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm MediBook"})
			return
		}
		status := monitor.Status()
		if !status.Healthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "dependencies": status})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": status})
	}
}
