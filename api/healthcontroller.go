package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"searchagent/agent"
)

// RegisterHealthRoutes registers liveness endpoints.
func RegisterHealthRoutes(r *gin.Engine, a *agent.Agent) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"browser": a.BrowserRunning(),
		})
	})
}
