package api

import (
	"github.com/gin-gonic/gin"

	"searchagent/agent"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(a *agent.Agent) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterSearchRoutes(r, a)
	RegisterHealthRoutes(r, a)
	return r
}
