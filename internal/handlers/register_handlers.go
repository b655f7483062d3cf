package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/branchgl/backend/internal/core/ports/services"
	"github.com/branchgl/backend/internal/platform/config"
)

// actorHeader carries the acting operator's identifier, stamped by the
// upstream gateway. Postings without one are attributed to "system".
const actorHeader = "X-Actor-ID"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1/gl group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	gl := r.Group("/api/v1/gl")

	registerPostingRoutes(gl, services.Posting)
	registerAccountRoutes(gl, services.Account)
	registerReportingRoutes(gl, services.Reporting)
}

// actorID extracts the acting operator from the request.
func actorID(c *gin.Context) string {
	if id := c.GetHeader(actorHeader); id != "" {
		return id
	}
	return "system"
}
