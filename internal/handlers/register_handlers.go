package handlers

import (
	portssvc "github.com/hendrawijaya/pembukuan_app/internal/core/ports/services"
	"github.com/hendrawijaya/pembukuan_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

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

	registerHomeRoutes(r)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerAccountRoutes(v1, services.Account)
	registerTemplateRoutes(v1, services.Template)
	registerTransactionRoutes(v1, services.Transaction)
}
