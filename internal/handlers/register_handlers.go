package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/tillpoint/cashbook_app/internal/core/ports/services"
	"github.com/tillpoint/cashbook_app/internal/middleware"
	"github.com/tillpoint/cashbook_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// route registrations. Every v1 route is tenant-scoped.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.TenantMiddleware())

	registerCategoryRoutes(v1, services.Category)
	registerSetupRoutes(v1, services.Setup)
	registerCashEntryRoutes(v1, services.Posting)
	registerSummaryRoutes(v1, services.Summary)
}
