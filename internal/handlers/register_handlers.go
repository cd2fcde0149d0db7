package handlers

import (
	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/middleware"
	"github.com/rajabalanj/poultry-ledger/internal/platform/config"
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

	// Setup API v1 routes with tenancy resolution, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	// Every v1 route runs in the scope of a tenant
	v1 := r.Group("/api/v1", middleware.TenancyMiddleware())

	// Delegate route registration to specific handlers, passing required services
	registerAccountRoutes(v1, service.Account)
	registerSettingsRoutes(v1, service.Settings)
	registerJournalRoutes(v1, service.Journal)
	registerReportingRoutes(v1, service.Reporting, service.Journal)
	registerInventoryRoutes(v1, service.Inventory)
	registerEventRoutes(v1, service.Posting)
	registerEggRoomRoutes(v1, service.EggRoom)
	registerFlockRoutes(v1, service.Flock)
	registerStandardsRoutes(v1, service.Standards)
}
