package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/zhiyar-dev/finman_backend/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", GetHome)

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerInvoiceRoutes(v1, services.Invoice)
	registerPaymentRoutes(v1, services.Settlement)
	registerContactRoutes(v1, services.Contact, services.Settlement)
	registerExchangeRateRoutes(v1, services.ExchangeRate)
	registerAuditRoutes(v1, services.Audit)
}
