package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/metrics"
	"github.com/salabibne/Attire-Threads-Backend/middleware"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes
	SetupAuthRoutes(r, db)

	// Public catalog reads
	SetupCatalogRoutes(r, db)

	// User routes (JWT-protected): cart, checkout, orders
	SetupUserRoutes(r, db)

	// Admin routes (JWT + ADMIN role): catalog writes, fulfillment
	SetupAdminRoutes(r, db)

	// Ops: prometheus scrape behind the API key
	r.GET("/metrics", middleware.ValidateAPIKey, metrics.Handler())
}
