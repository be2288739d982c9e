package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	catalogControllers "github.com/salabibne/Attire-Threads-Backend/controllers/catalog"
	orderControllers "github.com/salabibne/Attire-Threads-Backend/controllers/order"
	"github.com/salabibne/Attire-Threads-Backend/middleware"
)

// SetupAdminRoutes registers catalog management and fulfillment endpoints.
// All require a JWT with the ADMIN role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireRole("ADMIN"))
	{
		adminGroup.POST("/categories", catalogControllers.CreateCategoryHandler(db))
		adminGroup.PATCH("/categories/:id", catalogControllers.UpdateCategoryHandler(db))
		adminGroup.DELETE("/categories/:id", catalogControllers.DeleteCategoryHandler(db))

		adminGroup.POST("/subcategories", catalogControllers.CreateSubCategoryHandler(db))
		adminGroup.PATCH("/subcategories/:id", catalogControllers.UpdateSubCategoryHandler(db))
		adminGroup.DELETE("/subcategories/:id", catalogControllers.DeleteSubCategoryHandler(db))

		adminGroup.POST("/products", catalogControllers.CreateProductHandler(db))
		adminGroup.PATCH("/products/:id", catalogControllers.UpdateProductHandler(db))
		adminGroup.DELETE("/products/:id", catalogControllers.DeleteProductHandler(db))

		adminGroup.POST("/variants", catalogControllers.CreateVariantHandler(db))
		adminGroup.PATCH("/variants/:id", catalogControllers.UpdateVariantHandler(db))
		adminGroup.DELETE("/variants/:id", catalogControllers.DeleteVariantHandler(db))

		adminGroup.POST("/attributes", catalogControllers.CreateAttributeHandler(db))
		adminGroup.PATCH("/attributes/:id", catalogControllers.UpdateAttributeHandler(db))
		adminGroup.DELETE("/attributes/:id", catalogControllers.DeleteAttributeHandler(db))

		adminGroup.POST("/skus",catalogControllers.CreateSKUHandler(db))
		adminGroup.PATCH("/skus/:id", catalogControllers.UpdateSKUHandler(db))
		adminGroup.DELETE("/skus/:id", catalogControllers.DeleteSKUHandler(db))
		adminGroup.GET("/skus/export", catalogControllers.ExportSKUsToExcel(db))

		adminGroup.PATCH("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
	}

	// Fulfillment dashboards subscribe here for new orders.
	r.GET("/ws/orders", middleware.ValidateToken, middleware.RequireRole("ADMIN"), orderControllers.OrderStreamHandler)
}
