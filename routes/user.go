package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/salabibne/Attire-Threads-Backend/controllers/cart"
	orderControllers "github.com/salabibne/Attire-Threads-Backend/controllers/order"
	"github.com/salabibne/Attire-Threads-Backend/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCartHandler(db))
			cartGroup.POST("", cartControllers.AddToCartHandler(db))
			cartGroup.PATCH("/items/:itemID", cartControllers.UpdateCartItemHandler(db))
			cartGroup.DELETE("/items/:itemID", cartControllers.RemoveCartItemHandler(db))
			cartGroup.DELETE("", cartControllers.ClearCartHandler(db))
		}

		userGroup.POST("/checkout", orderControllers.CheckoutHandler(db))
		userGroup.GET("/orders", orderControllers.GetOrdersHandler(db))
		userGroup.GET("/orders/:orderID", orderControllers.GetOrderHandler(db))
	}
}
