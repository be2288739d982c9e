package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/auth"
	"github.com/salabibne/Attire-Threads-Backend/middleware"
)

// SetupAuthRoutes registers the credential lifecycle endpoints. Refresh
// reads the HTTP-only cookie; logout needs a valid access token.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db))
		authGroup.GET("/refresh", auth.RefreshHandler(db))
		authGroup.POST("/logout", middleware.ValidateToken, auth.LogoutHandler(db))
	}
}
