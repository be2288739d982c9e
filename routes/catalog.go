package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	catalogControllers "github.com/salabibne/Attire-Threads-Backend/controllers/catalog"
)

// SetupCatalogRoutes registers the public read-only catalog endpoints.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/categories", catalogControllers.GetCategoriesHandler(db))
	r.GET("/categories/:id", catalogControllers.GetCategoryHandler(db))
	r.GET("/subcategories", catalogControllers.GetSubCategoriesHandler(db))
	r.GET("/subcategories/:id", catalogControllers.GetSubCategoryHandler(db))
	r.GET("/products", catalogControllers.GetProductsHandler(db))
	r.GET("/products/:id", catalogControllers.GetProductHandler(db))
	r.GET("/variants/:id", catalogControllers.GetVariantHandler(db))
	r.GET("/attributes", catalogControllers.ListAttributesHandler(db))
	r.GET("/attributes/:id", catalogControllers.GetAttributeHandler(db))
	r.GET("/attributes/variant/:variantID", catalogControllers.GetAttributeByVariantHandler(db))
	r.GET("/skus", catalogControllers.GetSKUsHandler(db))
	r.GET("/skus/:id", catalogControllers.GetSKUHandler(db))
}
