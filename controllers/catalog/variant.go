package catalogControllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/apperrors"
	"github.com/salabibne/Attire-Threads-Backend/httpx"
	"github.com/salabibne/Attire-Threads-Backend/models"
)

type VariantInput struct {
	Name      string `json:"name" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
}

// POST /admin/variants
func CreateVariantHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VariantInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.Error(c, apperrors.NotFound("product"))
				return
			}
			httpx.Error(c, err)
			return
		}

		variant := models.ProductVariant{Name: input.Name, ProductID: input.ProductID}
		if err := db.Create(&variant).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.Created(c, "Product variant created successfully", variant)
	}
}

// GET /variants/:id
func GetVariantHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var variant models.ProductVariant
		err := db.Preload("Product").First(&variant, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, apperrors.NotFound("product variant"))
			return
		}
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Product variant fetched successfully", variant)
	}
}

// PATCH /admin/variants/:id
func UpdateVariantHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		var variant models.ProductVariant
		err := db.First(&variant, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, apperrors.NotFound("product variant"))
			return
		}
		if err != nil {
			httpx.Error(c, err)
			return
		}

		variant.Name = input.Name
		if err := db.Save(&variant).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Product variant updated successfully", variant)
	}
}

// DELETE /admin/variants/:id
func DeleteVariantHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.ProductVariant{})
		if result.Error != nil {
			httpx.Error(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			httpx.Error(c, apperrors.NotFound("product variant"))
			return
		}
		httpx.OK(c, "Product variant deleted successfully", nil)
	}
}
