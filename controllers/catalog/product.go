package catalogControllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/apperrors"
	"github.com/salabibne/Attire-Threads-Backend/httpx"
	"github.com/salabibne/Attire-Threads-Backend/models"
)

type ProductInput struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	SubCategoryID string `json:"sub_category_id" binding:"required"`
}

// POST /admin/products
func CreateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		var sub models.SubCategory
		if err := db.First(&sub, "id = ?", input.SubCategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.Error(c, apperrors.NotFound("subcategory"))
				return
			}
			httpx.Error(c, err)
			return
		}

		product := models.Product{
			Name:          input.Name,
			Description:   input.Description,
			SubCategoryID: input.SubCategoryID,
		}
		if err := db.Create(&product).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.Created(c, "Product created successfully", product)
	}
}

// GET /products
func GetProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := paginate(c)
		var products []models.Product
		if err := db.
			Preload("SubCategory").
			Preload("Variants").
			Preload("SKUs").
			Order("created_at DESC").
			Limit(limit).Offset(offset).
			Find(&products).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Products fetched successfully", products)
	}
}

// GET /products/:id
func GetProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		err := db.
			Preload("SubCategory").
			Preload("Variants").
			Preload("SKUs").
			First(&product, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, apperrors.NotFound("product"))
			return
		}
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Product fetched successfully", product)
	}
}

// PATCH /admin/products/:id
func UpdateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name          string `json:"name"`
			Description   string `json:"description"`
			SubCategoryID string `json:"sub_category_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		err := db.First(&product, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, apperrors.NotFound("product"))
			return
		}
		if err != nil {
			httpx.Error(c, err)
			return
		}

		if input.SubCategoryID != "" {
			var sub models.SubCategory
			if err := db.First(&sub, "id = ?", input.SubCategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					httpx.Error(c, apperrors.NotFound("subcategory"))
					return
				}
				httpx.Error(c, err)
				return
			}
			product.SubCategoryID = input.SubCategoryID
		}
		if input.Name != "" {
			product.Name = input.Name
		}
		if input.Description != "" {
			product.Description = input.Description
		}

		if err := db.Save(&product).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Product updated successfully", product)
	}
}

// DELETE /admin/products/:id
func DeleteProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.Product{})
		if result.Error != nil {
			httpx.Error(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			httpx.Error(c, apperrors.NotFound("product"))
			return
		}
		httpx.OK(c, "Product deleted successfully", nil)
	}
}
