package catalogControllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/apperrors"
	"github.com/salabibne/Attire-Threads-Backend/httpx"
	"github.com/salabibne/Attire-Threads-Backend/models"
)

type SKUInput struct {
	SKUCode          string  `json:"sku_code" binding:"required"`
	Price            float64 `json:"price" binding:"min=0"`
	Stock            int     `json:"stock" binding:"min=0"`
	ProductID        string  `json:"product_id" binding:"required"`
	ProductVariantID string  `json:"product_variant_id" binding:"required"`
}

// CreateSKU validates code uniqueness and parent existence before insert.
func CreateSKU(db *gorm.DB, input SKUInput) (*models.SKU, error) {
	var existing models.SKU
	err := db.Where("sku_code = ?", input.SKUCode).First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflict("SKU code")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var product models.Product
	if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, err
	}
	var variant models.ProductVariant
	if err := db.First(&variant, "id = ?", input.ProductVariantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product variant")
		}
		return nil, err
	}

	sku := models.SKU{
		SKUCode:          input.SKUCode,
		Price:            input.Price,
		Stock:            input.Stock,
		ProductID:        input.ProductID,
		ProductVariantID: input.ProductVariantID,
	}
	if err := db.Create(&sku).Error; err != nil {
		return nil, err
	}
	return &sku, nil
}

// POST /admin/skus
func CreateSKUHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SKUInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		sku, err := CreateSKU(db, input)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.Created(c, "SKU created successfully", sku)
	}
}

// GET /skus
func GetSKUsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := paginate(c)
		var skus []models.SKU
		if err := db.
			Preload("Product").
			Preload("ProductVariant").
			Order("sku_code ASC").
			Limit(limit).Offset(offset).
			Find(&skus).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "SKUs fetched successfully", skus)
	}
}

// GET /skus/:id
func GetSKUHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sku models.SKU
		err := db.
			Preload("Product").
			Preload("ProductVariant").
			First(&sku, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, apperrors.NotFound("SKU"))
			return
		}
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "SKU fetched successfully", sku)
	}
}

// PATCH /admin/skus/:id
func UpdateSKUHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			SKUCode string   `json:"sku_code"`
			Price   *float64 `json:"price"`
			Stock   *int     `json:"stock"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		var sku models.SKU
		err := db.First(&sku, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, apperrors.NotFound("SKU"))
			return
		}
		if err != nil {
			httpx.Error(c, err)
			return
		}

		if input.SKUCode != "" && input.SKUCode != sku.SKUCode {
			var other models.SKU
			err := db.Where("sku_code = ? AND id <> ?", input.SKUCode, sku.ID).First(&other).Error
			if err == nil {
				httpx.Error(c, apperrors.Conflict("SKU code"))
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.Error(c, err)
				return
			}
			sku.SKUCode = input.SKUCode
		}
		if input.Price != nil && *input.Price >= 0 {
			sku.Price = *input.Price
		}
		if input.Stock != nil && *input.Stock >= 0 {
			sku.Stock = *input.Stock
		}

		if err := db.Save(&sku).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "SKU updated successfully", sku)
	}
}

// DELETE /admin/skus/:id
func DeleteSKUHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.SKU{})
		if result.Error != nil {
			httpx.Error(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			httpx.Error(c, apperrors.NotFound("SKU"))
			return
		}
		httpx.OK(c, "SKU deleted successfully", nil)
	}
}
