package catalogControllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/apperrors"
	"github.com/salabibne/Attire-Threads-Backend/httpx"
	"github.com/salabibne/Attire-Threads-Backend/models"
)

type AttributeInput struct {
	ImageBanner      string   `json:"image_banner" binding:"required"`
	ImageGallery     []string `json:"image_gallery"`
	ProductVariantID string   `json:"product_variant_id" binding:"required"`
}

// CreateAttribute attaches a banner/gallery image set to an existing variant.
func CreateAttribute(db *gorm.DB, input AttributeInput) (*models.ProductImageAttribute, error) {
	var variant models.ProductVariant
	if err := db.First(&variant, "id = ?", input.ProductVariantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product variant")
		}
		return nil, err
	}

	attribute := models.ProductImageAttribute{
		ImageBanner:      input.ImageBanner,
		ImageGallery:     input.ImageGallery,
		ProductVariantID: input.ProductVariantID,
	}
	if err := db.Create(&attribute).Error; err != nil {
		return nil, err
	}
	return &attribute, nil
}

// POST /admin/attributes
func CreateAttributeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AttributeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		attribute, err := CreateAttribute(db, input)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.Created(c, "Product image attribute created successfully", attribute)
	}
}

// GET /attributes
func ListAttributesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var attributes []models.ProductImageAttribute
		limit, offset := paginate(c)
		if err := db.Preload("ProductVariant").
			Order("created_at DESC").
			Limit(limit).Offset(offset).
			Find(&attributes).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Product image attributes fetched successfully", attributes)
	}
}

// GET /attributes/:id
func GetAttributeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var attribute models.ProductImageAttribute
		err := db.Preload("ProductVariant").First(&attribute, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, apperrors.NotFound("product image attribute"))
			return
		}
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Product image attribute fetched successfully", attribute)
	}
}

// GET /attributes/variant/:variantID
func GetAttributeByVariantHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var attribute models.ProductImageAttribute
		err := db.Preload("ProductVariant").
			First(&attribute, "product_variant_id = ?", c.Param("variantID")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, apperrors.NotFound("product image attribute"))
			return
		}
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Product image attribute fetched successfully", attribute)
	}
}

// PATCH /admin/attributes/:id
func UpdateAttributeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ImageBanner      string   `json:"image_banner"`
			ImageGallery     []string `json:"image_gallery"`
			ProductVariantID string   `json:"product_variant_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		var attribute models.ProductImageAttribute
		err := db.First(&attribute, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, apperrors.NotFound("product image attribute"))
			return
		}
		if err != nil {
			httpx.Error(c, err)
			return
		}

		if input.ProductVariantID != "" && input.ProductVariantID != attribute.ProductVariantID {
			var variant models.ProductVariant
			if err := db.First(&variant, "id = ?", input.ProductVariantID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					httpx.Error(c, apperrors.NotFound("product variant"))
					return
				}
				httpx.Error(c, err)
				return
			}
			attribute.ProductVariantID = input.ProductVariantID
		}
		if input.ImageBanner != "" {
			attribute.ImageBanner = input.ImageBanner
		}
		if input.ImageGallery != nil {
			attribute.ImageGallery = input.ImageGallery
		}

		if err := db.Save(&attribute).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Product image attribute updated successfully", attribute)
	}
}

// DELETE /admin/attributes/:id
func DeleteAttributeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.ProductImageAttribute{})
		if result.Error != nil {
			httpx.Error(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			httpx.Error(c, apperrors.NotFound("product image attribute"))
			return
		}
		httpx.OK(c, "Product image attribute deleted successfully", nil)
	}
}
