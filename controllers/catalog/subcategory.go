package catalogControllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/apperrors"
	"github.com/salabibne/Attire-Threads-Backend/httpx"
	"github.com/salabibne/Attire-Threads-Backend/models"
)

type SubCategoryInput struct {
	Name       string `json:"name" binding:"required"`
	CategoryID string `json:"category_id" binding:"required"`
}

// POST /admin/subcategories
func CreateSubCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SubCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ?", input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.Error(c, apperrors.NotFound("category"))
				return
			}
			httpx.Error(c, err)
			return
		}

		var existing models.SubCategory
		err := db.Where("category_id = ? AND name = ?", input.CategoryID, input.Name).First(&existing).Error
		if err == nil {
			httpx.Error(c, apperrors.Conflict("subcategory name"))
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, err)
			return
		}

		sub := models.SubCategory{Name: input.Name, CategoryID: input.CategoryID}
		if err := db.Create(&sub).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.Created(c, "Subcategory created successfully", sub)
	}
}

// GET /subcategories
func GetSubCategoriesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := paginate(c)
		var subs []models.SubCategory
		if err := db.
			Preload("Category").
			Order("created_at DESC").
			Limit(limit).Offset(offset).
			Find(&subs).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Subcategories fetched successfully", subs)
	}
}

// GET /subcategories/:id
func GetSubCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub models.SubCategory
		err := db.Preload("Category").Preload("Products").First(&sub, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, apperrors.NotFound("subcategory"))
			return
		}
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Subcategory fetched successfully", sub)
	}
}

// PATCH /admin/subcategories/:id
func UpdateSubCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name       string `json:"name"`
			CategoryID string `json:"category_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		var sub models.SubCategory
		err := db.First(&sub, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, apperrors.NotFound("subcategory"))
			return
		}
		if err != nil {
			httpx.Error(c, err)
			return
		}

		if input.CategoryID != "" {
			var category models.Category
			if err := db.First(&category, "id = ?", input.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					httpx.Error(c, apperrors.NotFound("category"))
					return
				}
				httpx.Error(c, err)
				return
			}
			sub.CategoryID = input.CategoryID
		}
		if input.Name != "" {
			sub.Name = input.Name
		}

		if err := db.Save(&sub).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Subcategory updated successfully", sub)
	}
}

// DELETE /admin/subcategories/:id
func DeleteSubCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.SubCategory{})
		if result.Error != nil {
			httpx.Error(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			httpx.Error(c, apperrors.NotFound("subcategory"))
			return
		}
		httpx.OK(c, "Subcategory deleted successfully", nil)
	}
}
