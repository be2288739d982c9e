package catalogControllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/apperrors"
	"github.com/salabibne/Attire-Threads-Backend/httpx"
	"github.com/salabibne/Attire-Threads-Backend/models"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// POST /admin/categories
func CreateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		var existing models.Category
		if err := db.Where("name = ?", input.Name).First(&existing).Error; err == nil {
			httpx.Error(c, apperrors.Conflict("category name"))
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, err)
			return
		}

		category := models.Category{Name: input.Name}
		if err := db.Create(&category).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.Created(c, "Category created successfully", category)
	}
}

// GET /categories
func GetCategoriesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := paginate(c)
		var categories []models.Category
		if err := db.
			Preload("Subcategories").
			Order("created_at DESC").
			Limit(limit).Offset(offset).
			Find(&categories).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Categories fetched successfully", categories)
	}
}

// GET /categories/:id
func GetCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		err := db.Preload("Subcategories").First(&category, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, apperrors.NotFound("category"))
			return
		}
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Category fetched successfully", category)
	}
}

// PATCH /admin/categories/:id
func UpdateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		var category models.Category
		err := db.First(&category, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, apperrors.NotFound("category"))
			return
		}
		if err != nil {
			httpx.Error(c, err)
			return
		}

		category.Name = input.Name
		if err := db.Save(&category).Error; err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Category updated successfully", category)
	}
}

// DELETE /admin/categories/:id
func DeleteCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.Category{})
		if result.Error != nil {
			httpx.Error(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			httpx.Error(c, apperrors.NotFound("category"))
			return
		}
		httpx.OK(c, "Category deleted successfully", nil)
	}
}
