package catalogControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/models"
)

// GET /admin/skus/export — downloads the SKU inventory as an Excel sheet.
func ExportSKUsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var skus []models.SKU
		if err := db.
			Preload("Product").
			Preload("ProductVariant").
			Order("sku_code ASC").
			Find(&skus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"statusCode": 500, "message": "Failed to fetch SKUs"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("SKUs")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"statusCode": 500, "message": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"SKUCode", "Product", "Variant", "Price", "Stock", "CreatedAt"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, s := range skus {
			row := sheet.AddRow()
			row.AddCell().SetValue(s.SKUCode)
			if s.Product != nil {
				row.AddCell().SetValue(s.Product.Name)
			} else {
				row.AddCell().SetValue("")
			}
			if s.ProductVariant != nil {
				row.AddCell().SetValue(s.ProductVariant.Name)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(s.Price)
			row.AddCell().SetValue(s.Stock)
			row.AddCell().SetValue(s.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=skus.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"statusCode": 500, "message": "Failed to write Excel file"})
			return
		}
	}
}
