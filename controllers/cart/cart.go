package cartControllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/apperrors"
	"github.com/salabibne/Attire-Threads-Backend/httpx"
	"github.com/salabibne/Attire-Threads-Backend/models"
)

type AddToCartInput struct {
	SKUID    string `json:"sku_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// -------- Core Logic --------

// GetOrCreateCart returns the user's cart with items expanded down to
// product and variant, creating an empty cart on first access.
func GetOrCreateCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.
		Preload("Items.SKU.Product").
		Preload("Items.SKU.ProductVariant").
		Where("user_id = ?", userID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID, Items: []models.CartItem{}}
		if createErr := db.Create(&cart).Error; createErr != nil {
			// A concurrent first request may have won the unique index
			// on user_id; fall back to reading the winner's cart.
			if err := db.Preload("Items.SKU.Product").
				Preload("Items.SKU.ProductVariant").
				Where("user_id = ?", userID).
				First(&cart).Error; err != nil {
				return nil, createErr
			}
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart puts quantity of a SKU into the user's cart. A second add of
// the same SKU increments the existing row. The stock check here is a
// pre-flight courtesy; checkout re-validates inside its transaction.
func AddToCart(db *gorm.DB, userID, skuID string, quantity int) (*models.CartItem, error) {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	var sku models.SKU
	if err := db.First(&sku, "id = ?", skuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("SKU")
		}
		return nil, err
	}
	if sku.Stock < quantity {
		return nil, &apperrors.InsufficientStockError{SKUCode: sku.SKUCode}
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND sku_id = ?", cart.ID, skuID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{CartID: cart.ID, SKUID: skuID, Quantity: quantity}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	if err != nil {
		return nil, err
	}

	item.Quantity += quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem sets the quantity of an existing cart item.
func UpdateCartItem(db *gorm.DB, itemID string, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	if err := db.Preload("SKU").First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("cart item")
		}
		return nil, err
	}
	if item.SKU != nil && item.SKU.Stock < quantity {
		return nil, &apperrors.InsufficientStockError{SKUCode: item.SKU.SKUCode}
	}

	item.Quantity = quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartItem deletes a single cart item; a missing item is surfaced
// as NotFound, not swallowed.
func RemoveCartItem(db *gorm.DB, itemID string) error {
	result := db.Where("id = ?", itemID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("cart item")
	}
	return nil
}

// ClearCart deletes all items of the user's cart; no-op without a cart.
func ClearCart(db *gorm.DB, userID string) error {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
}

// -------- Handlers --------

// GET /user/cart
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		cart, err := GetOrCreateCart(db, userID)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Cart fetched successfully", cart)
	}
}

// POST /user/cart
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		item, err := AddToCart(db, userID, input.SKUID, input.Quantity)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.Created(c, "Item added to cart", item)
	}
}

// PATCH /user/cart/items/:itemID
func UpdateCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		item, err := UpdateCartItem(db, c.Param("itemID"), input.Quantity)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Cart item updated", item)
	}
}

// DELETE /user/cart/items/:itemID
func RemoveCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := RemoveCartItem(db, c.Param("itemID")); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Cart item removed", nil)
	}
}

// DELETE /user/cart
func ClearCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if err := ClearCart(db, userID); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Cart cleared successfully", nil)
	}
}
