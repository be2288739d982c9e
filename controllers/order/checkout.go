package orderControllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/apperrors"
	"github.com/salabibne/Attire-Threads-Backend/httpx"
	"github.com/salabibne/Attire-Threads-Backend/models"
)

type CheckoutInput struct {
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

// -------- Core Logic --------

// Checkout converts the user's cart into an order. The order insert, the
// stock decrements and the cart clear happen in one transaction; stock is
// decremented relatively (stock = stock - qty) guarded by stock >= qty, so
// concurrent checkouts against the same SKU compose and a decrement that
// would go negative aborts the whole unit. The stock read before the
// transaction is only a fast-fail; the decrement guard is authoritative.
func Checkout(db *gorm.DB, userID, address, phone string) (*models.Order, error) {
	var cart models.Cart
	err := db.Preload("Items.SKU").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && len(cart.Items) == 0) {
		return nil, apperrors.ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}

	var total float64
	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.SKU == nil {
			return nil, apperrors.NotFound("SKU")
		}
		if item.SKU.Stock < item.Quantity {
			return nil, &apperrors.InsufficientStockError{SKUCode: item.SKU.SKUCode}
		}
		// Snapshot the current SKU price, not anything cached on the cart.
		total += item.SKU.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			SKUID:    item.SKUID,
			Quantity: item.Quantity,
			Price:    item.SKU.Price,
		})
	}

	order := models.Order{
		UserID:      userID,
		TotalAmount: total,
		Address:     address,
		Phone:       phone,
		Status:      models.OrderStatusPending,
		Items:       orderItems,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range cart.Items {
			res := tx.Model(&models.SKU{}).
				Where("id = ? AND stock >= ?", item.SKUID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Stock moved between the pre-check and here; abort everything.
				return &apperrors.InsufficientStockError{SKUCode: item.SKU.SKUCode}
			}
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	broadcastNewOrder(order)
	return &order, nil
}

// GetOrders returns the user's orders, newest first, with item SKUs expanded.
func GetOrders(db *gorm.DB, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := db.
		Preload("Items.SKU.Product").
		Preload("Items.SKU.ProductVariant").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// GetOrder returns one order. A missing order and another user's order
// produce the same NotFound so order ids cannot be probed.
func GetOrder(db *gorm.DB, orderID, userID string) (*models.Order, error) {
	var order models.Order
	err := db.
		Preload("Items.SKU.Product").
		Preload("Items.SKU.ProductVariant").
		First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("order")
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NotFound("order")
	}
	return &order, nil
}

// -------- Handlers --------

// POST /user/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input CheckoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"statusCode": 400, "message": "Invalid input: " + err.Error()})
			return
		}

		order, err := Checkout(db, userID, input.Address, input.Phone)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.Created(c, "Order created successfully", order)
	}
}

// GET /user/orders
func GetOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := GetOrders(db, c.GetString("user_id"))
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Orders fetched successfully", orders)
	}
}

// GET /user/orders/:orderID
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := GetOrder(db, c.Param("orderID"), c.GetString("user_id"))
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, "Order details fetched successfully", order)
	}
}
