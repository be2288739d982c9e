package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/salabibne/Attire-Threads-Backend/apperrors"
	cartControllers "github.com/salabibne/Attire-Threads-Backend/controllers/cart"
	"github.com/salabibne/Attire-Threads-Backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// One pooled connection, or every connection sees its own :memory: DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.SubCategory{},
		&models.Product{},
		&models.ProductVariant{},
		&models.SKU{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedSKU(t *testing.T, db *gorm.DB, code string, price float64, stock int) *models.SKU {
	t.Helper()
	category := models.Category{Name: "Apparel-" + code}
	require.NoError(t, db.Create(&category).Error)
	sub := models.SubCategory{Name: "Shirts", CategoryID: category.ID}
	require.NoError(t, db.Create(&sub).Error)
	product := models.Product{Name: "Oxford Shirt", SubCategoryID: sub.ID}
	require.NoError(t, db.Create(&product).Error)
	variant := models.ProductVariant{Name: "Medium", ProductID: product.ID}
	require.NoError(t, db.Create(&variant).Error)
	sku := models.SKU{
		SKUCode:          code,
		Price:            price,
		Stock:            stock,
		ProductID:        product.ID,
		ProductVariantID: variant.ID,
	}
	require.NoError(t, db.Create(&sku).Error)
	return &sku
}

func currentStock(t *testing.T, db *gorm.DB, skuID string) int {
	t.Helper()
	var sku models.SKU
	require.NoError(t, db.First(&sku, "id = ?", skuID).Error)
	return sku.Stock
}

func TestMigratedColumnNames(t *testing.T) {
	db := newTestDB(t)

	// Raw queries and the stock decrement address these columns by name,
	// so the migration must produce exactly these.
	require.True(t, db.Migrator().HasColumn(&models.CartItem{}, "sku_id"))
	require.True(t, db.Migrator().HasColumn(&models.OrderItem{}, "sku_id"))
	require.True(t, db.Migrator().HasColumn(&models.SKU{}, "sku_code"))
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)

	_, err := Checkout(db, "user-1", "12 Main St", "555-0100")
	require.ErrorIs(t, err, apperrors.ErrEmptyCart)

	// Cart exists but has no items.
	_, err = cartControllers.GetOrCreateCart(db, "user-1")
	require.NoError(t, err)
	_, err = Checkout(db, "user-1", "12 Main St", "555-0100")
	require.ErrorIs(t, err, apperrors.ErrEmptyCart)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.Zero(t, orders)
}

func TestCheckoutSuccess(t *testing.T) {
	db := newTestDB(t)
	sku := seedSKU(t, db, "A-1", 10, 5)

	_, err := cartControllers.AddToCart(db, "user-1", sku.ID, 2)
	require.NoError(t, err)

	order, err := Checkout(db, "user-1", "X", "Y")
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Equal(t, "X", order.Address)
	require.Equal(t, "Y", order.Phone)
	require.InDelta(t, 20.0, order.TotalAmount, 1e-9)
	require.Len(t, order.Items, 1)
	require.Equal(t, sku.ID, order.Items[0].SKUID)
	require.Equal(t, 2, order.Items[0].Quantity)
	require.InDelta(t, 10.0, order.Items[0].Price, 1e-9)

	require.Equal(t, 3, currentStock(t, db, sku.ID))

	cart, err := cartControllers.GetOrCreateCart(db, "user-1")
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestCheckoutInsufficientStockPersistsNothing(t *testing.T) {
	db := newTestDB(t)
	sku := seedSKU(t, db, "A-1", 10, 3)

	_, err := cartControllers.AddToCart(db, "user-1", sku.ID, 2)
	require.NoError(t, err)

	// Stock drops below demand after the item entered the cart.
	require.NoError(t, db.Model(&models.SKU{}).Where("id = ?", sku.ID).Update("stock", 1).Error)

	_, err = Checkout(db, "user-1", "X", "Y")
	var insufficient *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, "A-1", insufficient.SKUCode)

	require.Equal(t, 1, currentStock(t, db, sku.ID))
	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.Zero(t, orders)

	cart, err := cartControllers.GetOrCreateCart(db, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestCheckoutAbortsWhenStockMovesMidTransaction(t *testing.T) {
	db := newTestDB(t)
	sku := seedSKU(t, db, "G-1", 10, 5)

	_, err := cartControllers.AddToCart(db, "user-1", sku.ID, 2)
	require.NoError(t, err)

	// Drain the stock after the pre-check has passed: right before the
	// order row is inserted, inside the same transaction. Only the
	// decrement guard can catch this.
	drained := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("drain_stock", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*models.Order); !ok || drained {
			return
		}
		drained = true
		tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.SKU{}).
			Where("id = ?", sku.ID).
			UpdateColumn("stock", 1)
	}))
	defer db.Callback().Create().Remove("drain_stock")

	_, err = Checkout(db, "user-1", "X", "Y")
	var insufficient *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, "G-1", insufficient.SKUCode)
	require.True(t, drained)

	// The abort rolled everything back, the drain included.
	require.Equal(t, 5, currentStock(t, db, sku.ID))
	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.Zero(t, orders)

	cart, err := cartControllers.GetOrCreateCart(db, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestCheckoutPriceSnapshotIgnoresLaterChanges(t *testing.T) {
	db := newTestDB(t)
	sku := seedSKU(t, db, "A-2", 40, 10)

	_, err := cartControllers.AddToCart(db, "user-1", sku.ID, 1)
	require.NoError(t, err)

	// Price changes before checkout: the current price is charged.
	require.NoError(t, db.Model(&models.SKU{}).Where("id = ?", sku.ID).Update("price", 55).Error)

	order, err := Checkout(db, "user-1", "X", "Y")
	require.NoError(t, err)
	require.InDelta(t, 55.0, order.TotalAmount, 1e-9)

	// And a change after checkout never touches the snapshot.
	require.NoError(t, db.Model(&models.SKU{}).Where("id = ?", sku.ID).Update("price", 70).Error)
	var item models.OrderItem
	require.NoError(t, db.First(&item, "order_id = ?", order.ID).Error)
	require.InDelta(t, 55.0, item.Price, 1e-9)
}

func TestCheckoutStockConservation(t *testing.T) {
	db := newTestDB(t)
	sku := seedSKU(t, db, "B-1", 5, 5)

	// Three buyers want 2 each from a stock of 5: two succeed, one fails,
	// and sold + remaining always equals the original stock.
	succeeded := 0
	for _, user := range []string{"u1", "u2", "u3"} {
		_, err := cartControllers.AddToCart(db, user, sku.ID, 2)
		if err != nil {
			continue
		}
		if _, err := Checkout(db, user, "X", "Y"); err == nil {
			succeeded++
		}
	}
	require.Equal(t, 2, succeeded)
	require.Equal(t, 1, currentStock(t, db, sku.ID))

	var sold int64
	require.NoError(t, db.Model(&models.OrderItem{}).
		Where("sku_id = ?", sku.ID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sold).Error)
	require.EqualValues(t, 4, sold)
	require.EqualValues(t, 5, sold+int64(currentStock(t, db, sku.ID)))
}

func TestCheckoutMultipleItems(t *testing.T) {
	db := newTestDB(t)
	skuA := seedSKU(t, db, "C-1", 10, 5)
	skuB := seedSKU(t, db, "C-2", 7.5, 4)

	_, err := cartControllers.AddToCart(db, "user-1", skuA.ID, 2)
	require.NoError(t, err)
	_, err = cartControllers.AddToCart(db, "user-1", skuB.ID, 2)
	require.NoError(t, err)

	order, err := Checkout(db, "user-1", "X", "Y")
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	require.InDelta(t, 35.0, order.TotalAmount, 1e-9)
	require.Equal(t, 3, currentStock(t, db, skuA.ID))
	require.Equal(t, 2, currentStock(t, db, skuB.ID))
}

func TestGetOrderHidesForeignOrders(t *testing.T) {
	db := newTestDB(t)
	sku := seedSKU(t, db, "D-1", 10, 5)

	_, err := cartControllers.AddToCart(db, "user-1", sku.ID, 1)
	require.NoError(t, err)
	order, err := Checkout(db, "user-1", "X", "Y")
	require.NoError(t, err)

	got, err := GetOrder(db, order.ID, "user-1")
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)

	// Missing order and someone else's order give the identical signal.
	_, errMissing := GetOrder(db, "no-such-order", "user-1")
	_, errForeign := GetOrder(db, order.ID, "user-2")
	require.ErrorIs(t, errMissing, apperrors.ErrNotFound)
	require.ErrorIs(t, errForeign, apperrors.ErrNotFound)
	require.Equal(t, errMissing.Error(), errForeign.Error())
}

func TestGetOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	sku := seedSKU(t, db, "E-1", 10, 10)

	for i := 0; i < 2; i++ {
		_, err := cartControllers.AddToCart(db, "user-1", sku.ID, 1)
		require.NoError(t, err)
		_, err = Checkout(db, "user-1", "X", "Y")
		require.NoError(t, err)
	}

	orders, err := GetOrders(db, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.False(t, orders[0].CreatedAt.Before(orders[1].CreatedAt))
}

func TestUpdateOrderStatus(t *testing.T) {
	db := newTestDB(t)
	sku := seedSKU(t, db, "F-1", 10, 5)

	_, err := cartControllers.AddToCart(db, "user-1", sku.ID, 1)
	require.NoError(t, err)
	order, err := Checkout(db, "user-1", "X", "Y")
	require.NoError(t, err)

	require.NoError(t, UpdateOrderStatus(db, order.ID, models.OrderStatusShipped))

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	require.Equal(t, models.OrderStatusShipped, reloaded.Status)

	require.ErrorIs(t, UpdateOrderStatus(db, "no-such-order", models.OrderStatusPaid), apperrors.ErrNotFound)

	_, err = mapOrderStatus("teleported")
	require.Error(t, err)
}
