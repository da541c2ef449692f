package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-insights/pkg/db/models"
	"github.com/angelmondragon/storefront-insights/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-insights/pkg/errors"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

func setupWriterTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  currency TEXT NOT NULL DEFAULT 'USD',
  payment_method TEXT NOT NULL DEFAULT 'card',
  country_code TEXT NOT NULL DEFAULT '',
  coupon_code TEXT,
  total NUMERIC NOT NULL,
  tax_total NUMERIC NOT NULL,
  shipping_total NUMERIC NOT NULL,
  discount_total NUMERIC NOT NULL,
  refunded_total NUMERIC NOT NULL,
  paid_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  qty INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  line_total NUMERIC NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS refunds (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  reason TEXT NOT NULL DEFAULT '',
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS cart_attempts (
  id TEXT PRIMARY KEY,
  customer_id TEXT,
  state TEXT NOT NULL DEFAULT 'open',
  subtotal NUMERIC NOT NULL,
  applied_coupons TEXT,
  checkout_reached_at DATETIME,
  converted_order_id TEXT,
  created_at DATETIME,
  last_activity_at DATETIME NOT NULL
);`,
		`CREATE TABLE IF NOT EXISTS cart_attempt_items (
  id TEXT PRIMARY KEY,
  cart_attempt_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  qty INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS coupons (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  discount_type TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  usage_count INTEGER NOT NULL DEFAULT 0,
  expires_at DATETIME,
  product_restriction TEXT,
  category_restriction TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	t.Cleanup(func() {
		for _, table := range []string{
			"cart_attempt_items", "cart_attempts", "coupons",
			"refunds", "order_items", "orders",
		} {
			db.Exec("DELETE FROM " + table)
		}
	})

	return db
}

func newTestWriter(t *testing.T) (Writer, *gorm.DB) {
	t.Helper()
	db := setupWriterTestDB(t)
	writer, err := NewWriter(db, logger.New(logger.Options{ServiceName: "ingest-test"}))
	require.NoError(t, err)
	return writer, db
}

func testOrder(total int64) models.Order {
	return models.Order{
		ID:            uuid.New(),
		Status:        enums.OrderStatusCompleted,
		Currency:      enums.CurrencyUSD,
		PaymentMethod: enums.PaymentMethodCard,
		CountryCode:   "US",
		Total:         decimal.NewFromInt(total),
		CreatedAt:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestUpsertOrderReplacesItems(t *testing.T) {
	writer, db := newTestWriter(t)
	ctx := context.Background()

	order := testOrder(100)
	first := []models.OrderItem{
		{ProductID: uuid.New(), Name: "Mug", Qty: 2, UnitPrice: decimal.NewFromInt(50), LineTotal: decimal.NewFromInt(100)},
	}
	require.NoError(t, writer.UpsertOrder(ctx, order, first))

	order.Status = enums.OrderStatusRefunded
	second := []models.OrderItem{
		{ProductID: uuid.New(), Name: "Mug", Qty: 1, UnitPrice: decimal.NewFromInt(50), LineTotal: decimal.NewFromInt(50)},
		{ProductID: uuid.New(), Name: "Plate", Qty: 1, UnitPrice: decimal.NewFromInt(50), LineTotal: decimal.NewFromInt(50)},
	}
	require.NoError(t, writer.UpsertOrder(ctx, order, second))

	var stored models.Order
	require.NoError(t, db.Where("id = ?", order.ID).First(&stored).Error)
	assert.Equal(t, enums.OrderStatusRefunded, stored.Status)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	assert.Len(t, items, 2)
}

func TestUpsertOrderRejectsNegativeTotal(t *testing.T) {
	writer, _ := newTestWriter(t)

	order := testOrder(0)
	order.Total = decimal.NewFromInt(-5)
	err := writer.UpsertOrder(context.Background(), order, nil)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestUpsertOrderCapsRefundedTotal(t *testing.T) {
	writer, db := newTestWriter(t)

	order := testOrder(80)
	order.RefundedTotal = decimal.NewFromInt(200)
	require.NoError(t, writer.UpsertOrder(context.Background(), order, nil))

	var stored models.Order
	require.NoError(t, db.Where("id = ?", order.ID).First(&stored).Error)
	assert.True(t, stored.RefundedTotal.Equal(decimal.NewFromInt(80)))
}

func TestApplyRefundAccumulatesAndCaps(t *testing.T) {
	writer, db := newTestWriter(t)
	ctx := context.Background()

	order := testOrder(100)
	require.NoError(t, writer.UpsertOrder(ctx, order, nil))

	require.NoError(t, writer.ApplyRefund(ctx, models.Refund{
		ID:      uuid.New(),
		OrderID: order.ID,
		Amount:  decimal.NewFromInt(60),
	}))
	require.NoError(t, writer.ApplyRefund(ctx, models.Refund{
		ID:      uuid.New(),
		OrderID: order.ID,
		Amount:  decimal.NewFromInt(60),
	}))

	var stored models.Order
	require.NoError(t, db.Where("id = ?", order.ID).First(&stored).Error)
	assert.True(t, stored.RefundedTotal.Equal(decimal.NewFromInt(100)))

	var refunds []models.Refund
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&refunds).Error)
	assert.Len(t, refunds, 2)
}

func TestApplyRefundRejectsNegativeAmount(t *testing.T) {
	writer, _ := newTestWriter(t)

	err := writer.ApplyRefund(context.Background(), models.Refund{
		ID:      uuid.New(),
		OrderID: uuid.New(),
		Amount:  decimal.NewFromInt(-10),
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestApplyRefundUnknownOrderFails(t *testing.T) {
	writer, _ := newTestWriter(t)

	err := writer.ApplyRefund(context.Background(), models.Refund{
		ID:      uuid.New(),
		OrderID: uuid.New(),
		Amount:  decimal.NewFromInt(10),
	})
	require.Error(t, err)
}

func TestUpsertCartAttemptReplacesItems(t *testing.T) {
	writer, db := newTestWriter(t)
	ctx := context.Background()

	attempt := models.CartAttempt{
		ID:             uuid.New(),
		State:          enums.CartStateOpen,
		Subtotal:       decimal.NewFromInt(30),
		CreatedAt:      time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		LastActivityAt: time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC),
	}
	require.NoError(t, writer.UpsertCartAttempt(ctx, attempt, []models.CartAttemptItem{
		{ProductID: uuid.New(), Qty: 2, UnitPrice: decimal.NewFromInt(15)},
	}))

	attempt.State = enums.CartStateConverted
	require.NoError(t, writer.UpsertCartAttempt(ctx, attempt, nil))

	var stored models.CartAttempt
	require.NoError(t, db.Where("id = ?", attempt.ID).First(&stored).Error)
	assert.Equal(t, enums.CartStateConverted, stored.State)

	var items []models.CartAttemptItem
	require.NoError(t, db.Where("cart_attempt_id = ?", attempt.ID).Find(&items).Error)
	assert.Empty(t, items)
}

func TestUpsertCouponByCode(t *testing.T) {
	writer, db := newTestWriter(t)
	ctx := context.Background()

	coupon := models.Coupon{
		ID:           uuid.New(),
		Code:         "SPRING10",
		DiscountType: enums.DiscountTypePercentage,
		Amount:       decimal.NewFromInt(10),
		UsageCount:   1,
	}
	require.NoError(t, writer.UpsertCoupon(ctx, coupon))

	coupon.UsageCount = 4
	require.NoError(t, writer.UpsertCoupon(ctx, coupon))

	var stored models.Coupon
	require.NoError(t, db.Where("code = ?", "SPRING10").First(&stored).Error)
	assert.Equal(t, 4, stored.UsageCount)
}

func TestUpsertCouponReissuedCode(t *testing.T) {
	writer, db := newTestWriter(t)
	ctx := context.Background()

	original := models.Coupon{
		ID:           uuid.New(),
		Code:         "WELCOME",
		DiscountType: enums.DiscountTypePercentage,
		Amount:       decimal.NewFromInt(10),
		UsageCount:   7,
	}
	require.NoError(t, writer.UpsertCoupon(ctx, original))

	reissued := models.Coupon{
		ID:           uuid.New(),
		Code:         "WELCOME",
		DiscountType: enums.DiscountTypeFixedCart,
		Amount:       decimal.NewFromInt(5),
		UsageCount:   0,
	}
	require.NoError(t, writer.UpsertCoupon(ctx, reissued))

	var count int64
	require.NoError(t, db.Model(&models.Coupon{}).Where("code = ?", "WELCOME").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var stored models.Coupon
	require.NoError(t, db.Where("code = ?", "WELCOME").First(&stored).Error)
	assert.Equal(t, reissued.ID, stored.ID)
	assert.Equal(t, enums.DiscountTypeFixedCart, stored.DiscountType)
	assert.Equal(t, 0, stored.UsageCount)
}
