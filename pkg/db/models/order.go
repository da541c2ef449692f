package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-insights/pkg/enums"
)

// Order is the read-model snapshot of a platform order. The commerce platform
// owns all writes; the engine only reads.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID    *uuid.UUID          `gorm:"column:customer_id;type:uuid"`
	Status        enums.OrderStatus   `gorm:"column:status;not null;default:'pending'"`
	Currency      enums.Currency      `gorm:"column:currency;not null;default:'USD'"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null;default:'card'"`
	CountryCode   string              `gorm:"column:country_code;not null;default:''"`
	CouponCode    *string             `gorm:"column:coupon_code"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null"`
	TaxTotal      decimal.Decimal     `gorm:"column:tax_total;type:numeric(12,2);not null"`
	ShippingTotal decimal.Decimal     `gorm:"column:shipping_total;type:numeric(12,2);not null"`
	DiscountTotal decimal.Decimal     `gorm:"column:discount_total;type:numeric(12,2);not null"`
	RefundedTotal decimal.Decimal     `gorm:"column:refunded_total;type:numeric(12,2);not null"`
	PaidAt        *time.Time          `gorm:"column:paid_at"`
	Items         []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Refunds       []Refund            `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// IsGuest reports whether the order was placed without a registered customer.
func (o Order) IsGuest() bool {
	return o.CustomerID == nil
}

// NetTotal is the order total minus any refunded amount.
func (o Order) NetTotal() decimal.Decimal {
	return o.Total.Sub(o.RefundedTotal)
}

// Reconciles checks that line totals plus tax and shipping minus discount
// match the order total within the given rounding tolerance.
func (o Order) Reconciles(tolerance decimal.Decimal) bool {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.LineTotal)
	}
	expected := sum.Add(o.TaxTotal).Add(o.ShippingTotal).Sub(o.DiscountTotal)
	return expected.Sub(o.Total).Abs().LessThanOrEqual(tolerance)
}
