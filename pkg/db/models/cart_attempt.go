package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-insights/pkg/enums"
	"github.com/angelmondragon/storefront-insights/pkg/types"
)

// CartAttempt is a commerce session that may or may not have converted to an
// order. Most attempts never do; abandonment is the steady state.
type CartAttempt struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID        *uuid.UUID        `gorm:"column:customer_id;type:uuid"`
	State             enums.CartState   `gorm:"column:state;not null;default:'open'"`
	Subtotal          decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null"`
	AppliedCoupons    types.StringSet   `gorm:"column:applied_coupons;type:jsonb;serializer:json"`
	CheckoutReachedAt *time.Time        `gorm:"column:checkout_reached_at"`
	ConvertedOrderID  *uuid.UUID        `gorm:"column:converted_order_id;type:uuid"`
	Items             []CartAttemptItem `gorm:"foreignKey:CartAttemptID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	LastActivityAt    time.Time         `gorm:"column:last_activity_at;not null"`
}

// ReachedCheckout reports whether the session made it to the checkout stage.
func (c CartAttempt) ReachedCheckout() bool {
	return c.CheckoutReachedAt != nil
}

// Completed reports whether the session converted into an order.
func (c CartAttempt) Completed() bool {
	return c.State == enums.CartStateConverted
}
