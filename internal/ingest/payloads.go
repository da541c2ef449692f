package ingest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-insights/pkg/enums"
)

// OrderEvent is the payload for order lifecycle events. The platform sends
// the full order snapshot on every transition, so one shape covers created,
// paid, completed, and cancelled.
type OrderEvent struct {
	OrderID       uuid.UUID           `json:"order_id"`
	CustomerID    *uuid.UUID          `json:"customer_id"`
	Status        enums.OrderStatus   `json:"status"`
	Currency      enums.Currency      `json:"currency"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	CountryCode   string              `json:"country_code"`
	CouponCode    *string             `json:"coupon_code"`
	Total         decimal.Decimal     `json:"total"`
	TaxTotal      decimal.Decimal     `json:"tax_total"`
	ShippingTotal decimal.Decimal     `json:"shipping_total"`
	DiscountTotal decimal.Decimal     `json:"discount_total"`
	PaidAt        *time.Time          `json:"paid_at"`
	Items         []OrderItemPayload  `json:"items"`
}

// OrderItemPayload is one line of an order snapshot.
type OrderItemPayload struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// RefundEvent is the payload for order_refunded.
type RefundEvent struct {
	RefundID uuid.UUID       `json:"refund_id"`
	OrderID  uuid.UUID       `json:"order_id"`
	Amount   decimal.Decimal `json:"amount"`
	Reason   string          `json:"reason"`
}

// CartEvent is the payload for cart_updated and cart_checked_out.
type CartEvent struct {
	CartID            uuid.UUID         `json:"cart_id"`
	CustomerID        *uuid.UUID        `json:"customer_id"`
	State             enums.CartState   `json:"state"`
	Subtotal          decimal.Decimal   `json:"subtotal"`
	AppliedCoupons    []string          `json:"applied_coupons"`
	CheckoutReachedAt *time.Time        `json:"checkout_reached_at"`
	ConvertedOrderID  *uuid.UUID        `json:"converted_order_id"`
	LastActivityAt    time.Time         `json:"last_activity_at"`
	Items             []CartItemPayload `json:"items"`
}

// CartItemPayload is one line of a cart snapshot.
type CartItemPayload struct {
	ProductID uuid.UUID       `json:"product_id"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CouponEvent is the payload for coupon_updated.
type CouponEvent struct {
	CouponID            uuid.UUID          `json:"coupon_id"`
	Code                string             `json:"code"`
	DiscountType        enums.DiscountType `json:"discount_type"`
	Amount              decimal.Decimal    `json:"amount"`
	UsageCount          int                `json:"usage_count"`
	ExpiresAt           *time.Time         `json:"expires_at"`
	ProductRestriction  []string           `json:"product_restriction"`
	CategoryRestriction []string           `json:"category_restriction"`
}

// ProductEvent is the payload for product_updated.
type ProductEvent struct {
	ProductID     uuid.UUID         `json:"product_id"`
	Name          string            `json:"name"`
	Type          enums.ProductType `json:"type"`
	ParentID      *uuid.UUID        `json:"parent_id"`
	Price         decimal.Decimal   `json:"price"`
	Cost          *decimal.Decimal  `json:"cost"`
	StockQty      *int              `json:"stock_qty"`
	Categories    []string          `json:"categories"`
	Tags          []string          `json:"tags"`
	ReviewCount   int               `json:"review_count"`
	AverageRating decimal.Decimal   `json:"average_rating"`
}

// CustomerEvent is the payload for customer_signup.
type CustomerEvent struct {
	CustomerID   uuid.UUID `json:"customer_id"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}
