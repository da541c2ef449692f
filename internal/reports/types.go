package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

// Query is the caller-facing scope for a report. An explicit range wins over
// lookback days; a zero or negative lookback resolves to an empty window and
// the report's documented zero value.
type Query struct {
	LookbackDays int
	Start        time.Time
	End          time.Time
}

// TaxShippingTotals pairs the tax and shipping collected over a window.
type TaxShippingTotals struct {
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
}

// GuestRegisteredSplit is the share of orders placed by guests vs registered
// customers, as 0-100 percentages.
type GuestRegisteredSplit struct {
	Guest      float64 `json:"guest"`
	Registered float64 `json:"registered"`
}

// CustomerMix counts first-time vs returning buyers inside a window.
type CustomerMix struct {
	New       int64 `json:"new"`
	Returning int64 `json:"returning"`
}

// CouponStats summarizes one coupon's performance over a window.
type CouponStats struct {
	Code              string          `json:"code"`
	UsageCount        int             `json:"usage_count"`
	Orders            int64           `json:"orders"`
	DiscountGiven     decimal.Decimal `json:"discount_given"`
	AttributedRevenue decimal.Decimal `json:"attributed_revenue"`
}

// ProductElasticity is the price elasticity of one product between the two
// halves of a window.
type ProductElasticity struct {
	ProductID  string  `json:"product_id"`
	Elasticity float64 `json:"elasticity"`
}
