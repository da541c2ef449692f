package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-insights/pkg/enums"
	"github.com/angelmondragon/storefront-insights/pkg/types"
)

// Coupon mirrors the platform's coupon definition.
type Coupon struct {
	ID                  uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Code                string             `gorm:"column:code;not null;uniqueIndex"`
	DiscountType        enums.DiscountType `gorm:"column:discount_type;not null"`
	Amount              decimal.Decimal    `gorm:"column:amount;type:numeric(12,2);not null"`
	UsageCount          int                `gorm:"column:usage_count;not null;default:0"`
	ExpiresAt           *time.Time         `gorm:"column:expires_at"`
	ProductRestriction  types.StringSet    `gorm:"column:product_restriction;type:jsonb;serializer:json"`
	CategoryRestriction types.StringSet    `gorm:"column:category_restriction;type:jsonb;serializer:json"`
	CreatedAt           time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// Expired reports whether the coupon is past its expiry at the given instant.
func (c Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
