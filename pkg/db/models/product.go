package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-insights/pkg/enums"
	"github.com/angelmondragon/storefront-insights/pkg/types"
)

// Product mirrors the platform's catalog entry. StockQty is nil for products
// whose inventory is not managed.
type Product struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Name          string            `gorm:"column:name;not null"`
	Type          enums.ProductType `gorm:"column:type;not null;default:'simple'"`
	ParentID      *uuid.UUID        `gorm:"column:parent_id;type:uuid"`
	Price         decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null"`
	Cost          *decimal.Decimal  `gorm:"column:cost;type:numeric(12,2)"`
	StockQty      *int              `gorm:"column:stock_qty"`
	Categories    types.StringSet   `gorm:"column:categories;type:jsonb;serializer:json"`
	Tags          types.StringSet   `gorm:"column:tags;type:jsonb;serializer:json"`
	ReviewCount   int               `gorm:"column:review_count;not null;default:0"`
	AverageRating decimal.Decimal   `gorm:"column:average_rating;type:numeric(3,2);not null;default:0"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// StockManaged reports whether the product tracks inventory counts.
func (p Product) StockManaged() bool {
	return p.StockQty != nil
}
