package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Refund records money returned against an order. The sum of refunds for an
// order never exceeds the order total; the ingest layer enforces this.
type Refund struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	Reason    string          `gorm:"column:reason;not null;default:''"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
