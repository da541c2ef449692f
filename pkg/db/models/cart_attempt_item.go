package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartAttemptItem is a line within a cart attempt.
type CartAttemptItem struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CartAttemptID uuid.UUID       `gorm:"column:cart_attempt_id;type:uuid;not null"`
	ProductID     uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Qty           int             `gorm:"column:qty;not null"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}
