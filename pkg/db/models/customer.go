package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a registered shopper. Aggregated spend is always derived from
// orders, never stored here.
type Customer struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Email        string    `gorm:"column:email;not null;default:''"`
	RegisteredAt time.Time `gorm:"column:registered_at;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
