package ingest

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront-insights/pkg/db"
	"github.com/angelmondragon/storefront-insights/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-insights/pkg/errors"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

// Writer persists read-model rows produced by event handlers. It is the only
// component that writes commerce tables; everything downstream reads.
type Writer interface {
	UpsertOrder(ctx context.Context, order models.Order, items []models.OrderItem) error
	ApplyRefund(ctx context.Context, refund models.Refund) error
	UpsertCartAttempt(ctx context.Context, attempt models.CartAttempt, items []models.CartAttemptItem) error
	UpsertCoupon(ctx context.Context, coupon models.Coupon) error
	UpsertProduct(ctx context.Context, product models.Product) error
	UpsertCustomer(ctx context.Context, customer models.Customer) error
}

type gormWriter struct {
	db   *gorm.DB
	logg *logger.Logger
}

// NewWriter builds a Writer over the read-model database.
func NewWriter(db *gorm.DB, logg *logger.Logger) (Writer, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db is required")
	}
	return &gormWriter{db: db, logg: logg}, nil
}

// UpsertOrder replaces the order snapshot and its lines. Negative totals are
// rejected; a refunded total above the order total is capped at the total so
// the read model never violates its own invariant.
func (w *gormWriter) UpsertOrder(ctx context.Context, order models.Order, items []models.OrderItem) error {
	if order.Total.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "order total must not be negative")
	}
	if order.RefundedTotal.GreaterThan(order.Total) {
		if w.logg != nil {
			w.logg.Warn(ctx, "refunded total exceeds order total, capping")
		}
		order.RefundedTotal = order.Total
	}

	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Omit("Items", "Refunds").Create(&order).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			if items[i].ID == uuid.Nil {
				items[i].ID = uuid.New()
			}
			items[i].OrderID = order.ID
			if items[i].Qty < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "order item qty must not be negative")
			}
		}
		return tx.Create(&items).Error
	})
}

// ApplyRefund records the refund and rolls its amount into the order's
// refunded total, capped at the order total.
func (w *gormWriter) ApplyRefund(ctx context.Context, refund models.Refund) error {
	if refund.Amount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "refund amount must not be negative")
	}

	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("id = ?", refund.OrderID).First(&order).Error; err != nil {
			return err
		}

		if refund.ID == uuid.Nil {
			refund.ID = uuid.New()
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&refund).Error; err != nil {
			return err
		}

		refunded := order.RefundedTotal.Add(refund.Amount)
		if refunded.GreaterThan(order.Total) {
			if w.logg != nil {
				w.logg.Warn(ctx, "refund exceeds order total, capping refunded total")
			}
			refunded = order.Total
		}
		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("refunded_total", refunded).Error
	})
}

func (w *gormWriter) UpsertCartAttempt(ctx context.Context, attempt models.CartAttempt, items []models.CartAttemptItem) error {
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Omit("Items").Create(&attempt).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_attempt_id = ?", attempt.ID).Delete(&models.CartAttemptItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			if items[i].ID == uuid.Nil {
				items[i].ID = uuid.New()
			}
			items[i].CartAttemptID = attempt.ID
		}
		return tx.Create(&items).Error
	})
}

func (w *gormWriter) UpsertCoupon(ctx context.Context, coupon models.Coupon) error {
	err := w.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&coupon).Error
	if db.IsUniqueViolation(err, "") {
		// Same code under a new coupon id: the platform reissued the code.
		// Keep the row keyed by code and adopt the new snapshot.
		return w.db.WithContext(ctx).Model(&models.Coupon{}).
			Where("code = ?", coupon.Code).
			Updates(map[string]any{
				"id":            coupon.ID,
				"discount_type": coupon.DiscountType,
				"amount":        coupon.Amount,
				"usage_count":   coupon.UsageCount,
			}).Error
	}
	return err
}

func (w *gormWriter) UpsertProduct(ctx context.Context, product models.Product) error {
	return w.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&product).Error
}

func (w *gormWriter) UpsertCustomer(ctx context.Context, customer models.Customer) error {
	return w.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&customer).Error
}
