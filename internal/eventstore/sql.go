package eventstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-insights/pkg/db/models"
)

type sqlStore struct {
	db *gorm.DB
}

// NewSQLStore builds a Store over the relational read model. All filters are
// bound parameters; no query text is ever interpolated from input.
func NewSQLStore(db *gorm.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) FindOrders(ctx context.Context, scope Scope) ([]models.Order, error) {
	if scope.Window.IsEmpty() {
		return []models.Order{}, nil
	}

	q := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("orders.created_at >= ? AND orders.created_at < ?", scope.Window.Start, scope.Window.End)
	if len(scope.Statuses.OrderStatuses) > 0 {
		q = q.Where("orders.status IN ?", scope.Statuses.OrderStatuses)
	}
	if len(scope.CustomerIDs) > 0 {
		q = q.Where("orders.customer_id IN ?", scope.CustomerIDs)
	}
	if len(scope.CouponCodes) > 0 {
		q = q.Where("orders.coupon_code IN ?", scope.CouponCodes)
	}

	var orders []models.Order
	if err := q.Order("orders.created_at ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *sqlStore) FindOrderItems(ctx context.Context, scope Scope) ([]models.OrderItem, error) {
	if scope.Window.IsEmpty() {
		return []models.OrderItem{}, nil
	}

	q := s.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", scope.Window.Start, scope.Window.End)
	if len(scope.Statuses.OrderStatuses) > 0 {
		q = q.Where("orders.status IN ?", scope.Statuses.OrderStatuses)
	}
	if len(scope.ProductIDs) > 0 {
		q = q.Where("order_items.product_id IN ?", scope.ProductIDs)
	}

	var items []models.OrderItem
	if err := q.Order("order_items.created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *sqlStore) FindRefunds(ctx context.Context, scope Scope) ([]models.Refund, error) {
	if scope.Window.IsEmpty() {
		return []models.Refund{}, nil
	}

	var refunds []models.Refund
	err := s.db.WithContext(ctx).
		Model(&models.Refund{}).
		Where("created_at >= ? AND created_at < ?", scope.Window.Start, scope.Window.End).
		Order("created_at ASC").
		Find(&refunds).Error
	if err != nil {
		return nil, err
	}
	return refunds, nil
}

func (s *sqlStore) FindCartAttempts(ctx context.Context, scope Scope) ([]models.CartAttempt, error) {
	if scope.Window.IsEmpty() {
		return []models.CartAttempt{}, nil
	}

	q := s.db.WithContext(ctx).
		Model(&models.CartAttempt{}).
		Where("created_at >= ? AND created_at < ?", scope.Window.Start, scope.Window.End)
	if len(scope.Statuses.CartStates) > 0 {
		q = q.Where("state IN ?", scope.Statuses.CartStates)
	}
	if len(scope.CustomerIDs) > 0 {
		q = q.Where("customer_id IN ?", scope.CustomerIDs)
	}

	var attempts []models.CartAttempt
	if err := q.Order("created_at ASC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (s *sqlStore) FindCoupons(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := s.db.WithContext(ctx).Order("code ASC").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

func (s *sqlStore) FindProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *sqlStore) FindCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.WithContext(ctx).Order("registered_at ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *sqlStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
