package eventstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-insights/internal/window"
	"github.com/angelmondragon/storefront-insights/pkg/db/models"
)

// Scope is a resolved query scope: a concrete time window, concrete status
// sets, and optional entity filters. An empty window matches nothing.
type Scope struct {
	Window      window.Window
	Statuses    window.StatusFilter
	CustomerIDs []uuid.UUID
	ProductIDs  []uuid.UUID
	CouponCodes []string
}

// Store is the read-only query surface the metrics engine depends on. The
// commerce platform owns the data; implementations must never mutate it.
// Implementations are swappable: the SQL read model, the warehouse adapter,
// or an in-memory test fixture.
type Store interface {
	FindOrders(ctx context.Context, scope Scope) ([]models.Order, error)
	FindOrderItems(ctx context.Context, scope Scope) ([]models.OrderItem, error)
	FindRefunds(ctx context.Context, scope Scope) ([]models.Refund, error)
	FindCartAttempts(ctx context.Context, scope Scope) ([]models.CartAttempt, error)
	FindCoupons(ctx context.Context) ([]models.Coupon, error)
	FindProducts(ctx context.Context) ([]models.Product, error)
	FindCustomers(ctx context.Context) ([]models.Customer, error)
	Ping(ctx context.Context) error
}
