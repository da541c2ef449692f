package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-insights/internal/aggregate"
	"github.com/angelmondragon/storefront-insights/pkg/db/models"
)

// CouponPerformance reports, per coupon code, the platform's lifetime usage
// count alongside the window's order count, discount given, and attributed
// completed revenue. Codes with no activity either way are included so
// dashboards can show dead coupons.
func (s *service) CouponPerformance(ctx context.Context, q Query) ([]CouponStats, error) {
	defer s.observe("coupon_performance", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return []CouponStats{}, nil
	}

	return cached(ctx, s, "coupon_performance", cacheScope(w), func() ([]CouponStats, error) {
		coupons, couponsErr := s.store.FindCoupons(ctx)
		orders, ordersErr := s.store.FindOrders(ctx, completedScope(w))
		if err := multierr.Combine(couponsErr, ordersErr); err != nil {
			return nil, s.dependencyErr("coupon_performance", err, "querying coupon inputs")
		}

		couponKey := func(o models.Order) string {
			if o.CouponCode == nil {
				return ""
			}
			return *o.CouponCode
		}
		orderCounts := aggregate.CountBy(orders, couponKey)
		discounts := aggregate.SumBy(orders, couponKey,
			func(o models.Order) decimal.Decimal { return o.DiscountTotal })
		revenue := aggregate.SumBy(orders, couponKey,
			func(o models.Order) decimal.Decimal { return o.Total })

		out := make([]CouponStats, 0, len(coupons))
		for _, coupon := range coupons {
			out = append(out, CouponStats{
				Code:              coupon.Code,
				UsageCount:        coupon.UsageCount,
				Orders:            orderCounts[coupon.Code],
				DiscountGiven:     aggregate.RoundCurrency(discounts[coupon.Code]),
				AttributedRevenue: aggregate.RoundCurrency(revenue[coupon.Code]),
			})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
		return out, nil
	})
}
