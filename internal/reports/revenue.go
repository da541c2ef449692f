package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-insights/internal/aggregate"
	"github.com/angelmondragon/storefront-insights/internal/eventstore"
	"github.com/angelmondragon/storefront-insights/internal/stats"
	"github.com/angelmondragon/storefront-insights/internal/window"
	"github.com/angelmondragon/storefront-insights/pkg/db/models"
	"github.com/angelmondragon/storefront-insights/pkg/enums"
)

func completedScope(w window.Window) eventstore.Scope {
	return eventstore.Scope{Window: w, Statuses: window.ResolveStatuses("completed")}
}

func paidScope(w window.Window) eventstore.Scope {
	return eventstore.Scope{Window: w, Statuses: window.ResolveStatuses("paid")}
}

func allOrdersScope(w window.Window) eventstore.Scope {
	return eventstore.Scope{Window: w}
}

// TotalRevenue is the sum of completed order totals in the window.
func (s *service) TotalRevenue(ctx context.Context, q Query) (decimal.Decimal, error) {
	defer s.observe("total_revenue", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return decimal.Zero, nil
	}

	orders, err := s.fetchOrders(ctx, "total_revenue", completedScope(w))
	if err != nil {
		return decimal.Zero, err
	}
	total := aggregate.Sum(orders, func(o models.Order) decimal.Decimal { return o.Total })
	return aggregate.RoundCurrency(total), nil
}

// NetRevenue is paid order totals minus refunded amounts.
func (s *service) NetRevenue(ctx context.Context, q Query) (decimal.Decimal, error) {
	defer s.observe("net_revenue", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return decimal.Zero, nil
	}

	orders, err := s.fetchOrders(ctx, "net_revenue", paidScope(w))
	if err != nil {
		return decimal.Zero, err
	}
	net := aggregate.Sum(orders, func(o models.Order) decimal.Decimal { return o.NetTotal() })
	return aggregate.RoundCurrency(net), nil
}

// AverageOrderValue is the mean completed order total.
func (s *service) AverageOrderValue(ctx context.Context, q Query) (decimal.Decimal, error) {
	defer s.observe("average_order_value", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return decimal.Zero, nil
	}

	orders, err := s.fetchOrders(ctx, "average_order_value", completedScope(w))
	if err != nil {
		return decimal.Zero, err
	}
	avg := aggregate.Average(orders, func(o models.Order) decimal.Decimal { return o.Total })
	return aggregate.RoundCurrency(avg), nil
}

// MedianOrderValue is the median completed order total.
func (s *service) MedianOrderValue(ctx context.Context, q Query) (float64, error) {
	defer s.observe("median_order_value", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return 0.0, nil
	}

	orders, err := s.fetchOrders(ctx, "median_order_value", completedScope(w))
	if err != nil {
		return 0.0, err
	}
	values := make([]float64, 0, len(orders))
	for _, order := range orders {
		values = append(values, order.Total.InexactFloat64())
	}
	return stats.Round2(stats.Median(values)), nil
}

// RevenueByProduct sums completed line totals per product.
func (s *service) RevenueByProduct(ctx context.Context, q Query) (map[string]decimal.Decimal, error) {
	defer s.observe("revenue_by_product", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return map[string]decimal.Decimal{}, nil
	}

	items, err := s.fetchOrderItems(ctx, "revenue_by_product", completedScope(w))
	if err != nil {
		return nil, err
	}
	grouped := aggregate.SumBy(items,
		func(i models.OrderItem) string { return i.ProductID.String() },
		func(i models.OrderItem) decimal.Decimal { return i.LineTotal },
	)
	return aggregate.RoundCurrencyMap(grouped), nil
}

// RevenueByCategory sums completed line totals per category snapshot.
func (s *service) RevenueByCategory(ctx context.Context, q Query) (map[string]decimal.Decimal, error) {
	defer s.observe("revenue_by_category", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return map[string]decimal.Decimal{}, nil
	}

	items, err := s.fetchOrderItems(ctx, "revenue_by_category", completedScope(w))
	if err != nil {
		return nil, err
	}
	grouped := aggregate.SumBy(items,
		func(i models.OrderItem) string { return i.Category },
		func(i models.OrderItem) decimal.Decimal { return i.LineTotal },
	)
	return aggregate.RoundCurrencyMap(grouped), nil
}

// RevenueByCountry sums completed order totals per shipping country.
func (s *service) RevenueByCountry(ctx context.Context, q Query) (map[string]decimal.Decimal, error) {
	defer s.observe("revenue_by_country", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return map[string]decimal.Decimal{}, nil
	}

	orders, err := s.fetchOrders(ctx, "revenue_by_country", completedScope(w))
	if err != nil {
		return nil, err
	}
	grouped := aggregate.SumBy(orders,
		func(o models.Order) string { return o.CountryCode },
		func(o models.Order) decimal.Decimal { return o.Total },
	)
	return aggregate.RoundCurrencyMap(grouped), nil
}

// RevenueByPaymentMethod sums completed order totals per payment method.
func (s *service) RevenueByPaymentMethod(ctx context.Context, q Query) (map[string]decimal.Decimal, error) {
	defer s.observe("revenue_by_payment_method", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return map[string]decimal.Decimal{}, nil
	}

	orders, err := s.fetchOrders(ctx, "revenue_by_payment_method", completedScope(w))
	if err != nil {
		return nil, err
	}
	grouped := aggregate.SumBy(orders,
		func(o models.Order) string { return o.PaymentMethod.String() },
		func(o models.Order) decimal.Decimal { return o.Total },
	)
	return aggregate.RoundCurrencyMap(grouped), nil
}

// RevenueByCoupon sums completed order totals per applied coupon code.
func (s *service) RevenueByCoupon(ctx context.Context, q Query) (map[string]decimal.Decimal, error) {
	defer s.observe("revenue_by_coupon", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return map[string]decimal.Decimal{}, nil
	}

	orders, err := s.fetchOrders(ctx, "revenue_by_coupon", completedScope(w))
	if err != nil {
		return nil, err
	}
	grouped := aggregate.SumBy(orders,
		func(o models.Order) string {
			if o.CouponCode == nil {
				return ""
			}
			return *o.CouponCode
		},
		func(o models.Order) decimal.Decimal { return o.Total },
	)
	return aggregate.RoundCurrencyMap(grouped), nil
}

// TaxAndShippingTotals sums tax and shipping collected on completed orders.
func (s *service) TaxAndShippingTotals(ctx context.Context, q Query) (TaxShippingTotals, error) {
	defer s.observe("tax_shipping_totals", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return TaxShippingTotals{Tax: decimal.Zero, Shipping: decimal.Zero}, nil
	}

	orders, err := s.fetchOrders(ctx, "tax_shipping_totals", completedScope(w))
	if err != nil {
		return TaxShippingTotals{}, err
	}
	return TaxShippingTotals{
		Tax:      aggregate.RoundCurrency(aggregate.Sum(orders, func(o models.Order) decimal.Decimal { return o.TaxTotal })),
		Shipping: aggregate.RoundCurrency(aggregate.Sum(orders, func(o models.Order) decimal.Decimal { return o.ShippingTotal })),
	}, nil
}

// DiscountRatio is the share of gross sales given away as discounts, as a
// 0-100 percentage. Gross is total plus discount, so a fully discounted order
// still counts toward the base.
func (s *service) DiscountRatio(ctx context.Context, q Query) (float64, error) {
	defer s.observe("discount_ratio", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return 0.0, nil
	}

	orders, err := s.fetchOrders(ctx, "discount_ratio", completedScope(w))
	if err != nil {
		return 0.0, err
	}
	discount := aggregate.Sum(orders, func(o models.Order) decimal.Decimal { return o.DiscountTotal })
	total := aggregate.Sum(orders, func(o models.Order) decimal.Decimal { return o.Total })
	gross := total.Add(discount)
	return stats.Percent(discount.InexactFloat64(), gross.InexactFloat64()), nil
}

// RefundRate is the share of orders in the window with any refund recorded,
// across all statuses, as a 0-100 percentage.
func (s *service) RefundRate(ctx context.Context, q Query) (float64, error) {
	defer s.observe("refund_rate", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return 0.0, nil
	}

	orders, err := s.fetchOrders(ctx, "refund_rate", allOrdersScope(w))
	if err != nil {
		return 0.0, err
	}
	refunded := aggregate.Count(orders, func(o models.Order) bool {
		return o.Status == enums.OrderStatusRefunded || o.RefundedTotal.IsPositive()
	})
	return stats.Percent(float64(refunded), float64(len(orders))), nil
}

// RefundTotal sums refund amounts recorded in the window.
func (s *service) RefundTotal(ctx context.Context, q Query) (decimal.Decimal, error) {
	defer s.observe("refund_total", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return decimal.Zero, nil
	}

	refunds, err := s.store.FindRefunds(ctx, eventstore.Scope{Window: w})
	if err != nil {
		return decimal.Zero, s.dependencyErr("refund_total", err, "querying refunds")
	}
	total := aggregate.Sum(refunds, func(r models.Refund) decimal.Decimal { return r.Amount })
	return aggregate.RoundCurrency(total), nil
}

// OrderCountsByStatus counts orders in the window per status.
func (s *service) OrderCountsByStatus(ctx context.Context, q Query) (map[string]int64, error) {
	defer s.observe("order_counts_by_status", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return map[string]int64{}, nil
	}

	orders, err := s.fetchOrders(ctx, "order_counts_by_status", allOrdersScope(w))
	if err != nil {
		return nil, err
	}
	return aggregate.CountBy(orders, func(o models.Order) string { return o.Status.String() }), nil
}
