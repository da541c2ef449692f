package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-insights/internal/aggregate"
	"github.com/angelmondragon/storefront-insights/internal/funnel"
	"github.com/angelmondragon/storefront-insights/internal/stats"
	"github.com/angelmondragon/storefront-insights/internal/window"
	"github.com/angelmondragon/storefront-insights/pkg/db/models"
)

// historyStart bounds "all history" queries. Commerce data older than this
// predates every deployment of the platform.
var historyStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func (s *service) historyWindow() window.Window {
	return window.FromRange(historyStart, s.now())
}

// CustomerLifetimeValue is the average historical net spend per registered
// customer with at least one paid order.
func (s *service) CustomerLifetimeValue(ctx context.Context) (decimal.Decimal, error) {
	defer s.observe("customer_lifetime_value", time.Now())
	if !s.ready(ctx) {
		return decimal.Zero, nil
	}

	orders, err := s.fetchOrders(ctx, "customer_lifetime_value", paidScope(s.historyWindow()))
	if err != nil {
		return decimal.Zero, err
	}

	spendByCustomer := aggregate.SumBy(orders,
		func(o models.Order) string {
			if o.CustomerID == nil {
				return ""
			}
			return o.CustomerID.String()
		},
		func(o models.Order) decimal.Decimal { return o.NetTotal() },
	)
	if len(spendByCustomer) == 0 {
		return decimal.Zero, nil
	}

	total := decimal.Zero
	for _, spend := range spendByCustomer {
		total = total.Add(spend)
	}
	clv := total.Div(decimal.NewFromInt(int64(len(spendByCustomer))))
	return aggregate.RoundCurrency(clv), nil
}

// GuestVsRegisteredSplit is the share of completed orders placed by guests vs
// registered customers.
func (s *service) GuestVsRegisteredSplit(ctx context.Context, q Query) (GuestRegisteredSplit, error) {
	defer s.observe("guest_registered_split", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return GuestRegisteredSplit{}, nil
	}

	orders, err := s.fetchOrders(ctx, "guest_registered_split", completedScope(w))
	if err != nil {
		return GuestRegisteredSplit{}, err
	}
	guests := aggregate.Count(orders, func(o models.Order) bool { return o.IsGuest() })
	return GuestRegisteredSplit{
		Guest:      stats.Percent(float64(guests), float64(len(orders))),
		Registered: stats.Percent(float64(int64(len(orders))-guests), float64(len(orders))),
	}, nil
}

// NewVsReturningCustomers counts customers whose first paid order falls
// inside the window against those who had already bought before it opened.
func (s *service) NewVsReturningCustomers(ctx context.Context, q Query) (CustomerMix, error) {
	defer s.observe("new_vs_returning", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return CustomerMix{}, nil
	}

	current, err := s.fetchOrders(ctx, "new_vs_returning", paidScope(w))
	if err != nil {
		return CustomerMix{}, err
	}
	prior, err := s.fetchOrders(ctx, "new_vs_returning", paidScope(window.FromRange(historyStart, w.Start)))
	if err != nil {
		return CustomerMix{}, err
	}

	priorCustomers := make(map[string]struct{})
	for _, order := range prior {
		if order.CustomerID != nil {
			priorCustomers[order.CustomerID.String()] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	var mix CustomerMix
	for _, order := range current {
		if order.CustomerID == nil {
			continue
		}
		id := order.CustomerID.String()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, returning := priorCustomers[id]; returning {
			mix.Returning++
		} else {
			mix.New++
		}
	}
	return mix, nil
}

// CohortRetention groups buyers by first-purchase month and reports retention
// over the following periods.
func (s *service) CohortRetention(ctx context.Context, q Query, periods int) ([]funnel.Cohort, error) {
	defer s.observe("cohort_retention", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return []funnel.Cohort{}, nil
	}

	return cached(ctx, s, "cohort_retention", cacheScope(w, periods), func() ([]funnel.Cohort, error) {
		orders, err := s.fetchOrders(ctx, "cohort_retention", paidScope(w))
		if err != nil {
			return nil, err
		}
		return funnel.Retention(orders, periods), nil
	})
}

// ChurnRate is the share of known buyers whose latest paid order is older
// than inactiveDays.
func (s *service) ChurnRate(ctx context.Context, q Query, inactiveDays int) (float64, error) {
	defer s.observe("churn_rate", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() || inactiveDays <= 0 {
		return 0.0, nil
	}

	orders, err := s.fetchOrders(ctx, "churn_rate", paidScope(w))
	if err != nil {
		return 0.0, err
	}
	cutoff := s.now().AddDate(0, 0, -inactiveDays)
	return funnel.ChurnRate(orders, cutoff), nil
}

// RFMSegments scores each buyer by recency, frequency, and monetary value
// using the caller's segment thresholds.
func (s *service) RFMSegments(ctx context.Context, q Query, thresholds funnel.RFMThresholds) ([]funnel.RFMScore, error) {
	defer s.observe("rfm_segments", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return []funnel.RFMScore{}, nil
	}

	orders, err := s.fetchOrders(ctx, "rfm_segments", paidScope(w))
	if err != nil {
		return nil, err
	}
	return funnel.RFM(orders, s.now(), thresholds), nil
}
