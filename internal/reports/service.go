package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-insights/internal/eventstore"
	"github.com/angelmondragon/storefront-insights/internal/eventstore/warehouse"
	"github.com/angelmondragon/storefront-insights/internal/funnel"
	"github.com/angelmondragon/storefront-insights/internal/platform"
	"github.com/angelmondragon/storefront-insights/internal/window"
	"github.com/angelmondragon/storefront-insights/pkg/config"
	"github.com/angelmondragon/storefront-insights/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-insights/pkg/errors"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
	"github.com/angelmondragon/storefront-insights/pkg/metrics"
	"github.com/angelmondragon/storefront-insights/pkg/redis"
)

// ServiceParams groups dependencies for the reports service. Trends, Cache,
// and Metrics are optional; the service degrades gracefully without them.
type ServiceParams struct {
	Store   eventstore.Store
	Guard   *platform.Guard
	Trends  warehouse.TrendService
	Cache   *redis.Client
	Metrics *metrics.ReportMetrics
	Logger  *logger.Logger
	Config  config.ReportsConfig
	Now     func() time.Time
}

// Service is the metric catalog: every named report is a thin composition
// over the generic aggregation engine, the statistical utilities, and the
// funnel calculator. Every operation checks platform availability first and
// returns its documented zero value when the platform is down; store failures
// surface as dependency errors so callers can tell "no data" from "store
// unreachable".
type Service interface {
	TotalRevenue(ctx context.Context, q Query) (decimal.Decimal, error)
	NetRevenue(ctx context.Context, q Query) (decimal.Decimal, error)
	AverageOrderValue(ctx context.Context, q Query) (decimal.Decimal, error)
	MedianOrderValue(ctx context.Context, q Query) (float64, error)
	RevenueByProduct(ctx context.Context, q Query) (map[string]decimal.Decimal, error)
	RevenueByCategory(ctx context.Context, q Query) (map[string]decimal.Decimal, error)
	RevenueByCountry(ctx context.Context, q Query) (map[string]decimal.Decimal, error)
	RevenueByPaymentMethod(ctx context.Context, q Query) (map[string]decimal.Decimal, error)
	RevenueByCoupon(ctx context.Context, q Query) (map[string]decimal.Decimal, error)
	TaxAndShippingTotals(ctx context.Context, q Query) (TaxShippingTotals, error)
	DiscountRatio(ctx context.Context, q Query) (float64, error)
	RefundRate(ctx context.Context, q Query) (float64, error)
	RefundTotal(ctx context.Context, q Query) (decimal.Decimal, error)
	OrderCountsByStatus(ctx context.Context, q Query) (map[string]int64, error)
	RevenueForecast(ctx context.Context, q Query, horizonDays int) (decimal.Decimal, error)
	CustomerLifetimeValue(ctx context.Context) (decimal.Decimal, error)
	GuestVsRegisteredSplit(ctx context.Context, q Query) (GuestRegisteredSplit, error)
	NewVsReturningCustomers(ctx context.Context, q Query) (CustomerMix, error)
	CohortRetention(ctx context.Context, q Query, periods int) ([]funnel.Cohort, error)
	ChurnRate(ctx context.Context, q Query, inactiveDays int) (float64, error)
	RFMSegments(ctx context.Context, q Query, thresholds funnel.RFMThresholds) ([]funnel.RFMScore, error)
	CartFunnel(ctx context.Context, q Query) (funnel.Snapshot, error)
	AbandonmentRate(ctx context.Context, q Query) (float64, error)
	InventoryVelocity(ctx context.Context, q Query) (map[string]float64, error)
	SellThroughRate(ctx context.Context, q Query) (map[string]float64, error)
	PriceElasticity(ctx context.Context, q Query) ([]ProductElasticity, error)
	CouponPerformance(ctx context.Context, q Query) ([]CouponStats, error)
}

type service struct {
	store   eventstore.Store
	guard   *platform.Guard
	trends  warehouse.TrendService
	cache   *redis.Client
	metrics *metrics.ReportMetrics
	logg    *logger.Logger
	cfg     config.ReportsConfig
	now     func() time.Time
}

// NewService builds the reports service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event store is required")
	}
	if params.Guard == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "availability guard is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		store:   params.Store,
		guard:   params.Guard,
		trends:  params.Trends,
		cache:   params.Cache,
		metrics: params.Metrics,
		logg:    params.Logger,
		cfg:     params.Config,
		now:     now,
	}, nil
}

func (s *service) resolveWindow(q Query) window.Window {
	if !q.Start.IsZero() || !q.End.IsZero() {
		return window.FromRange(q.Start, q.End)
	}
	return window.FromLookback(s.now(), q.LookbackDays)
}

func (s *service) ready(ctx context.Context) bool {
	return s.guard.Ready(ctx)
}

// observe records report duration. Callers pass time.Now(), never s.now():
// the injected clock is domain time and may be pinned.
func (s *service) observe(report string, started time.Time) {
	s.metrics.ObserveDuration(report, time.Since(started))
}

func (s *service) dependencyErr(report string, err error, message string) error {
	s.metrics.IncFailure(report)
	if s.logg != nil {
		s.logg.Error(context.Background(), message, err)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}

func (s *service) fetchOrders(ctx context.Context, report string, scope eventstore.Scope) ([]models.Order, error) {
	orders, err := s.store.FindOrders(ctx, scope)
	if err != nil {
		return nil, s.dependencyErr(report, err, "querying orders")
	}
	return orders, nil
}

func (s *service) fetchOrderItems(ctx context.Context, report string, scope eventstore.Scope) ([]models.OrderItem, error) {
	items, err := s.store.FindOrderItems(ctx, scope)
	if err != nil {
		return nil, s.dependencyErr(report, err, "querying order items")
	}
	return items, nil
}

func (s *service) fetchCartAttempts(ctx context.Context, report string, scope eventstore.Scope) ([]models.CartAttempt, error) {
	attempts, err := s.store.FindCartAttempts(ctx, scope)
	if err != nil {
		return nil, s.dependencyErr(report, err, "querying cart attempts")
	}
	return attempts, nil
}

// cacheScope identifies a cached result: the window plus every parameter
// that shapes the report, so two calls differing only in a parameter never
// share an entry.
func cacheScope(w window.Window, params ...any) string {
	scope := fmt.Sprintf("%d-%d", w.Start.Unix(), w.End.Unix())
	for _, p := range params {
		scope = fmt.Sprintf("%s-%v", scope, p)
	}
	return scope
}

// cached serves the report from Redis when possible and stores fresh results
// back with the configured TTL. The cache is best effort: any cache failure
// falls through to computing the report.
func cached[T any](ctx context.Context, s *service, report, scope string, compute func() (T, error)) (T, error) {
	var zero T
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return compute()
	}

	key := s.cache.ReportKey(report, scope)
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var out T
		if jsonErr := json.Unmarshal([]byte(raw), &out); jsonErr == nil {
			s.metrics.IncCacheHit(report)
			return out, nil
		}
	} else if !redis.IsNil(err) && s.logg != nil {
		s.logg.Warn(ctx, "report cache read failed")
	}
	s.metrics.IncCacheMiss(report)

	out, err := compute()
	if err != nil {
		return zero, err
	}
	if raw, jsonErr := json.Marshal(out); jsonErr == nil {
		if setErr := s.cache.Set(ctx, key, raw, s.cfg.CacheTTL); setErr != nil && s.logg != nil {
			s.logg.Warn(ctx, "report cache write failed")
		}
	}
	return out, nil
}
