package reports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-insights/internal/funnel"
	"github.com/angelmondragon/storefront-insights/internal/reports"
)

// testReportsService records the last query per operation and returns canned
// values. Only the fields a test sets are meaningful; everything else answers
// with the zero value, which matches the engine's own contract.
type testReportsService struct {
	lastQuery    reports.Query
	lastHorizon  int
	lastPeriods  int
	lastInactive int
	lastRFM      funnel.RFMThresholds
	calls        int

	decimalValue decimal.Decimal
	floatValue   float64
	funnelValue  funnel.Snapshot
	err          error
}

var _ reports.Service = (*testReportsService)(nil)

func (s *testReportsService) record(q reports.Query) {
	s.lastQuery = q
	s.calls++
}

func (s *testReportsService) TotalRevenue(_ context.Context, q reports.Query) (decimal.Decimal, error) {
	s.record(q)
	return s.decimalValue, s.err
}

func (s *testReportsService) NetRevenue(_ context.Context, q reports.Query) (decimal.Decimal, error) {
	s.record(q)
	return s.decimalValue, s.err
}

func (s *testReportsService) AverageOrderValue(_ context.Context, q reports.Query) (decimal.Decimal, error) {
	s.record(q)
	return s.decimalValue, s.err
}

func (s *testReportsService) MedianOrderValue(_ context.Context, q reports.Query) (float64, error) {
	s.record(q)
	return s.floatValue, s.err
}

func (s *testReportsService) RevenueByProduct(_ context.Context, q reports.Query) (map[string]decimal.Decimal, error) {
	s.record(q)
	return map[string]decimal.Decimal{}, s.err
}

func (s *testReportsService) RevenueByCategory(_ context.Context, q reports.Query) (map[string]decimal.Decimal, error) {
	s.record(q)
	return map[string]decimal.Decimal{}, s.err
}

func (s *testReportsService) RevenueByCountry(_ context.Context, q reports.Query) (map[string]decimal.Decimal, error) {
	s.record(q)
	return map[string]decimal.Decimal{}, s.err
}

func (s *testReportsService) RevenueByPaymentMethod(_ context.Context, q reports.Query) (map[string]decimal.Decimal, error) {
	s.record(q)
	return map[string]decimal.Decimal{}, s.err
}

func (s *testReportsService) RevenueByCoupon(_ context.Context, q reports.Query) (map[string]decimal.Decimal, error) {
	s.record(q)
	return map[string]decimal.Decimal{}, s.err
}

func (s *testReportsService) TaxAndShippingTotals(_ context.Context, q reports.Query) (reports.TaxShippingTotals, error) {
	s.record(q)
	return reports.TaxShippingTotals{}, s.err
}

func (s *testReportsService) DiscountRatio(_ context.Context, q reports.Query) (float64, error) {
	s.record(q)
	return s.floatValue, s.err
}

func (s *testReportsService) RefundRate(_ context.Context, q reports.Query) (float64, error) {
	s.record(q)
	return s.floatValue, s.err
}

func (s *testReportsService) RefundTotal(_ context.Context, q reports.Query) (decimal.Decimal, error) {
	s.record(q)
	return s.decimalValue, s.err
}

func (s *testReportsService) OrderCountsByStatus(_ context.Context, q reports.Query) (map[string]int64, error) {
	s.record(q)
	return map[string]int64{}, s.err
}

func (s *testReportsService) RevenueForecast(_ context.Context, q reports.Query, horizonDays int) (decimal.Decimal, error) {
	s.record(q)
	s.lastHorizon = horizonDays
	return s.decimalValue, s.err
}

func (s *testReportsService) CustomerLifetimeValue(_ context.Context) (decimal.Decimal, error) {
	s.calls++
	return s.decimalValue, s.err
}

func (s *testReportsService) GuestVsRegisteredSplit(_ context.Context, q reports.Query) (reports.GuestRegisteredSplit, error) {
	s.record(q)
	return reports.GuestRegisteredSplit{}, s.err
}

func (s *testReportsService) NewVsReturningCustomers(_ context.Context, q reports.Query) (reports.CustomerMix, error) {
	s.record(q)
	return reports.CustomerMix{}, s.err
}

func (s *testReportsService) CohortRetention(_ context.Context, q reports.Query, periods int) ([]funnel.Cohort, error) {
	s.record(q)
	s.lastPeriods = periods
	return nil, s.err
}

func (s *testReportsService) ChurnRate(_ context.Context, q reports.Query, inactiveDays int) (float64, error) {
	s.record(q)
	s.lastInactive = inactiveDays
	return s.floatValue, s.err
}

func (s *testReportsService) RFMSegments(_ context.Context, q reports.Query, thresholds funnel.RFMThresholds) ([]funnel.RFMScore, error) {
	s.record(q)
	s.lastRFM = thresholds
	return nil, s.err
}

func (s *testReportsService) CartFunnel(_ context.Context, q reports.Query) (funnel.Snapshot, error) {
	s.record(q)
	return s.funnelValue, s.err
}

func (s *testReportsService) AbandonmentRate(_ context.Context, q reports.Query) (float64, error) {
	s.record(q)
	return s.floatValue, s.err
}

func (s *testReportsService) InventoryVelocity(_ context.Context, q reports.Query) (map[string]float64, error) {
	s.record(q)
	return map[string]float64{}, s.err
}

func (s *testReportsService) SellThroughRate(_ context.Context, q reports.Query) (map[string]float64, error) {
	s.record(q)
	return map[string]float64{}, s.err
}

func (s *testReportsService) PriceElasticity(_ context.Context, q reports.Query) ([]reports.ProductElasticity, error) {
	s.record(q)
	return nil, s.err
}

func (s *testReportsService) CouponPerformance(_ context.Context, q reports.Query) ([]reports.CouponStats, error) {
	s.record(q)
	return nil, s.err
}
