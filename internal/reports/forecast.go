package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-insights/internal/stats"
	"github.com/angelmondragon/storefront-insights/internal/window"
	"github.com/angelmondragon/storefront-insights/pkg/db/models"
)

// RevenueForecast fits a trend through the window's daily revenue and projects
// the sum over the next horizonDays. Fewer than five observed days yields 0.
// The daily series comes from the warehouse when one is configured, falling
// back to the relational read model otherwise.
func (s *service) RevenueForecast(ctx context.Context, q Query, horizonDays int) (decimal.Decimal, error) {
	defer s.observe("revenue_forecast", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() || horizonDays <= 0 {
		return decimal.Zero, nil
	}
	if s.cfg.MaxForecastDays > 0 && horizonDays > s.cfg.MaxForecastDays {
		horizonDays = s.cfg.MaxForecastDays
	}

	// Scope on the clamped horizon so capped requests share the capped entry.
	return cached(ctx, s, "revenue_forecast", cacheScope(w, horizonDays), func() (decimal.Decimal, error) {
		series, err := s.dailyRevenueSeries(ctx, w)
		if err != nil {
			return decimal.Zero, err
		}
		forecast := stats.LinearForecast(series, horizonDays)
		if forecast < 0 {
			forecast = 0
		}
		return decimal.NewFromFloat(forecast).Round(2), nil
	})
}

func (s *service) dailyRevenueSeries(ctx context.Context, w window.Window) ([]stats.Point, error) {
	if s.trends != nil {
		points, err := s.trends.DailyRevenue(ctx, w.Start, w.End)
		if err == nil {
			series := make([]stats.Point, 0, len(points))
			for i, p := range points {
				series = append(series, stats.Point{X: float64(i + 1), Y: p.Value})
			}
			return series, nil
		}
		if s.logg != nil {
			s.logg.Warn(ctx, "warehouse series unavailable, deriving from read model")
		}
	}

	orders, err := s.fetchOrders(ctx, "revenue_forecast", completedScope(w))
	if err != nil {
		return nil, err
	}
	return dailySeries(w, orders), nil
}

// dailySeries buckets completed order totals into one point per window day,
// including zero-revenue days so the regression sees the real spacing.
func dailySeries(w window.Window, orders []models.Order) []stats.Point {
	days := w.Days()
	if days == 0 {
		return nil
	}

	buckets := make([]float64, days)
	for _, order := range orders {
		offset := int(order.CreatedAt.Sub(w.Start) / (24 * time.Hour))
		if offset < 0 || offset >= days {
			continue
		}
		buckets[offset] += order.Total.InexactFloat64()
	}

	series := make([]stats.Point, days)
	for i, revenue := range buckets {
		series[i] = stats.Point{X: float64(i + 1), Y: revenue}
	}
	return series
}
