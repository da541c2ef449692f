package reports

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-insights/api/validators"
	"github.com/angelmondragon/storefront-insights/internal/reports"
	"github.com/angelmondragon/storefront-insights/pkg/config"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

const defaultForecastHorizonDays = 14

func TotalRevenue(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.TotalRevenue(ctx, q)
	})
}

func NetRevenue(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.NetRevenue(ctx, q)
	})
}

func AverageOrderValue(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.AverageOrderValue(ctx, q)
	})
}

func MedianOrderValue(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.MedianOrderValue(ctx, q)
	})
}

func RevenueByProduct(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.RevenueByProduct(ctx, q)
	})
}

func RevenueByCategory(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.RevenueByCategory(ctx, q)
	})
}

func RevenueByCountry(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.RevenueByCountry(ctx, q)
	})
}

func RevenueByPaymentMethod(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.RevenueByPaymentMethod(ctx, q)
	})
}

func RevenueByCoupon(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.RevenueByCoupon(ctx, q)
	})
}

func TaxAndShippingTotals(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.TaxAndShippingTotals(ctx, q)
	})
}

func DiscountRatio(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.DiscountRatio(ctx, q)
	})
}

func RefundRate(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.RefundRate(ctx, q)
	})
}

func RefundTotal(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.RefundTotal(ctx, q)
	})
}

func OrderCountsByStatus(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.OrderCountsByStatus(ctx, q)
	})
}

func RevenueForecast(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, r *http.Request) (any, error) {
		horizon, err := validators.ParseQueryInt(r, "horizon_days", defaultForecastHorizonDays, 1, 365)
		if err != nil {
			return nil, err
		}
		return svc.RevenueForecast(ctx, q, horizon)
	})
}
