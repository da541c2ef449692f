package reports

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-insights/internal/reports"
	"github.com/angelmondragon/storefront-insights/pkg/config"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

func InventoryVelocity(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.InventoryVelocity(ctx, q)
	})
}

func SellThroughRate(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.SellThroughRate(ctx, q)
	})
}

func PriceElasticity(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.PriceElasticity(ctx, q)
	})
}

func CouponPerformance(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.CouponPerformance(ctx, q)
	})
}
