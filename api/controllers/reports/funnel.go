package reports

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-insights/internal/reports"
	"github.com/angelmondragon/storefront-insights/pkg/config"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

func CartFunnel(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.CartFunnel(ctx, q)
	})
}

func AbandonmentRate(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.AbandonmentRate(ctx, q)
	})
}
