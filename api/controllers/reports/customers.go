package reports

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-insights/api/responses"
	"github.com/angelmondragon/storefront-insights/api/validators"
	"github.com/angelmondragon/storefront-insights/internal/funnel"
	"github.com/angelmondragon/storefront-insights/internal/reports"
	"github.com/angelmondragon/storefront-insights/pkg/config"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

const (
	defaultCohortPeriods = 6
	defaultInactiveDays  = 90
)

func CustomerLifetimeValue(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		value, err := svc.CustomerLifetimeValue(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, value)
	}
}

func GuestVsRegisteredSplit(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.GuestVsRegisteredSplit(ctx, q)
	})
}

func NewVsReturningCustomers(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, _ *http.Request) (any, error) {
		return svc.NewVsReturningCustomers(ctx, q)
	})
}

func CohortRetention(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, r *http.Request) (any, error) {
		periods, err := validators.ParseQueryInt(r, "periods", defaultCohortPeriods, 1, 24)
		if err != nil {
			return nil, err
		}
		return svc.CohortRetention(ctx, q, periods)
	})
}

func ChurnRate(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, r *http.Request) (any, error) {
		inactiveDays, err := validators.ParseQueryInt(r, "inactive_days", defaultInactiveDays, 1, 3650)
		if err != nil {
			return nil, err
		}
		return svc.ChurnRate(ctx, q, inactiveDays)
	})
}

type rfmRequest struct {
	MaxRecencyDays int     `json:"max_recency_days" validate:"required,min=1,max=3650"`
	MinFrequency   int64   `json:"min_frequency" validate:"required,min=1"`
	MinMonetary    float64 `json:"min_monetary" validate:"min=0"`
}

func RFMSegments(svc reports.Service, logg *logger.Logger, cfg config.ReportsConfig) http.HandlerFunc {
	return metric(logg, cfg, func(ctx context.Context, q reports.Query, r *http.Request) (any, error) {
		var body rfmRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return nil, err
		}
		thresholds := funnel.RFMThresholds{
			MaxRecencyDays: body.MaxRecencyDays,
			MinFrequency:   body.MinFrequency,
			MinMonetary:    decimal.NewFromFloat(body.MinMonetary),
		}
		return svc.RFMSegments(ctx, q, thresholds)
	})
}
