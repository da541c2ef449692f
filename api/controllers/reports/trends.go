package reports

import (
	"net/http"
	"time"

	"github.com/angelmondragon/storefront-insights/api/responses"
	"github.com/angelmondragon/storefront-insights/api/validators"
	"github.com/angelmondragon/storefront-insights/internal/eventstore/warehouse"
	pkgerrors "github.com/angelmondragon/storefront-insights/pkg/errors"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

const (
	defaultTrendRangeDays = 30
	defaultTopLimit       = 10
)

var timeNowUTC = func() time.Time {
	return time.Now().UTC()
}

// resolveTrendRange parses the from/to pair for warehouse trend endpoints,
// defaulting to the last 30 days.
func resolveTrendRange(r *http.Request) (time.Time, time.Time, error) {
	from, err := validators.ParseQueryTime(r, "from")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := validators.ParseQueryTime(r, "to")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if from.IsZero() != to.IsZero() {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "from and to must be provided together")
	}
	if from.IsZero() {
		to = timeNowUTC()
		from = to.AddDate(0, 0, -defaultTrendRangeDays)
	}
	return from, to, nil
}

func trendSeries(logg *logger.Logger, run func(r *http.Request, start, end time.Time) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start, end, err := resolveTrendRange(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		result, err := run(r, start, end)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func DailyOrders(trends warehouse.TrendService, logg *logger.Logger) http.HandlerFunc {
	return trendSeries(logg, func(r *http.Request, start, end time.Time) (any, error) {
		return trends.DailyOrders(r.Context(), start, end)
	})
}

func DailyRevenue(trends warehouse.TrendService, logg *logger.Logger) http.HandlerFunc {
	return trendSeries(logg, func(r *http.Request, start, end time.Time) (any, error) {
		return trends.DailyRevenue(r.Context(), start, end)
	})
}

func DailyDiscounts(trends warehouse.TrendService, logg *logger.Logger) http.HandlerFunc {
	return trendSeries(logg, func(r *http.Request, start, end time.Time) (any, error) {
		return trends.DailyDiscounts(r.Context(), start, end)
	})
}

func TopProducts(trends warehouse.TrendService, logg *logger.Logger) http.HandlerFunc {
	return trendSeries(logg, func(r *http.Request, start, end time.Time) (any, error) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultTopLimit, 1, 100)
		if err != nil {
			return nil, err
		}
		return trends.TopProducts(r.Context(), start, end, limit)
	})
}

func TopCategories(trends warehouse.TrendService, logg *logger.Logger) http.HandlerFunc {
	return trendSeries(logg, func(r *http.Request, start, end time.Time) (any, error) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultTopLimit, 1, 100)
		if err != nil {
			return nil, err
		}
		return trends.TopCategories(r.Context(), start, end, limit)
	})
}
