package reports

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-insights/api/responses"
	"github.com/angelmondragon/storefront-insights/internal/reports"
	"github.com/angelmondragon/storefront-insights/pkg/config"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

// metric wraps the shared request flow: resolve the window scope, run the
// report, and write the envelope.
func metric(logg *logger.Logger, cfg config.ReportsConfig, run func(ctx context.Context, q reports.Query, r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		q, err := resolveQuery(r, cfg)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := run(ctx, q, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
