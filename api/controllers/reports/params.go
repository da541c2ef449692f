package reports

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront-insights/api/validators"
	"github.com/angelmondragon/storefront-insights/internal/reports"
	"github.com/angelmondragon/storefront-insights/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-insights/pkg/errors"
)

const maxLookbackDays = 3650

// resolveQuery builds the report scope from query parameters. An explicit
// start/end pair wins over lookback_days. Malformed parameters are rejected;
// a window that resolves to nothing is not an error, the engine answers it
// with the report's zero value.
func resolveQuery(r *http.Request, cfg config.ReportsConfig) (reports.Query, error) {
	query := r.URL.Query()
	hasStart := strings.TrimSpace(query.Get("start")) != ""
	hasEnd := strings.TrimSpace(query.Get("end")) != ""

	if hasStart != hasEnd {
		return reports.Query{}, pkgerrors.New(pkgerrors.CodeValidation, "start and end must be provided together")
	}

	if hasStart {
		start, err := validators.ParseQueryTime(r, "start")
		if err != nil {
			return reports.Query{}, err
		}
		end, err := validators.ParseQueryTime(r, "end")
		if err != nil {
			return reports.Query{}, err
		}
		return reports.Query{Start: start, End: end}, nil
	}

	lookback, err := validators.ParseQueryInt(r, "lookback_days", cfg.DefaultLookbackDays, -maxLookbackDays, maxLookbackDays)
	if err != nil {
		return reports.Query{}, err
	}
	return reports.Query{LookbackDays: lookback}, nil
}
