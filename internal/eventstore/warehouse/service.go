package warehouse

import (
	"context"
	"fmt"
	"time"

	cloudbigquery "cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/angelmondragon/storefront-insights/pkg/bigquery"
	pkgerrors "github.com/angelmondragon/storefront-insights/pkg/errors"
)

const (
	dailyOrdersSQL = `
SELECT
  FORMAT_DATE('%%F', DATE_TRUNC(occurred_at, DAY)) AS day,
  COUNT(DISTINCT order_id) AS value
FROM %s
WHERE event_type = 'order_created'
  AND occurred_at BETWEEN @start AND @end
GROUP BY day
ORDER BY day ASC
`

	dailyRevenueSQL = `
SELECT
  FORMAT_DATE('%%F', DATE_TRUNC(occurred_at, DAY)) AS day,
  SUM(COALESCE(total, 0)) AS value
FROM %s
WHERE event_type IN ('order_paid', 'order_completed')
  AND occurred_at BETWEEN @start AND @end
GROUP BY day
ORDER BY day ASC
`

	dailyDiscountsSQL = `
SELECT
  FORMAT_DATE('%%F', DATE_TRUNC(occurred_at, DAY)) AS day,
  SUM(COALESCE(discount_total, 0)) AS value
FROM %s
WHERE event_type = 'order_created'
  AND occurred_at BETWEEN @start AND @end
GROUP BY day
ORDER BY day ASC
`

	topProductsSQL = `
SELECT label, SUM(value) AS value FROM (
  SELECT
    JSON_VALUE(item, '$.product_id') AS label,
    SAFE_CAST(JSON_VALUE(item, '$.line_total') AS FLOAT64) AS value
  FROM %s
  WHERE items IS NOT NULL
    AND event_type = 'order_created'
    AND occurred_at BETWEEN @start AND @end,
  UNNEST(JSON_EXTRACT_ARRAY(items)) AS item
)
WHERE label IS NOT NULL
GROUP BY label
ORDER BY value DESC
LIMIT @limit
`

	topCategoriesSQL = `
SELECT label, SUM(value) AS value FROM (
  SELECT
    JSON_VALUE(item, '$.category') AS label,
    SAFE_CAST(JSON_VALUE(item, '$.line_total') AS FLOAT64) AS value
  FROM %s
  WHERE items IS NOT NULL
    AND event_type = 'order_created'
    AND occurred_at BETWEEN @start AND @end,
  UNNEST(JSON_EXTRACT_ARRAY(items)) AS item
)
WHERE label IS NOT NULL
GROUP BY label
ORDER BY value DESC
LIMIT @limit
`
)

// SeriesPoint is one day of a pre-aggregated series.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// LabelValue pairs a grouping label with its aggregated value.
type LabelValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TrendService serves daily trend series from the flattened commerce-events
// warehouse table. It is an optional alternative to deriving series from the
// relational read model row by row.
type TrendService interface {
	DailyOrders(ctx context.Context, start, end time.Time) ([]SeriesPoint, error)
	DailyRevenue(ctx context.Context, start, end time.Time) ([]SeriesPoint, error)
	DailyDiscounts(ctx context.Context, start, end time.Time) ([]SeriesPoint, error)
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]LabelValue, error)
	TopCategories(ctx context.Context, start, end time.Time, limit int) ([]LabelValue, error)
}

type trendService struct {
	client   *bigquery.Client
	tableRef string
}

// NewTrendService builds a TrendService over the given warehouse table.
func NewTrendService(client *bigquery.Client, project, dataset, table string) (TrendService, error) {
	if client == nil {
		return nil, fmt.Errorf("bigquery client required")
	}
	if project == "" || dataset == "" || table == "" {
		return nil, fmt.Errorf("project, dataset, and table are required")
	}
	return &trendService{
		client:   client,
		tableRef: fmt.Sprintf("`%s.%s.%s`", project, dataset, table),
	}, nil
}

func (s *trendService) DailyOrders(ctx context.Context, start, end time.Time) ([]SeriesPoint, error) {
	return s.querySeries(ctx, fmt.Sprintf(dailyOrdersSQL, s.tableRef), start, end)
}

func (s *trendService) DailyRevenue(ctx context.Context, start, end time.Time) ([]SeriesPoint, error) {
	return s.querySeries(ctx, fmt.Sprintf(dailyRevenueSQL, s.tableRef), start, end)
}

func (s *trendService) DailyDiscounts(ctx context.Context, start, end time.Time) ([]SeriesPoint, error) {
	return s.querySeries(ctx, fmt.Sprintf(dailyDiscountsSQL, s.tableRef), start, end)
}

func (s *trendService) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]LabelValue, error) {
	return s.queryTopLabels(ctx, fmt.Sprintf(topProductsSQL, s.tableRef), start, end, limit)
}

func (s *trendService) TopCategories(ctx context.Context, start, end time.Time, limit int) ([]LabelValue, error) {
	return s.queryTopLabels(ctx, fmt.Sprintf(topCategoriesSQL, s.tableRef), start, end, limit)
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "start and end are required")
	}
	if end.Before(start) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end must be after start")
	}
	return nil
}

func rangeParams(start, end time.Time) []cloudbigquery.QueryParameter {
	return []cloudbigquery.QueryParameter{
		{Name: "start", Value: start},
		{Name: "end", Value: end},
	}
}

func (s *trendService) querySeries(ctx context.Context, sql string, start, end time.Time) ([]SeriesPoint, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	iter, err := s.client.Query(ctx, sql, rangeParams(start, end))
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}

	var points []SeriesPoint
	for {
		var row struct {
			Day   string                    `bigquery:"day"`
			Value cloudbigquery.NullFloat64 `bigquery:"value"`
		}
		if err := iter.Next(&row); err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("reading series row: %w", err)
		}
		points = append(points, SeriesPoint{Date: row.Day, Value: row.Value.Float64})
	}
	return points, nil
}

func (s *trendService) queryTopLabels(ctx context.Context, sql string, start, end time.Time, limit int) ([]LabelValue, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}

	params := append(rangeParams(start, end), cloudbigquery.QueryParameter{Name: "limit", Value: int64(limit)})
	iter, err := s.client.Query(ctx, sql, params)
	if err != nil {
		return nil, fmt.Errorf("query top labels: %w", err)
	}

	var result []LabelValue
	for {
		var row struct {
			Label string                    `bigquery:"label"`
			Value cloudbigquery.NullFloat64 `bigquery:"value"`
		}
		if err := iter.Next(&row); err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("reading top label row: %w", err)
		}
		result = append(result, LabelValue{Label: row.Label, Value: row.Value.Float64})
	}
	return result, nil
}
