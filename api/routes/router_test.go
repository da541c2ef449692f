package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-insights/api/controllers"
	"github.com/angelmondragon/storefront-insights/internal/eventstore/warehouse"
	"github.com/angelmondragon/storefront-insights/internal/reports"
	"github.com/angelmondragon/storefront-insights/pkg/config"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

// stubReportsService implements only the operations the routing tests hit;
// anything else panics, which is exactly what a mis-routed request deserves.
type stubReportsService struct {
	reports.Service
}

func (stubReportsService) TotalRevenue(context.Context, reports.Query) (decimal.Decimal, error) {
	return decimal.NewFromInt(42), nil
}

type stubTrendService struct{}

func (stubTrendService) DailyOrders(context.Context, time.Time, time.Time) ([]warehouse.SeriesPoint, error) {
	return nil, nil
}

func (stubTrendService) DailyRevenue(context.Context, time.Time, time.Time) ([]warehouse.SeriesPoint, error) {
	return []warehouse.SeriesPoint{{Date: "2025-01-09", Value: 500}}, nil
}

func (stubTrendService) DailyDiscounts(context.Context, time.Time, time.Time) ([]warehouse.SeriesPoint, error) {
	return nil, nil
}

func (stubTrendService) TopProducts(context.Context, time.Time, time.Time, int) ([]warehouse.LabelValue, error) {
	return nil, nil
}

func (stubTrendService) TopCategories(context.Context, time.Time, time.Time, int) ([]warehouse.LabelValue, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		Reports: config.ReportsConfig{
			DefaultLookbackDays: 30,
			MaxForecastDays:     90,
		},
	}
}

func testRouter(t *testing.T, trends warehouse.TrendService) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "routes-test"})
	return NewRouter(
		testConfig(),
		logg,
		stubReportsService{},
		trends,
		prometheus.NewRegistry(),
		controllers.Check{Name: "db", Pinger: stubPinger{}},
	)
}

func TestHealthEndpoints(t *testing.T) {
	router := testRouter(t, nil)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, resp.Code)
		}
	}
}

func TestMetricsEndpointMounted(t *testing.T) {
	router := testRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("metrics returned %d", resp.Code)
	}
}

func TestRevenueRouteMounted(t *testing.T) {
	router := testRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue/total", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("revenue total returned %d", resp.Code)
	}
}

func TestTrendRoutesAbsentWithoutWarehouse(t *testing.T) {
	router := testRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/trends/daily-revenue", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without warehouse, got %d", resp.Code)
	}
}

func TestTrendRoutesMountedWithWarehouse(t *testing.T) {
	router := testRouter(t, stubTrendService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/trends/daily-revenue", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("daily revenue returned %d", resp.Code)
	}
}
