package reports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-insights/pkg/config"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

func testReportsConfig() config.ReportsConfig {
	return config.ReportsConfig{
		RecoveryWindow:      48 * time.Hour,
		CacheTTL:            5 * time.Minute,
		MaxForecastDays:     90,
		DefaultLookbackDays: 30,
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "reports-test"})
}

func TestTotalRevenueDefaultsLookback(t *testing.T) {
	stub := &testReportsService{decimalValue: decimal.NewFromInt(150)}
	handler := TotalRevenue(stub, testLogger(), testReportsConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue/total", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if stub.lastQuery.LookbackDays != 30 {
		t.Fatalf("expected default lookback 30, got %d", stub.lastQuery.LookbackDays)
	}

	var envelope struct {
		Data string `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data != "150" {
		t.Fatalf("unexpected payload %q", envelope.Data)
	}
}

func TestTotalRevenueExplicitRangeWins(t *testing.T) {
	stub := &testReportsService{}
	handler := TotalRevenue(stub, testLogger(), testReportsConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue/total?start=2025-01-01T00:00:00Z&end=2025-02-01T00:00:00Z", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !stub.lastQuery.Start.Equal(want) {
		t.Fatalf("unexpected start %v", stub.lastQuery.Start)
	}
	if stub.lastQuery.LookbackDays != 0 {
		t.Fatalf("explicit range should not set lookback, got %d", stub.lastQuery.LookbackDays)
	}
}

func TestTotalRevenueRejectsMalformedLookback(t *testing.T) {
	stub := &testReportsService{}
	handler := TotalRevenue(stub, testLogger(), testReportsConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue/total?lookback_days=soon", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed lookback, got %d", resp.Code)
	}
	if stub.calls != 0 {
		t.Fatal("service should not be invoked")
	}
}

func TestTotalRevenueRejectsHalfRange(t *testing.T) {
	stub := &testReportsService{}
	handler := TotalRevenue(stub, testLogger(), testReportsConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue/total?start=2025-01-01T00:00:00Z", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for half-provided range, got %d", resp.Code)
	}
}

func TestTotalRevenueAllowsNegativeLookback(t *testing.T) {
	stub := &testReportsService{}
	handler := TotalRevenue(stub, testLogger(), testReportsConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue/total?lookback_days=-5", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	// a window that resolves to nothing is the engine's concern, not a 400
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if stub.lastQuery.LookbackDays != -5 {
		t.Fatalf("unexpected lookback %d", stub.lastQuery.LookbackDays)
	}
}

func TestRevenueForecastParsesHorizon(t *testing.T) {
	stub := &testReportsService{decimalValue: decimal.NewFromInt(210)}
	handler := RevenueForecast(stub, testLogger(), testReportsConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue/forecast?horizon_days=7", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if stub.lastHorizon != 7 {
		t.Fatalf("expected horizon 7, got %d", stub.lastHorizon)
	}
}

func TestRevenueForecastDefaultsHorizon(t *testing.T) {
	stub := &testReportsService{}
	handler := RevenueForecast(stub, testLogger(), testReportsConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue/forecast", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if stub.lastHorizon != defaultForecastHorizonDays {
		t.Fatalf("expected default horizon, got %d", stub.lastHorizon)
	}
}

func TestCohortRetentionParsesPeriods(t *testing.T) {
	stub := &testReportsService{}
	handler := CohortRetention(stub, testLogger(), testReportsConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/customers/cohorts?periods=12", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if stub.lastPeriods != 12 {
		t.Fatalf("expected 12 periods, got %d", stub.lastPeriods)
	}
}

func TestChurnRateRejectsOutOfRangeInactiveDays(t *testing.T) {
	stub := &testReportsService{}
	handler := ChurnRate(stub, testLogger(), testReportsConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/customers/churn?inactive_days=0", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero inactive_days, got %d", resp.Code)
	}
}

func TestRFMSegmentsValidatesBody(t *testing.T) {
	stub := &testReportsService{}
	handler := RFMSegments(stub, testLogger(), testReportsConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/customers/rfm", strings.NewReader(`{"min_frequency":3}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing max_recency_days, got %d", resp.Code)
	}
	if stub.calls != 0 {
		t.Fatal("service should not be invoked")
	}
}

func TestRFMSegmentsPassesThresholds(t *testing.T) {
	stub := &testReportsService{}
	handler := RFMSegments(stub, testLogger(), testReportsConfig())

	body := `{"max_recency_days":30,"min_frequency":3,"min_monetary":250}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/customers/rfm", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if stub.lastRFM.MaxRecencyDays != 30 {
		t.Fatalf("unexpected recency %d", stub.lastRFM.MaxRecencyDays)
	}
	if stub.lastRFM.MinFrequency != 3 {
		t.Fatalf("unexpected frequency %d", stub.lastRFM.MinFrequency)
	}
	if !stub.lastRFM.MinMonetary.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("unexpected monetary %s", stub.lastRFM.MinMonetary)
	}
}
