package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-insights/api/controllers"
	reportcontrollers "github.com/angelmondragon/storefront-insights/api/controllers/reports"
	"github.com/angelmondragon/storefront-insights/api/middleware"
	"github.com/angelmondragon/storefront-insights/internal/eventstore/warehouse"
	"github.com/angelmondragon/storefront-insights/internal/reports"
	"github.com/angelmondragon/storefront-insights/pkg/config"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	reportsService reports.Service,
	trendService warehouse.TrendService,
	gatherer prometheus.Gatherer,
	checks ...controllers.Check,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, checks...))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	rcfg := cfg.Reports

	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Route("/revenue", func(r chi.Router) {
			r.Get("/total", reportcontrollers.TotalRevenue(reportsService, logg, rcfg))
			r.Get("/net", reportcontrollers.NetRevenue(reportsService, logg, rcfg))
			r.Get("/average-order-value", reportcontrollers.AverageOrderValue(reportsService, logg, rcfg))
			r.Get("/median-order-value", reportcontrollers.MedianOrderValue(reportsService, logg, rcfg))
			r.Get("/by-product", reportcontrollers.RevenueByProduct(reportsService, logg, rcfg))
			r.Get("/by-category", reportcontrollers.RevenueByCategory(reportsService, logg, rcfg))
			r.Get("/by-country", reportcontrollers.RevenueByCountry(reportsService, logg, rcfg))
			r.Get("/by-payment-method", reportcontrollers.RevenueByPaymentMethod(reportsService, logg, rcfg))
			r.Get("/by-coupon", reportcontrollers.RevenueByCoupon(reportsService, logg, rcfg))
			r.Get("/tax-shipping", reportcontrollers.TaxAndShippingTotals(reportsService, logg, rcfg))
			r.Get("/discount-ratio", reportcontrollers.DiscountRatio(reportsService, logg, rcfg))
			r.Get("/forecast", reportcontrollers.RevenueForecast(reportsService, logg, rcfg))
		})

		r.Route("/refunds", func(r chi.Router) {
			r.Get("/rate", reportcontrollers.RefundRate(reportsService, logg, rcfg))
			r.Get("/total", reportcontrollers.RefundTotal(reportsService, logg, rcfg))
		})

		r.Get("/orders/status-counts", reportcontrollers.OrderCountsByStatus(reportsService, logg, rcfg))

		r.Route("/customers", func(r chi.Router) {
			r.Get("/lifetime-value", reportcontrollers.CustomerLifetimeValue(reportsService, logg))
			r.Get("/guest-split", reportcontrollers.GuestVsRegisteredSplit(reportsService, logg, rcfg))
			r.Get("/new-vs-returning", reportcontrollers.NewVsReturningCustomers(reportsService, logg, rcfg))
			r.Get("/cohorts", reportcontrollers.CohortRetention(reportsService, logg, rcfg))
			r.Get("/churn", reportcontrollers.ChurnRate(reportsService, logg, rcfg))
			r.Post("/rfm", reportcontrollers.RFMSegments(reportsService, logg, rcfg))
		})

		r.Route("/funnel", func(r chi.Router) {
			r.Get("/", reportcontrollers.CartFunnel(reportsService, logg, rcfg))
			r.Get("/abandonment", reportcontrollers.AbandonmentRate(reportsService, logg, rcfg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/velocity", reportcontrollers.InventoryVelocity(reportsService, logg, rcfg))
			r.Get("/sell-through", reportcontrollers.SellThroughRate(reportsService, logg, rcfg))
			r.Get("/price-elasticity", reportcontrollers.PriceElasticity(reportsService, logg, rcfg))
		})

		r.Get("/coupons/performance", reportcontrollers.CouponPerformance(reportsService, logg, rcfg))

		if trendService != nil {
			r.Route("/trends", func(r chi.Router) {
				r.Get("/daily-orders", reportcontrollers.DailyOrders(trendService, logg))
				r.Get("/daily-revenue", reportcontrollers.DailyRevenue(trendService, logg))
				r.Get("/daily-discounts", reportcontrollers.DailyDiscounts(trendService, logg))
				r.Get("/top-products", reportcontrollers.TopProducts(trendService, logg))
				r.Get("/top-categories", reportcontrollers.TopCategories(trendService, logg))
			})
		}
	})

	return r
}
