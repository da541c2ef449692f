package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/storefront-insights/api/controllers"
	"github.com/angelmondragon/storefront-insights/api/routes"
	"github.com/angelmondragon/storefront-insights/internal/eventstore"
	"github.com/angelmondragon/storefront-insights/internal/eventstore/warehouse"
	"github.com/angelmondragon/storefront-insights/internal/platform"
	"github.com/angelmondragon/storefront-insights/internal/reports"
	"github.com/angelmondragon/storefront-insights/pkg/bigquery"
	"github.com/angelmondragon/storefront-insights/pkg/config"
	"github.com/angelmondragon/storefront-insights/pkg/db"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
	"github.com/angelmondragon/storefront-insights/pkg/metrics"
	"github.com/angelmondragon/storefront-insights/pkg/migrate"
	"github.com/angelmondragon/storefront-insights/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	checks := []controllers.Check{
		{Name: "db", Pinger: dbClient},
		{Name: "redis", Pinger: redisClient},
	}

	var trendService warehouse.TrendService
	if cfg.BigQuery.Enabled(cfg.GCP) {
		bqClient, err := bigquery.NewClient(context.Background(), cfg.GCP, cfg.BigQuery, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap bigquery", err)
			os.Exit(1)
		}
		defer func() {
			if err := bqClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing bigquery", err)
			}
		}()

		trendService, err = warehouse.NewTrendService(bqClient, cfg.GCP.ProjectID, cfg.BigQuery.Dataset, cfg.BigQuery.CommerceEventsTable)
		if err != nil {
			logg.Error(context.Background(), "failed to create trend service", err)
			os.Exit(1)
		}
		checks = append(checks, controllers.Check{Name: "bigquery", Pinger: bqClient})
	}

	registry := prometheus.NewRegistry()
	reportMetrics := metrics.NewReportMetrics(registry)

	store := eventstore.NewSQLStore(dbClient.DB())
	guard := platform.NewGuard(store, logg)

	reportsService, err := reports.NewService(reports.ServiceParams{
		Store:   store,
		Guard:   guard,
		Trends:  trendService,
		Cache:   redisClient,
		Metrics: reportMetrics,
		Logger:  logg,
		Config:  cfg.Reports,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, reportsService, trendService, registry, checks...),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
