package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/storefront-insights/api/responses"
	"github.com/angelmondragon/storefront-insights/pkg/config"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

const readyProbeTimeout = 3 * time.Second

// Pinger is any dependency that can be probed for readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check names a dependency probe for the readiness endpoint.
type Check struct {
	Name   string
	Pinger Pinger
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Insights-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes each dependency and reports per-check status. Any
// failing check flips the response to 503 so orchestrators stop routing.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyProbeTimeout)
		defer cancel()

		status := map[string]string{}
		healthy := true
		for _, check := range checks {
			if check.Pinger == nil {
				status[check.Name] = "skipped"
				continue
			}
			if err := check.Pinger.Ping(ctx); err != nil {
				healthy = false
				status[check.Name] = "down"
				if logg != nil {
					logCtx := logg.WithField(ctx, "check", check.Name)
					logg.Error(logCtx, "readiness probe failed", err)
				}
				continue
			}
			status[check.Name] = "ok"
		}

		w.Header().Set("X-Insights-Env", cfg.App.Env)
		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, code, status)
	}
}
