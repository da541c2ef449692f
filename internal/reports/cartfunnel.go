package reports

import (
	"context"
	"time"

	"github.com/angelmondragon/storefront-insights/internal/eventstore"
	"github.com/angelmondragon/storefront-insights/internal/funnel"
)

// CartFunnel is the started / checkout / completed breakdown of cart attempts
// in the window, with stage conversion rates. Open attempts idle longer than
// the configured recovery window count as abandoned.
func (s *service) CartFunnel(ctx context.Context, q Query) (funnel.Snapshot, error) {
	defer s.observe("cart_funnel", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return funnel.Snapshot{}, nil
	}

	return cached(ctx, s, "cart_funnel", cacheScope(w), func() (funnel.Snapshot, error) {
		attempts, err := s.fetchCartAttempts(ctx, "cart_funnel", eventstore.Scope{Window: w})
		if err != nil {
			return funnel.Snapshot{}, err
		}
		return funnel.Build(attempts, s.now(), s.cfg.RecoveryWindow), nil
	})
}

// AbandonmentRate is the share of cart attempts in the window counted as
// abandoned, as a 0-100 percentage.
func (s *service) AbandonmentRate(ctx context.Context, q Query) (float64, error) {
	defer s.observe("abandonment_rate", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return 0.0, nil
	}

	attempts, err := s.fetchCartAttempts(ctx, "abandonment_rate", eventstore.Scope{Window: w})
	if err != nil {
		return 0.0, err
	}
	return funnel.AbandonmentRate(attempts, s.now(), s.cfg.RecoveryWindow), nil
}
