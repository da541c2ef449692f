package funnel

import (
	"time"

	"github.com/angelmondragon/storefront-insights/internal/stats"
	"github.com/angelmondragon/storefront-insights/pkg/db/models"
	"github.com/angelmondragon/storefront-insights/pkg/enums"
)

// Snapshot is the conversion funnel over a set of cart attempts. Stage counts
// are monotonic non-increasing by construction: a completed attempt also
// counts as checkout-reached and started.
type Snapshot struct {
	Started        int64   `json:"started"`
	Checkout       int64   `json:"checkout"`
	Completed      int64   `json:"completed"`
	Abandoned      int64   `json:"abandoned"`
	Failed         int64   `json:"failed"`
	CheckoutRate   float64 `json:"checkout_rate"`
	CompletionRate float64 `json:"completion_rate"`
	OverallRate    float64 `json:"overall_rate"`
}

// Build computes the funnel snapshot at the given instant. Open attempts whose
// last activity predates the recovery window count as abandoned: a shopper who
// walked away two days ago is not coming back.
func Build(attempts []models.CartAttempt, now time.Time, recoveryWindow time.Duration) Snapshot {
	var snap Snapshot
	for _, attempt := range attempts {
		snap.Started++
		if attempt.ReachedCheckout() || attempt.Completed() {
			snap.Checkout++
		}
		switch {
		case attempt.Completed():
			snap.Completed++
		case attempt.State == enums.CartStateFailed:
			snap.Failed++
		case attempt.State == enums.CartStateAbandoned:
			snap.Abandoned++
		case attempt.State == enums.CartStateOpen && isStale(attempt, now, recoveryWindow):
			snap.Abandoned++
		}
	}

	snap.CheckoutRate = stats.Percent(float64(snap.Checkout), float64(snap.Started))
	snap.CompletionRate = stats.Percent(float64(snap.Completed), float64(snap.Checkout))
	snap.OverallRate = stats.Percent(float64(snap.Completed), float64(snap.Started))
	return snap
}

// AbandonmentRate is the share of started attempts counted as abandoned,
// as a 0-100 percentage.
func AbandonmentRate(attempts []models.CartAttempt, now time.Time, recoveryWindow time.Duration) float64 {
	snap := Build(attempts, now, recoveryWindow)
	return stats.Percent(float64(snap.Abandoned), float64(snap.Started))
}

func isStale(attempt models.CartAttempt, now time.Time, recoveryWindow time.Duration) bool {
	if recoveryWindow <= 0 {
		return false
	}
	return now.Sub(attempt.LastActivityAt) > recoveryWindow
}
