package platform

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

const probeTimeout = 5 * time.Second

// Pinger is the slice of the event store the guard needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Guard caches a one-time availability probe of the commerce read model.
// Report operations check it before querying and fall back to their documented
// zero values when the platform is unreachable, so a missing dependency never
// fails a dashboard render.
type Guard struct {
	pinger Pinger
	logg   *logger.Logger

	mu    sync.Mutex
	once  *sync.Once
	ready bool
}

// NewGuard builds a guard around the given store. A nil pinger is never ready.
func NewGuard(pinger Pinger, logg *logger.Logger) *Guard {
	return &Guard{
		pinger: pinger,
		logg:   logg,
		once:   new(sync.Once),
	}
}

// Ready probes the platform on first call and caches the verdict for the
// process lifetime. Safe for concurrent use.
func (g *Guard) Ready(ctx context.Context) bool {
	if g == nil {
		return false
	}

	g.mu.Lock()
	once := g.once
	g.mu.Unlock()

	once.Do(func() {
		verdict := g.probe(ctx)
		g.mu.Lock()
		g.ready = verdict
		g.mu.Unlock()
	})

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ready
}

// Reset discards the cached verdict so the next Ready call probes again.
// Intended for tests and operational recovery.
func (g *Guard) Reset() {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.once = new(sync.Once)
	g.ready = false
}

func (g *Guard) probe(ctx context.Context) bool {
	if g.pinger == nil {
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := g.pinger.Ping(probeCtx); err != nil {
		if g.logg != nil {
			g.logg.Warn(ctx, "commerce platform unavailable, reports will return safe defaults")
		}
		return false
	}
	return true
}
