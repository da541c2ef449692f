package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-insights/pkg/redis"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyManager marks processed event ids in Redis so redelivered
// Pub/Sub messages are dropped instead of double-applied.
type IdempotencyManager struct {
	cache *redis.Client
	ttl   time.Duration
}

// NewIdempotencyManager builds a manager with the given TTL; a non-positive
// TTL falls back to 24h.
func NewIdempotencyManager(cache *redis.Client, ttl time.Duration) *IdempotencyManager {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyManager{cache: cache, ttl: ttl}
}

// CheckAndMarkProcessed atomically claims the event id. It returns true when
// the event was already processed by this consumer.
func (m *IdempotencyManager) CheckAndMarkProcessed(ctx context.Context, consumer string, eventID uuid.UUID) (bool, error) {
	key := m.cache.IdempotencyKey(consumer, eventID.String())
	claimed, err := m.cache.SetNX(ctx, key, "1", m.ttl)
	if err != nil {
		return false, err
	}
	return !claimed, nil
}

// Delete releases a claim so a failed event can be retried on redelivery.
func (m *IdempotencyManager) Delete(ctx context.Context, consumer string, eventID uuid.UUID) error {
	return m.cache.Del(ctx, m.cache.IdempotencyKey(consumer, eventID.String()))
}
