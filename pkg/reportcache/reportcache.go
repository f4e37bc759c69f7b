package reportcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/billing"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/health"
)

var (
	// ErrCacheMiss indicates no cached report exists for the subscription.
	ErrCacheMiss = errors.New("report cache miss")

	// ErrCacheUnavailable wraps transport failures; callers fall back to
	// recomputing the report.
	ErrCacheUnavailable = errors.New("report cache unavailable")
)

// Store is the subset of the redis client the cache uses. Satisfied by
// *redis.Client and redis.UniversalClient.
type Store interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Cache stores health and billing report snapshots in Redis. Health scoring
// re-scans full payment collections per call, so hot request paths read the
// snapshot and recompute only on miss or after invalidation.
type Cache struct {
	client Store
	ttl    time.Duration
	prefix string
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the snapshot lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithKeyPrefix overrides the key namespace, e.g. for shared Redis instances.
func WithKeyPrefix(prefix string) Option {
	return func(c *Cache) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// New creates a report cache over the given Redis client.
func New(client Store, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		ttl:    15 * time.Minute,
		prefix: "reports",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PutHealth stores a health report snapshot for the subscription.
func (c *Cache) PutHealth(ctx context.Context, subscriptionID uuid.UUID, r health.Report) error {
	return c.put(ctx, c.key("health", subscriptionID), r)
}

// GetHealth loads the cached health report. Returns ErrCacheMiss when no
// snapshot exists or it has expired.
func (c *Cache) GetHealth(ctx context.Context, subscriptionID uuid.UUID) (health.Report, error) {
	var r health.Report
	err := c.get(ctx, c.key("health", subscriptionID), &r)
	return r, err
}

// PutBilling stores a billing summary snapshot for the subscription.
func (c *Cache) PutBilling(ctx context.Context, subscriptionID uuid.UUID, s billing.Summary) error {
	return c.put(ctx, c.key("billing", subscriptionID), s)
}

// GetBilling loads the cached billing summary.
func (c *Cache) GetBilling(ctx context.Context, subscriptionID uuid.UUID) (billing.Summary, error) {
	var s billing.Summary
	err := c.get(ctx, c.key("billing", subscriptionID), &s)
	return s, err
}

// Invalidate drops both snapshots for a subscription. Call it after payment
// events, plan changes and cycle rollovers.
func (c *Cache) Invalidate(ctx context.Context, subscriptionID uuid.UUID) error {
	keys := []string{c.key("health", subscriptionID), c.key("billing", subscriptionID)}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Join(ErrCacheUnavailable, err)
	}
	return nil
}

func (c *Cache) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal report snapshot: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return errors.Join(ErrCacheUnavailable, err)
	}
	return nil
}

func (c *Cache) get(ctx context.Context, key string, v any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return errors.Join(ErrCacheUnavailable, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		// A corrupt snapshot reads as a miss; the caller recomputes.
		return ErrCacheMiss
	}
	return nil
}

func (c *Cache) key(kind string, subscriptionID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", c.prefix, kind, subscriptionID)
}
