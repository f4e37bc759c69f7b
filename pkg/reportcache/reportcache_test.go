package reportcache_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/billing"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/health"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/reportcache"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/usage"
)

// memStore is an in-memory stand-in for the redis client.
type memStore struct {
	values map[string][]byte
	ttls   map[string]time.Duration
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (m *memStore) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.values[key] = append([]byte(nil), value.([]byte)...)
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *memStore) Get(_ context.Context, key string) *redis.StringCmd {
	data, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(data), nil)
}

func (m *memStore) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.values[k]; ok {
			delete(m.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestCache_HealthRoundTrip(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	cache := reportcache.New(store)
	subID := uuid.New()

	report := health.Report{
		PaymentHealth:    health.PaymentGood,
		UsageBand:        usage.BandActive,
		Engagement:       health.EngagementHigh,
		OverallScore:     90,
		Band:             health.BandExcellent,
		ChurnRisk:        health.ChurnLow,
		ChurnProbability: 0.1,
		Recommendations:  []string{"subscription health looks good, no action needed"},
	}

	require.NoError(t, cache.PutHealth(t.Context(), subID, report))

	got, err := cache.GetHealth(t.Context(), subID)
	require.NoError(t, err)
	assert.Equal(t, report.OverallScore, got.OverallScore)
	assert.Equal(t, report.Band, got.Band)
	assert.Equal(t, report.Recommendations, got.Recommendations)
}

func TestCache_MissAndInvalidate(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	cache := reportcache.New(store)
	subID := uuid.New()

	_, err := cache.GetHealth(t.Context(), subID)
	require.ErrorIs(t, err, reportcache.ErrCacheMiss)

	require.NoError(t, cache.PutBilling(t.Context(), subID, billing.Summary{OverdueCount: 1}))
	require.NoError(t, cache.Invalidate(t.Context(), subID))

	_, err = cache.GetBilling(t.Context(), subID)
	require.ErrorIs(t, err, reportcache.ErrCacheMiss)
}

func TestCache_CorruptSnapshotReadsAsMiss(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	cache := reportcache.New(store, reportcache.WithKeyPrefix("test"))
	subID := uuid.New()

	require.NoError(t, cache.PutHealth(t.Context(), subID, health.Report{}))
	for k := range store.values {
		store.values[k] = []byte("{not json")
	}

	_, err := cache.GetHealth(t.Context(), subID)
	require.ErrorIs(t, err, reportcache.ErrCacheMiss)
}

func TestCache_AppliesTTL(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	cache := reportcache.New(store, reportcache.WithTTL(time.Minute))
	subID := uuid.New()

	require.NoError(t, cache.PutHealth(t.Context(), subID, health.Report{}))
	for _, ttl := range store.ttls {
		assert.Equal(t, time.Minute, ttl)
	}
	require.Len(t, store.ttls, 1)
}

func TestCache_SnapshotIsValidJSON(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	cache := reportcache.New(store)
	require.NoError(t, cache.PutBilling(t.Context(), uuid.New(), billing.Summary{PlanID: "starter"}))

	for _, raw := range store.values {
		assert.True(t, json.Valid(raw))
	}
}
