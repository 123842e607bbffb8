package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KrisDawg/family-sync/internal/logger"
	"github.com/KrisDawg/family-sync/internal/store"
	"github.com/KrisDawg/family-sync/models"
)

// fakeCacheRepo is an in-memory stand-in for the sqlite tier.
type fakeCacheRepo struct {
	entries map[string]models.CacheEntry
	putErr  error
	getErr  error
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: make(map[string]models.CacheEntry)}
}

func (f *fakeCacheRepo) Put(_ context.Context, entry models.CacheEntry) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.entries[entry.Key] = entry
	return nil
}

func (f *fakeCacheRepo) Get(_ context.Context, key string) (models.CacheEntry, error) {
	if f.getErr != nil {
		return models.CacheEntry{}, f.getErr
	}
	entry, ok := f.entries[key]
	if !ok {
		return models.CacheEntry{}, store.ErrCacheMiss
	}
	return entry, nil
}

func (f *fakeCacheRepo) Invalidate(_ context.Context, prefixOrKey string) (int64, error) {
	var removed int64
	for key := range f.entries {
		if key == prefixOrKey || (len(key) >= len(prefixOrKey) && key[:len(prefixOrKey)] == prefixOrKey) {
			delete(f.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeCacheRepo) Count(_ context.Context) (int, error) {
	return len(f.entries), nil
}

func newTestCache(t *testing.T, repo store.CacheRepository) *ResponseCache {
	t.Helper()
	c, err := New(repo, 16, logger.Nop())
	require.NoError(t, err)
	return c
}

func TestKey_SortedParams(t *testing.T) {
	a := Key("inventory", map[string]string{"category": "dairy", "location": "fridge"})
	b := Key("inventory", map[string]string{"location": "fridge", "category": "dairy"})

	assert.Equal(t, a, b)
	assert.Equal(t, "inventory:category=dairy&location=fridge", a)
}

func TestKey_NoParams(t *testing.T) {
	assert.Equal(t, "inventory:", Key("/inventory/", nil))
}

func TestGet_HitWithinTTL(t *testing.T) {
	repo := newFakeCacheRepo()
	c := newTestCache(t, repo)
	ctx := context.Background()

	c.Put(ctx, "inventory:", "inventory", json.RawMessage(`[1,2]`), 30*time.Minute)

	got, err := c.Get(ctx, "inventory:")
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(got))
}

func TestGet_MissWhenAbsent(t *testing.T) {
	c := newTestCache(t, newFakeCacheRepo())

	_, err := c.Get(context.Background(), "ghost:")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestGet_MissWhenExpired(t *testing.T) {
	repo := newFakeCacheRepo()
	c := newTestCache(t, repo)
	ctx := context.Background()

	c.Put(ctx, "bills:", "bills", json.RawMessage(`[]`), time.Minute)

	// jump past the TTL
	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err := c.Get(ctx, "bills:")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestGet_ZeroTTLExpiresImmediately(t *testing.T) {
	repo := newFakeCacheRepo()
	c := newTestCache(t, repo)
	ctx := context.Background()

	c.Put(ctx, "family-members:", "family-members", json.RawMessage(`[]`), 0)
	c.now = func() time.Time { return time.Now().Add(time.Hour) }

	_, err := c.Get(ctx, "family-members:")
	assert.ErrorIs(t, err, ErrMiss, "now > storedAt + ttl must miss for ttl = 0 too")
}

func TestGet_NegativeTTLNeverExpires(t *testing.T) {
	repo := newFakeCacheRepo()
	c := newTestCache(t, repo)
	ctx := context.Background()

	c.Put(ctx, "family-members:", "family-members", json.RawMessage(`[]`), -1)
	c.now = func() time.Time { return time.Now().Add(24 * time.Hour) }

	_, err := c.Get(ctx, "family-members:")
	assert.NoError(t, err)
}

func TestGetStale_ReturnsExpiredEntry(t *testing.T) {
	repo := newFakeCacheRepo()
	c := newTestCache(t, repo)
	ctx := context.Background()

	c.Put(ctx, "shopping-list:", "shopping-list", json.RawMessage(`["eggs"]`), time.Minute)
	c.now = func() time.Time { return time.Now().Add(time.Hour) }

	got, err := c.GetStale(ctx, "shopping-list:")
	require.NoError(t, err)
	assert.JSONEq(t, `["eggs"]`, string(got))
}

func TestGet_FallsThroughToDurableTier(t *testing.T) {
	repo := newFakeCacheRepo()
	repo.entries["chores:"] = models.CacheEntry{
		Key:      "chores:",
		Endpoint: "chores",
		Payload:  json.RawMessage(`[]`),
		StoredAt: time.Now(),
		TTL:      30 * time.Minute,
	}
	c := newTestCache(t, repo)

	got, err := c.Get(context.Background(), "chores:")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got))
}

func TestPut_DurableFailure_DegradesToMemory(t *testing.T) {
	repo := newFakeCacheRepo()
	repo.putErr = errors.New("disk full")
	c := newTestCache(t, repo)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		c.Put(ctx, "inventory:", "inventory", json.RawMessage(`[]`), time.Minute)
	})

	// entry still served from the hot tier
	got, err := c.Get(ctx, "inventory:")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got))
}

func TestGet_DurableReadFailure_DegradesToMiss(t *testing.T) {
	repo := newFakeCacheRepo()
	repo.getErr = errors.New("database locked")
	c := newTestCache(t, repo)

	_, err := c.Get(context.Background(), "inventory:")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestInvalidate_ClearsBothTiers(t *testing.T) {
	repo := newFakeCacheRepo()
	c := newTestCache(t, repo)
	ctx := context.Background()

	c.Put(ctx, "inventory:", "inventory", json.RawMessage(`[]`), time.Minute)
	c.Put(ctx, "inventory:category=dairy", "inventory", json.RawMessage(`[]`), time.Minute)
	c.Put(ctx, "bills:", "bills", json.RawMessage(`[]`), time.Minute)

	removed := c.Invalidate(ctx, "inventory")
	assert.Equal(t, int64(2), removed)

	_, err := c.Get(ctx, "inventory:")
	assert.ErrorIs(t, err, ErrMiss)
	_, err = c.Get(ctx, "inventory:category=dairy")
	assert.ErrorIs(t, err, ErrMiss)

	_, err = c.Get(ctx, "bills:")
	assert.NoError(t, err, "unrelated resources must survive invalidation")
}
