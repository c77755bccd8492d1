//go:build e2e

package seed_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dealerseed/pkg/authx"
	"github.com/aussiebroadwan/dealerseed/pkg/cachex"
)

// TestRedisCacheEntryLifecycle verifies entries round-trip and expire server side.
func TestRedisCacheEntryLifecycle(t *testing.T) {
	addr := startRedis(t)
	cli := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = cli.Close() })

	ctx := context.Background()
	cache := cachex.NewRedis(cli, "e2e_", nil)

	entry := cachex.Entry{Value: "abc", ExpiresAt: time.Now().Add(2 * time.Second).Truncate(time.Millisecond)}
	require.NoError(t, cache.Put(ctx, "PlatformToken", entry))

	got, ok, err := cache.Get(ctx, "PlatformToken")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entry.Value, got.Value)
	require.True(t, entry.ExpiresAt.Equal(got.ExpiresAt))

	ttl, err := cli.PTTL(ctx, "e2e_PlatformToken").Result()
	require.NoError(t, err)
	require.Positive(t, ttl)

	require.Eventually(t, func() bool {
		_, ok, err := cache.Get(ctx, "PlatformToken")
		return err == nil && !ok
	}, 10*time.Second, 100*time.Millisecond)

	// Expired entries are never written.
	require.NoError(t, cache.Put(ctx, "stale", cachex.Entry{Value: "x", ExpiresAt: time.Now().Add(-time.Second)}))
	exists, err := cli.Exists(ctx, "e2e_stale").Result()
	require.NoError(t, err)
	require.Zero(t, exists)
}

// TestRedisCacheDeleteIf verifies the conditional delete only removes the
// value it was asked to remove.
func TestRedisCacheDeleteIf(t *testing.T) {
	addr := startRedis(t)
	cli := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = cli.Close() })

	ctx := context.Background()
	cache := cachex.NewRedis(cli, "e2e_", nil)
	require.NoError(t, cache.Put(ctx, "PlatformToken", cachex.Entry{Value: "new", ExpiresAt: time.Now().Add(time.Minute)}))

	removed, err := cache.DeleteIf(ctx, "PlatformToken", "old")
	require.NoError(t, err)
	require.False(t, removed)
	got, ok, err := cache.Get(ctx, "PlatformToken")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "new", got.Value)

	removed, err = cache.DeleteIf(ctx, "PlatformToken", "new")
	require.NoError(t, err)
	require.True(t, removed)
	_, ok, err = cache.Get(ctx, "PlatformToken")
	require.NoError(t, err)
	require.False(t, ok)

	// Foreign data under the key is left alone.
	require.NoError(t, cli.Set(ctx, "e2e_raw", "not json", time.Minute).Err())
	removed, err = cache.DeleteIf(ctx, "raw", "not json")
	require.NoError(t, err)
	require.False(t, removed)
}

// TestTokenSourcesShareRedisCache verifies two token sources, standing in for
// two processes, make one identity call between them.
func TestTokenSourcesShareRedisCache(t *testing.T) {
	addr := startRedis(t)
	cli := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = cli.Close() })

	srv, calls := identityServer(t, 3600)

	first := authx.NewTokenSource(srv.URL, authx.WithCache(cachex.NewRedis(cli, "", nil)))
	second := authx.NewTokenSource(srv.URL, authx.WithCache(cachex.NewRedis(cli, "", nil)))

	ctx := context.Background()
	token, err := first.Token(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := second.Token(ctx)
			if err == nil && got != token {
				t.Errorf("second source returned %q, want %q", got, token)
			}
		}()
	}
	wg.Wait()
	require.EqualValues(t, 1, calls.Load())

	require.NoError(t, second.Invalidate(ctx))
	fresh, err := first.Token(ctx)
	require.NoError(t, err)
	require.NotEqual(t, token, fresh)
	require.EqualValues(t, 2, calls.Load())
}
