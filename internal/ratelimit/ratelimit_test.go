package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	s, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(s.Close)

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, s
}

func frozenLimiter(rdb *redis.Client, rate, burst float64) (*Limiter, *time.Time) {
	clock := time.UnixMilli(1_700_000_000_000)
	l := New(rdb, "test", rate, burst)
	l.now = func() time.Time { return clock }
	return l, &clock
}

func TestLimiter_AllowsBurstThenRejects(t *testing.T) {
	rdb, _ := newMiniRedis(t)
	l, _ := frozenLimiter(rdb, 1, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _, err := l.Allow(ctx, "login:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i+1)
	}

	ok, wait, err := l.Allow(ctx, "login:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)
}

func TestLimiter_RefillsOverTime(t *testing.T) {
	rdb, _ := newMiniRedis(t)
	l, clock := frozenLimiter(rdb, 2, 1)
	ctx := context.Background()

	ok, _, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	ok, _, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	*clock = clock.Add(500 * time.Millisecond)

	ok, _, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	rdb, s := newMiniRedis(t)
	l, _ := frozenLimiter(rdb, 1, 1)
	ctx := context.Background()

	ok, _, err := l.Allow(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)

	ok, _, err = l.Allow(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, s.Exists("test:a"))
	assert.True(t, s.Exists("test:b"))
}

func TestLimiter_DisabledAlwaysAllows(t *testing.T) {
	var nilLimiter *Limiter
	ok, _, err := nilLimiter.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)

	rdb, _ := newMiniRedis(t)
	l := New(rdb, "", 0, 5)
	ok, _, err = l.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiter_RedisDownIsAnError(t *testing.T) {
	rdb, s := newMiniRedis(t)
	l, _ := frozenLimiter(rdb, 1, 1)
	s.Close()

	_, _, err := l.Allow(context.Background(), "k")
	assert.Error(t, err)
}
