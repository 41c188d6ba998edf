package zcache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearutop/zcache"
)

func TestCache_ReadWrite(t *testing.T) {
	ctx := context.Background()
	c := zcache.New()

	_, ok := c.Read(ctx, "never-written")
	assert.False(t, ok)

	for k, v := range map[string]zcache.Value{
		"int":   zcache.Int(-7),
		"float": zcache.Float(3.25),
		"text":  zcache.Text("hi"),
		"bool":  zcache.Bool(false),
	} {
		require.NoError(t, c.Write(ctx, k, v, zcache.DefaultTTL))

		got, ok := c.Read(ctx, k)
		assert.True(t, ok, k)
		assert.Equal(t, v, got, k)
	}

	// Write fully replaces the previous entry.
	require.NoError(t, c.Write(ctx, "int", zcache.Text("was int"), zcache.DefaultTTL))

	got, ok := c.Read(ctx, "int")
	assert.True(t, ok)
	assert.Equal(t, zcache.Text("was int"), got)
}

func TestCache_Write_idempotent(t *testing.T) {
	ctx := context.Background()
	st := stats.TrackerMock{}
	c := zcache.New(zcache.Config{Name: "idem", Stats: &st})

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Write(ctx, "key", zcache.Int(1), time.Minute))
	}

	got, ok := c.Read(ctx, "key")
	assert.True(t, ok)
	assert.Equal(t, zcache.Int(1), got)
	assert.Equal(t, 3, st.Int(zcache.MetricWrite))
}

func TestCache_expiry(t *testing.T) {
	ctx := context.Background()
	c := zcache.New()

	require.NoError(t, c.Write(ctx, "k", zcache.Int(1), 10*time.Millisecond))

	got, ok := c.Read(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, zcache.Int(1), got)

	time.Sleep(20 * time.Millisecond)

	_, ok = c.Read(ctx, "k")
	assert.False(t, ok)

	// Entries without ttl never go stale.
	require.NoError(t, c.Write(ctx, "k2", zcache.Text("hi"), zcache.DefaultTTL))

	time.Sleep(20 * time.Millisecond)

	got, ok = c.Read(ctx, "k2")
	assert.True(t, ok)
	assert.Equal(t, zcache.Text("hi"), got)
}

func TestCache_Fetch(t *testing.T) {
	ctx := context.Background()
	st := stats.TrackerMock{}
	c := zcache.New(zcache.Config{
		Name:   "fetch",
		Logger: ctxd.NoOpLogger{},
		Stats:  &st,
	})

	calls := 0

	v, err := c.Fetch(ctx, "k", zcache.DefaultTTL, func(ctx context.Context) (zcache.Value, bool) {
		calls++

		return zcache.Int(1), true
	})
	require.NoError(t, err)
	assert.Equal(t, zcache.Int(1), v)
	assert.Equal(t, 1, calls)

	// Produced value is cached.
	got, ok := c.Read(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, zcache.Int(1), got)

	// Cache hit does not invoke producer.
	v, err = c.Fetch(ctx, "k", zcache.DefaultTTL, func(ctx context.Context) (zcache.Value, bool) {
		calls++

		return zcache.Int(2), true
	})
	require.NoError(t, err)
	assert.Equal(t, zcache.Int(1), v)
	assert.Equal(t, 1, calls)

	assert.Equal(t, 1, st.Int(zcache.MetricBuild))
}

func TestCache_Fetch_failure(t *testing.T) {
	ctx := context.Background()
	st := stats.TrackerMock{}
	c := zcache.New(zcache.Config{Name: "fetch", Stats: &st})

	calls := 0

	_, err := c.Fetch(ctx, "k", time.Second, func(ctx context.Context) (zcache.Value, bool) {
		calls++

		return zcache.Value{}, false
	})
	require.EqualError(t, err, `failed fetching "k" cache key`)

	var fetchErr *zcache.FetchError

	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "k", fetchErr.Key)

	// Failure is not cached, store is unchanged and next fetch retries.
	_, ok := c.Read(ctx, "k")
	assert.False(t, ok)

	_, err = c.Fetch(ctx, "k", time.Second, func(ctx context.Context) (zcache.Value, bool) {
		calls++

		return zcache.Value{}, false
	})
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, st.Int(zcache.MetricFailedBuild))
}

func TestCache_Fetch_expired(t *testing.T) {
	ctx := context.Background()
	c := zcache.New()

	require.NoError(t, c.Write(ctx, "k", zcache.Int(1), 5*time.Millisecond))

	time.Sleep(10 * time.Millisecond)

	// Stale entry triggers the producer.
	v, err := c.Fetch(ctx, "k", 5*time.Millisecond, func(ctx context.Context) (zcache.Value, bool) {
		return zcache.Int(2), true
	})
	require.NoError(t, err)
	assert.Equal(t, zcache.Int(2), v)
}

func TestCache_Fetch_skipRead(t *testing.T) {
	ctx := context.Background()
	c := zcache.New()

	require.NoError(t, c.Write(ctx, "k", zcache.Int(1), zcache.DefaultTTL))

	// Forced recomputation through a fresh entry.
	v, err := c.Fetch(zcache.WithSkipRead(ctx), "k", zcache.DefaultTTL, func(ctx context.Context) (zcache.Value, bool) {
		return zcache.Int(2), true
	})
	require.NoError(t, err)
	assert.Equal(t, zcache.Int(2), v)

	got, ok := c.Read(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, zcache.Int(2), got)
}

func TestCache_Fetch_concurrent(t *testing.T) {
	ctx := context.Background()
	c := zcache.New()

	var (
		wg    sync.WaitGroup
		calls int64
	)

	// Concurrent fetches of a missing key may all build, last write wins.
	for i := 0; i < 10; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			v, err := c.Fetch(ctx, "k", time.Minute, func(ctx context.Context) (zcache.Value, bool) {
				atomic.AddInt64(&calls, 1)

				return zcache.Int(123), true
			})
			assert.NoError(t, err)
			assert.Equal(t, zcache.Int(123), v)
		}()
	}

	wg.Wait()

	assert.GreaterOrEqual(t, atomic.LoadInt64(&calls), int64(1))

	got, ok := c.Read(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, zcache.Int(123), got)
}

func TestCache_customStore(t *testing.T) {
	ctx := context.Background()
	c := zcache.New(zcache.Config{Store: zcache.NoOp{}})

	calls := 0

	for i := 0; i < 2; i++ {
		v, err := c.Fetch(ctx, "k", zcache.DefaultTTL, func(ctx context.Context) (zcache.Value, bool) {
			calls++

			return zcache.Int(1), true
		})
		require.NoError(t, err)
		assert.Equal(t, zcache.Int(1), v)
	}

	// NoOp store never hits, producer runs every time.
	assert.Equal(t, 2, calls)
}

func TestCache_bulkInvalidation(t *testing.T) {
	ctx := context.Background()
	c := zcache.New(zcache.Config{Name: "bulk"})

	require.NoError(t, c.Write(ctx, "k1", zcache.Int(1), zcache.DefaultTTL))
	require.NoError(t, c.Write(ctx, "k2", zcache.Int(2), zcache.DefaultTTL))

	c.ExpireAll(ctx)
	time.Sleep(time.Millisecond)

	_, ok := c.Read(ctx, "k1")
	assert.False(t, ok)

	// Expired entries are rebuilt on fetch.
	v, err := c.Fetch(ctx, "k1", zcache.DefaultTTL, func(ctx context.Context) (zcache.Value, bool) {
		return zcache.Int(11), true
	})
	require.NoError(t, err)
	assert.Equal(t, zcache.Int(11), v)

	c.RemoveAll(ctx)

	_, ok = c.Read(ctx, "k1")
	assert.False(t, ok)
	_, ok = c.Read(ctx, "k2")
	assert.False(t, ok)
}
