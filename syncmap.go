package zcache

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync"
)

var _ ReadWriter = &SyncMap{}

// SyncMap is an in-memory cache backend on a concurrent map, reads and
// writes take no store-wide lock. Please use NewSyncMap to create it.
type SyncMap struct {
	data *xsync.Map

	*trait
}

// NewSyncMap creates an instance of in-memory cache with optional configuration.
func NewSyncMap(cfg ...StoreConfig) *SyncMap {
	c := &SyncMap{
		data: xsync.NewMap(),
	}
	c.trait = newTrait(cfg...)

	return c
}

// Read gets value.
func (c *SyncMap) Read(ctx context.Context, k string) (Value, error) {
	if SkipRead(ctx) {
		return Value{}, ErrCacheItemNotFound
	}

	v, found := c.data.Load(k)

	var cacheEntry entry
	if found {
		cacheEntry = v.(entry)
	}

	return c.prepareRead(ctx, cacheEntry, found)
}

// Write sets value.
func (c *SyncMap) Write(ctx context.Context, k string, v Value) error {
	exp, ttl := c.expireAt(ctx)
	c.data.Store(k, entry{Val: v, Exp: exp})

	if c.log != nil {
		c.log.Debug(ctx, "wrote to cache", "name", c.config.Name, "key", k, "value", v, "ttl", ttl)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricWrite, 1, "name", c.config.Name)
	}

	return nil
}

// ExpireAll marks all entries as expired, they can still serve stale cache.
func (c *SyncMap) ExpireAll() {
	now := time.Now()

	c.data.Range(func(k string, v interface{}) bool {
		cacheEntry := v.(entry)
		cacheEntry.Exp = now
		c.data.Store(k, cacheEntry)

		return true
	})
}

// RemoveAll deletes all entries.
func (c *SyncMap) RemoveAll() {
	c.data.Range(func(k string, _ interface{}) bool {
		c.data.Delete(k)

		return true
	})
}

// Len returns number of elements in cache, including stale ones.
func (c *SyncMap) Len() int {
	cnt := 0

	c.data.Range(func(_ string, _ interface{}) bool {
		cnt++

		return true
	})

	return cnt
}

// Walk walks cached entries.
func (c *SyncMap) Walk(walkFn func(key string, e Entry) error) (int, error) {
	n := 0

	var walkErr error

	c.data.Range(func(k string, v interface{}) bool {
		walkErr = walkFn(k, v.(entry))
		if walkErr != nil {
			return false
		}

		n++

		return true
	})

	return n, walkErr
}
