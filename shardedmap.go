package zcache

import (
	"context"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

const shards = 64

var _ ReadWriter = &ShardedMap{}

type bucket struct {
	sync.RWMutex
	data map[string]entry
}

// ShardedMap is an in-memory cache backend with sharded locks to reduce
// contention. Please use NewShardedMap to create it.
type ShardedMap struct {
	buckets [shards]bucket

	*trait
}

// NewShardedMap creates an instance of in-memory cache with optional configuration.
func NewShardedMap(cfg ...StoreConfig) *ShardedMap {
	c := &ShardedMap{}

	for i := 0; i < shards; i++ {
		c.buckets[i].data = make(map[string]entry)
	}

	c.trait = newTrait(cfg...)

	return c
}

// Read gets value.
func (c *ShardedMap) Read(ctx context.Context, k string) (Value, error) {
	if SkipRead(ctx) {
		return Value{}, ErrCacheItemNotFound
	}

	b := &c.buckets[xxhash.Sum64String(k)%shards]
	b.RLock()
	cacheEntry, found := b.data[k]
	b.RUnlock()

	return c.prepareRead(ctx, cacheEntry, found)
}

// Write sets value.
func (c *ShardedMap) Write(ctx context.Context, k string, v Value) error {
	exp, ttl := c.expireAt(ctx)

	b := &c.buckets[xxhash.Sum64String(k)%shards]
	b.Lock()
	b.data[k] = entry{Val: v, Exp: exp}
	b.Unlock()

	if c.log != nil {
		c.log.Debug(ctx, "wrote to cache", "name", c.config.Name, "key", k, "value", v, "ttl", ttl)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricWrite, 1, "name", c.config.Name)
	}

	return nil
}

// ExpireAll marks all entries as expired, they can still serve stale cache.
func (c *ShardedMap) ExpireAll() {
	now := time.Now()

	for i := range c.buckets {
		b := &c.buckets[i]

		b.Lock()
		for k, v := range b.data {
			v.Exp = now
			b.data[k] = v
		}
		b.Unlock()
	}
}

// RemoveAll deletes all entries.
func (c *ShardedMap) RemoveAll() {
	for i := range c.buckets {
		b := &c.buckets[i]

		b.Lock()
		b.data = make(map[string]entry)
		b.Unlock()
	}
}

// Len returns number of elements in cache, including stale ones.
func (c *ShardedMap) Len() int {
	cnt := 0

	for i := range c.buckets {
		b := &c.buckets[i]

		b.RLock()
		cnt += len(b.data)
		b.RUnlock()
	}

	return cnt
}

// Walk walks cached entries.
func (c *ShardedMap) Walk(walkFn func(key string, e Entry) error) (int, error) {
	n := 0

	for i := range c.buckets {
		b := &c.buckets[i]

		b.RLock()
		for k, v := range b.data {
			b.RUnlock()

			err := walkFn(k, v)

			b.RLock()

			if err != nil {
				b.RUnlock()
				return n, err
			}

			n++
		}
		b.RUnlock()
	}

	return n, nil
}
