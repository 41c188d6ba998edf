package zcache

import (
	"context"
	"sync"
	"time"
)

var _ ReadWriter = &RWMutexMap{}

// RWMutexMap is an in-memory cache backend. Please use NewRWMutexMap to create it.
type RWMutexMap struct {
	sync.RWMutex
	data map[string]entry

	*trait
}

// NewRWMutexMap creates an instance of in-memory cache with optional configuration.
func NewRWMutexMap(cfg ...StoreConfig) *RWMutexMap {
	c := &RWMutexMap{
		data: map[string]entry{},
	}
	c.trait = newTrait(cfg...)

	return c
}

// Read gets value.
func (c *RWMutexMap) Read(ctx context.Context, k string) (Value, error) {
	if SkipRead(ctx) {
		return Value{}, ErrCacheItemNotFound
	}

	c.RLock()
	cacheEntry, found := c.data[k]
	c.RUnlock()

	return c.prepareRead(ctx, cacheEntry, found)
}

// Write sets value.
func (c *RWMutexMap) Write(ctx context.Context, k string, v Value) error {
	exp, ttl := c.expireAt(ctx)

	c.Lock()
	c.data[k] = entry{Val: v, Exp: exp}
	c.Unlock()

	if c.log != nil {
		c.log.Debug(ctx, "wrote to cache", "name", c.config.Name, "key", k, "value", v, "ttl", ttl)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricWrite, 1, "name", c.config.Name)
	}

	return nil
}

// ExpireAll marks all entries as expired, they can still serve stale cache.
func (c *RWMutexMap) ExpireAll() {
	now := time.Now()

	c.Lock()
	for k, v := range c.data {
		v.Exp = now
		c.data[k] = v
	}
	c.Unlock()
}

// RemoveAll deletes all entries.
func (c *RWMutexMap) RemoveAll() {
	c.Lock()
	c.data = make(map[string]entry)
	c.Unlock()
}

// Len returns number of elements in cache, including stale ones.
func (c *RWMutexMap) Len() int {
	c.RLock()
	cnt := len(c.data)
	c.RUnlock()

	return cnt
}

// Walk walks cached entries.
func (c *RWMutexMap) Walk(walkFn func(key string, e Entry) error) (int, error) {
	c.RLock()
	defer c.RUnlock()

	n := 0

	for k, v := range c.data {
		c.RUnlock()

		err := walkFn(k, v)

		c.RLock()

		if err != nil {
			return n, err
		}

		n++
	}

	return n, nil
}
