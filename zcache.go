package zcache

import (
	"context"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// Producer computes a value to cache on Fetch miss.
//
// It may block, for example to call an upstream service. Returning false
// reports that no cacheable value could be produced.
type Producer func(ctx context.Context) (Value, bool)

// Config is optional configuration for New.
type Config struct {
	// Name is added to logs and stats.
	Name string

	// Store is a cache backend, in-memory RWMutexMap created by default.
	Store ReadWriter

	// StoreConfig is a configuration for in-memory backend if Store is not provided.
	StoreConfig StoreConfig

	// Logger collects messages with context.
	Logger ctxd.Logger

	// Stats tracks stats.
	Stats stats.Tracker
}

// Cache stores results of expensive or failing computations under string
// keys with optional expiration, and rebuilds them on demand with Fetch.
//
// Please use New to create instance.
type Cache struct {
	store  ReadWriter
	config Config
	log    ctxd.Logger
	stat   stats.Tracker
}

// New creates a Cache instance.
//
// Optional configuration can be provided with Config (only first argument is used).
func New(cfg ...Config) *Cache {
	config := Config{}

	if len(cfg) >= 1 {
		config = cfg[0]
	}

	c := &Cache{}
	c.config = config

	c.log = config.Logger
	if c.log == nil {
		c.log = ctxd.NoOpLogger{}
	}

	c.stat = config.Stats
	if c.stat == nil {
		c.stat = stats.NoOp{}
	}

	c.store = config.Store

	if c.store == nil {
		config.StoreConfig.Name = config.Name
		config.StoreConfig.Logger = config.Logger
		config.StoreConfig.Stats = config.Stats
		c.store = NewRWMutexMap(config.StoreConfig)
	}

	return c
}

// Read returns a fresh cached value for a key.
//
// Absent, stale and force-skipped (WithSkipRead) entries all read as not
// found, a stale entry stays in the store until overwritten or removed.
// Read does not mutate the store.
func (c *Cache) Read(ctx context.Context, key string) (Value, bool) {
	v, err := c.store.Read(ctx, key)
	if err != nil {
		return Value{}, false
	}

	return v, true
}

// Write stores a value for a key, fully replacing any previous entry.
//
// Entry expires ttl from now. Use DefaultTTL to defer expiration to store
// configuration and NeverExpire to keep the entry forever.
func (c *Cache) Write(ctx context.Context, key string, v Value, ttl time.Duration) error {
	return c.store.Write(WithTTL(ctx, ttl), key, v)
}

// Fetch returns a fresh cached value for a key, or builds it with produce.
//
// On a cache hit produce is not invoked. On a miss produce is invoked once
// with no store lock held, so concurrent Fetch calls for the same missing
// key may all build it, last write wins. If produce reports no value,
// FetchError is returned and the store is left unchanged, the next Fetch
// for the key retries.
func (c *Cache) Fetch(ctx context.Context, key string, ttl time.Duration, produce Producer) (Value, error) {
	if v, ok := c.Read(ctx, key); ok {
		return v, nil
	}

	c.log.Debug(ctx, "producing cache value", "name", c.config.Name, "key", key)

	v, ok := produce(ctx)
	if !ok {
		c.log.Warn(ctx, "failed to produce cache value", "name", c.config.Name, "key", key)
		c.stat.Add(ctx, MetricFailedBuild, 1, "name", c.config.Name)

		return Value{}, &FetchError{Key: key}
	}

	c.stat.Add(ctx, MetricBuild, 1, "name", c.config.Name)

	if err := c.Write(ctx, key, v, ttl); err != nil {
		return Value{}, ctxd.WrapError(ctx, err, "failed to store produced value",
			"name", c.config.Name, "key", key)
	}

	return v, nil
}

// ExpireAll marks all entries as expired, if the store supports it.
func (c *Cache) ExpireAll(ctx context.Context) {
	if e, ok := c.store.(Expirer); ok {
		e.ExpireAll()
		c.log.Important(ctx, "expired all cache entries", "name", c.config.Name)
	}
}

// RemoveAll deletes all entries, if the store supports it.
func (c *Cache) RemoveAll(ctx context.Context) {
	if r, ok := c.store.(Remover); ok {
		r.RemoveAll()
		c.log.Important(ctx, "removed all cache entries", "name", c.config.Name)
	}
}
