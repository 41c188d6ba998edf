package zcache

import (
	"context"
	"math/rand"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// StoreConfig controls a store instance.
type StoreConfig struct {
	// Logger is an instance of contextualized logger, can be nil.
	Logger ctxd.Logger

	// Stats is metrics collector, can be nil.
	Stats stats.Tracker

	// Name is cache instance name, used in stats and logging.
	Name string

	// TimeToLive is expiration delay applied to writes that do not carry
	// their own (see WithTTL), default 0 (never expire).
	TimeToLive time.Duration

	// ExpirationJitter is a fraction of TTL to randomize, default 0 (disabled).
	// If enabled, entry TTL will be randomly altered in bounds of ±(ExpirationJitter * TTL / 2).
	ExpirationJitter float64
}

// trait is machinery shared by store implementations.
type trait struct {
	config StoreConfig
	log    ctxd.Logger
	stat   stats.Tracker
}

func newTrait(cfg ...StoreConfig) *trait {
	config := StoreConfig{}

	if len(cfg) >= 1 {
		config = cfg[0]
	}

	return &trait{
		config: config,
		log:    config.Logger,
		stat:   config.Stats,
	}
}

// prepareRead classifies a store lookup result.
//
// Stale entries are reported with their value and errExpired, they stay
// in the store until overwritten or removed.
func (c *trait) prepareRead(ctx context.Context, cacheEntry entry, found bool) (Value, error) {
	if !found {
		if c.log != nil {
			c.log.Debug(ctx, "cache miss", "name", c.config.Name)
		}

		if c.stat != nil {
			c.stat.Add(ctx, MetricMiss, 1, "name", c.config.Name)
		}

		return Value{}, ErrCacheItemNotFound
	}

	if cacheEntry.expired(time.Now()) {
		if c.log != nil {
			c.log.Debug(ctx, "cache key expired", "name", c.config.Name)
		}

		if c.stat != nil {
			c.stat.Add(ctx, MetricExpired, 1, "name", c.config.Name)
		}

		return cacheEntry.Val, errExpired{entry: cacheEntry}
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricHit, 1, "name", c.config.Name)
	}

	if c.log != nil {
		c.log.Debug(ctx, "cache hit", "name", c.config.Name, "entry", cacheEntry)
	}

	return cacheEntry.Val, nil
}

// expireAt resolves absolute expiration for a write, zero time for entries
// that never expire. Resolved ttl is returned for logging.
func (c *trait) expireAt(ctx context.Context) (time.Time, time.Duration) {
	ttl := TTL(ctx)
	if ttl == DefaultTTL {
		ttl = c.config.TimeToLive
	}

	if ttl <= 0 {
		return time.Time{}, NeverExpire
	}

	if c.config.ExpirationJitter > 0 {
		ttl += time.Duration(float64(ttl) * c.config.ExpirationJitter * (rand.Float64() - 0.5))
	}

	return time.Now().Add(ttl), ttl
}
