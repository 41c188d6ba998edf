package zcache

import (
	"context"
	"time"
)

// DefaultTTL is a ttl value to defer expiration to store configuration.
const DefaultTTL = time.Duration(0)

// NeverExpire is a ttl value to store an entry without expiration,
// regardless of store configuration.
const NeverExpire = time.Duration(-1)

// Reader reads from cache.
type Reader interface {
	// Read returns cached value and/or error.
	// If ErrExpiredCacheItem is returned, stale cached value must be returned as well.
	Read(ctx context.Context, key string) (Value, error)
}

// Writer writes to cache.
type Writer interface {
	// Write stores value in cache with a given key.
	//
	// Expiration is taken from context (WithTTL) or from store configuration.
	Write(ctx context.Context, key string, value Value) error
}

// ReadWriter reads from and writes to cache.
type ReadWriter interface {
	Reader
	Writer
}

// Expirer marks all entries as expired.
type Expirer interface {
	ExpireAll()
}

// Remover deletes all entries.
type Remover interface {
	RemoveAll()
}

// Entry is a cached item.
type Entry interface {
	Value() Value
	ExpireAt() time.Time
}

// Walker calls function for every entry in cache and fails on first error returned by that function.
//
// Count of processed entries is returned.
type Walker interface {
	Walk(func(key string, e Entry) error) (int, error)
}

// ErrExpired defines an expiration error with entry details.
type ErrExpired interface {
	error
	Value() Value
	ExpiredAt() time.Time
}
