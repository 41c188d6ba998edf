package zcache

import "fmt"

// SentinelError is an error.
type SentinelError string

const (
	// ErrExpiredCacheItem indicates expired cache entry.
	ErrExpiredCacheItem = SentinelError("expired cache item")

	// ErrCacheItemNotFound indicates missing cache entry.
	ErrCacheItemNotFound = SentinelError("missing cache item")

	// ErrNothingToInvalidate indicates no caches were added to Invalidator.
	ErrNothingToInvalidate = SentinelError("nothing to invalidate")

	// ErrAlreadyInvalidated indicates recent invalidation.
	ErrAlreadyInvalidated = SentinelError("already invalidated")
)

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}

// FetchError indicates a producer that yielded no value for a key.
type FetchError struct {
	// Key is the cache key that failed to fetch.
	Key string
}

// Error implements error.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed fetching %q cache key", e.Key)
}
