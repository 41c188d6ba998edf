// Package zcache provides an in-process cache of computation results with
// optional expiration and read-through fetching.
//
// Features:
//
//  - Closed set of cacheable value variants: integer, float, text, boolean.
//  - Expiration is checked lazily on read, stale entries read as absent.
//  - Fetch builds a missing value with a caller-supplied producer, no store
//    lock is held while the producer runs.
//  - Failed producers are not cached, next fetch retries.
//  - Pluggable backends: RWMutexMap (default), ShardedMap, SyncMap, NoOp.
//  - Allows logging, stats collection.
//  - Propagates context to allow better control of backend and application components.
//  - Allows mass expiration and removal (drop cache).
package zcache
