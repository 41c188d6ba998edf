package zcache

import "time"

// entry is a cache entry.
type entry struct {
	Val Value
	Exp time.Time
}

func (e entry) Value() Value {
	return e.Val
}

// ExpireAt returns expiration time, zero for entries that never expire.
func (e entry) ExpireAt() time.Time {
	return e.Exp
}

// expired reports whether entry is stale at a given moment.
func (e entry) expired(now time.Time) bool {
	return !e.Exp.IsZero() && !e.Exp.After(now)
}

type errExpired struct {
	entry entry
}

func (e errExpired) Error() string {
	return ErrExpiredCacheItem.Error()
}

func (e errExpired) Value() Value {
	return e.entry.Val
}

func (e errExpired) ExpiredAt() time.Time {
	return e.entry.Exp
}

func (e errExpired) Is(err error) bool {
	return err == ErrExpiredCacheItem
}
