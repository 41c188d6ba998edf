package zcache

import (
	"context"
)

// NoOp is a ReadWriter stub, it can disable caching where a store is expected.
type NoOp struct{}

var _ ReadWriter = NoOp{}

// Read does not find anything.
func (NoOp) Read(ctx context.Context, key string) (Value, error) {
	return Value{}, ErrCacheItemNotFound
}

// Write discards value.
func (NoOp) Write(ctx context.Context, key string, v Value) error {
	return nil
}
