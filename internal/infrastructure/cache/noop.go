package cache

import (
	"context"
	"time"
)

// noopStore is the Store used when caching is disabled. Every read misses.
type noopStore struct{}

// NewNoopStore returns a store that caches nothing.
func NewNoopStore() Store { return noopStore{} }

func (noopStore) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (noopStore) Set(context.Context, string, []byte, time.Duration) {}
func (noopStore) Delete(context.Context, string)                     {}
func (noopStore) Ping(context.Context) error                         { return nil }
func (noopStore) Close() error                                       { return nil }
