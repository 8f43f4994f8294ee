package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bizcomply/bizcomply/internal/infrastructure/monitoring"
)

// memoryStore is the in-process Store used when no Redis is configured.
// Suitable for single-instance deployments and development.
type memoryStore struct {
	cache   *gocache.Cache
	metrics *monitoring.Metrics
}

// NewMemoryStore creates an in-process cache with the given default TTL.
func NewMemoryStore(defaultTTL time.Duration, metrics *monitoring.Metrics) Store {
	return &memoryStore{
		cache:   gocache.New(defaultTTL, 10*time.Minute),
		metrics: metrics,
	}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	value, found := s.cache.Get(key)
	if !found {
		s.metrics.CacheMiss()
		return nil, false
	}
	data, ok := value.([]byte)
	if !ok {
		s.cache.Delete(key)
		s.metrics.CacheMiss()
		return nil, false
	}
	s.metrics.CacheHit()
	return data, true
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	s.cache.Set(key, value, ttl)
}

func (s *memoryStore) Delete(_ context.Context, key string) {
	s.cache.Delete(key)
}

func (s *memoryStore) Ping(_ context.Context) error { return nil }

func (s *memoryStore) Close() error {
	s.cache.Flush()
	return nil
}
