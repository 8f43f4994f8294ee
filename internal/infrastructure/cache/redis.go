package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bizcomply/bizcomply/internal/config"
	"github.com/bizcomply/bizcomply/internal/infrastructure/monitoring"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

// redisStore is the Redis-backed Store. All operations are best-effort.
type redisStore struct {
	client  *redis.Client
	logger  logger.Logger
	metrics *monitoring.Metrics
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg *config.RedisConfig, log logger.Logger, metrics *monitoring.Metrics) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}

	log.Info(ctx, "redis cache connected", logger.String("addr", cfg.Addr))
	return &redisStore{
		client:  client,
		logger:  log.WithComponent("redis_cache"),
		metrics: metrics,
	}, nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn(ctx, "redis get failed, treating as miss",
				logger.String("key", key), logger.String("error", err.Error()))
		}
		s.metrics.CacheMiss()
		return nil, false
	}
	s.metrics.CacheHit()
	return data, true
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		s.logger.Warn(ctx, "redis set failed",
			logger.String("key", key), logger.String("error", err.Error()))
	}
}

func (s *redisStore) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Warn(ctx, "redis delete failed",
			logger.String("key", key), logger.String("error", err.Error()))
	}
}

func (s *redisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
