package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"staybook/infras/metrics"
	"staybook/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	metricsCacheName      = "redis"
	scanBatch             = 100
)

// Nil is returned by Get when the key is absent.
var Nil = redis.Nil

// RedisCache stores JSON encoded values with a TTL in seconds. Strings are
// stored as is.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, ttlSeconds int) error
	Get(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
	Incr(ctx context.Context, key string, ttlSeconds int) (int64, error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, otel otel.Otel) RedisCache {
	return &redisCache{client: client, otel: otel}
}

func (c *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

func (c *redisCache) Save(ctx context.Context, key string, value any, ttlSeconds int) (err error) {
	ctx, scope := c.scope(ctx, "Save", key)
	defer scope.End()

	var raw []byte

	if s, ok := value.(string); ok {
		raw = []byte(s)
	} else if raw, err = json.Marshal(value); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err = c.client.Set(ctx, key, raw, time.Duration(ttlSeconds)*time.Second).Err(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Int("ttl", ttlSeconds).Msg("cache saved")

	return nil
}

func (c *redisCache) Get(ctx context.Context, key string, value any) error {
	ctx, scope := c.scope(ctx, "Get", key)
	defer scope.End()

	raw, err := c.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.ObserveCache(metricsCacheName, metrics.CacheEventMiss)

		return fmt.Errorf("cache miss for %s: %w", key, err)
	case err != nil:
		scope.TraceError(err)

		return fmt.Errorf("failed to get cache value: %w", err)
	}

	metrics.ObserveCache(metricsCacheName, metrics.CacheEventHit)

	if s, ok := value.(*string); ok {
		*s = raw

		return nil
	}

	if err = json.Unmarshal([]byte(raw), value); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	ctx, scope := c.scope(ctx, "Delete", key)
	defer scope.End()

	if err := c.client.Del(ctx, key).Err(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to delete cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

// Clear unlinks every key matching pattern, one SCAN batch at a time.
func (c *redisCache) Clear(ctx context.Context, pattern string) error {
	ctx, scope := c.scope(ctx, "Clear", pattern)
	defer scope.End()

	var cursor uint64

	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			scope.TraceError(err)

			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			if err = c.client.Unlink(ctx, keys...).Err(); err != nil {
				scope.TraceError(err)
				log.Error().Err(err).Str("pattern", pattern).Msg("failed to clear cache")

				return fmt.Errorf("failed to delete cache values: %w", err)
			}
		}

		if cursor = next; cursor == 0 {
			return nil
		}
	}
}

// Incr bumps a counter and starts its TTL on the first increment, giving a
// fixed window that expires ttlSeconds after it opened.
func (c *redisCache) Incr(ctx context.Context, key string, ttlSeconds int) (int64, error) {
	ctx, scope := c.scope(ctx, "Incr", key)
	defer scope.End()

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to increment %s: %w", key, err)
	}

	if count == 1 {
		if err = c.client.Expire(ctx, key, time.Duration(ttlSeconds)*time.Second).Err(); err != nil {
			scope.TraceError(err)

			return count, fmt.Errorf("failed to expire %s: %w", key, err)
		}
	}

	return count, nil
}
