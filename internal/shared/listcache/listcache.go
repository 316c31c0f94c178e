package listcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const entryTTL = 5 * time.Minute

// Cache stores serialized list responses under version-stamped keys. Writes
// bump the entity's version counter instead of scanning for stale entries,
// so invalidation is a single INCR.
type Cache struct {
	client *redis.Client
	group  singleflight.Group
	logger *zap.Logger
}

func New(client *redis.Client, logger ...*zap.Logger) *Cache {
	l := zap.L().Named("listcache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("listcache")
	}
	return &Cache{client: client, logger: l}
}

func (c *Cache) versionKey(kind string) string {
	return kind + ":list:ver"
}

func (c *Cache) entryKey(ctx context.Context, kind, paramsKey string) (string, error) {
	ver, err := c.client.Get(ctx, c.versionKey(kind)).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("%s:list:%d:%s", kind, ver, paramsKey), nil
}

// Invalidate bumps the entity's list version; existing entries become
// unreachable and age out via TTL.
func (c *Cache) Invalidate(ctx context.Context, kind string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, c.versionKey(kind)).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", zap.String("kind", kind), zap.Error(err))
	}
}

// GetOrLoad returns the cached value for (kind, key) or loads it, coalescing
// concurrent loads for the same key through singleflight. Cache failures
// degrade to a plain load.
func GetOrLoad[T any](ctx context.Context, c *Cache, kind, key string, load func() (T, error)) (T, error) {
	var zero T
	if c == nil || c.client == nil {
		return load()
	}

	entryKey, err := c.entryKey(ctx, kind, key)
	if err != nil {
		c.logger.Warn("cache version lookup failed", zap.String("kind", kind), zap.Error(err))
		return load()
	}

	if raw, err := c.client.Get(ctx, entryKey).Bytes(); err == nil {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	} else if err != redis.Nil {
		c.logger.Warn("cache read failed", zap.String("key", entryKey), zap.Error(err))
	}

	v, err, _ := c.group.Do(entryKey, func() (any, error) {
		loaded, err := load()
		if err != nil {
			return zero, err
		}
		if raw, err := json.Marshal(loaded); err == nil {
			if err := c.client.Set(ctx, entryKey, raw, entryTTL).Err(); err != nil {
				c.logger.Warn("cache write failed", zap.String("key", entryKey), zap.Error(err))
			}
		}
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}
