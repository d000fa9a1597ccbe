// Package coordcache caches resolved catalog coordinates in Redis, in front
// of whichever resolver actually answers the name.
package coordcache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/rt2-ephem.net/internal/core/ports/primary"
	"gitlab.com/rt2-ephem.net/internal/core/ports/secondary"
	"gitlab.com/rt2-ephem.net/internal/domain"
)

const coordKeyPrefix = "coords:"

// Store is the key-value surface the cache runs on.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

var _ Store = (*RedisStore)(nil)

// RedisStore implements the Store interface with Redis
type RedisStore struct {
	redisClient *redis.Client
}

// NewRedisStore creates a new Redis store
func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{redisClient: redisClient}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.redisClient.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// cacheEntry is the stored JSON shape.
type cacheEntry struct {
	RADeg  float64 `json:"ra_degrees"`
	DecDeg float64 `json:"dec_degrees"`
}

var _ secondary.CatalogResolver = (*CachingResolver)(nil)

// CachingResolver decorates a CatalogResolver with a TTL cache. Catalog
// positions never move, so a stale hit cannot change an answer, and cache
// trouble only costs the round trip to the inner resolver.
type CachingResolver struct {
	inner  secondary.CatalogResolver
	store  Store
	ttl    time.Duration
	logger primary.Logger
}

// NewCachingResolver creates a new caching resolver
func NewCachingResolver(inner secondary.CatalogResolver, store Store, ttl time.Duration, logger primary.Logger) *CachingResolver {
	return &CachingResolver{
		inner:  inner,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// ResolveName implements the CatalogResolver interface.
func (c *CachingResolver) ResolveName(ctx context.Context, name string) (*domain.SkyCoordinates, error) {
	key := cacheKey(name)

	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Coordinate cache read failed", "name", name, "error", err)
	} else if ok {
		var entry cacheEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			c.logger.Warn("Dropping corrupt cache entry", "key", key, "error", err)
		} else {
			c.logger.Debug("Coordinate cache hit", "name", name)
			return &domain.SkyCoordinates{RADeg: entry.RADeg, DecDeg: entry.DecDeg}, nil
		}
	}

	coords, err := c.inner.ResolveName(ctx, name)
	if err != nil {
		return nil, err
	}

	entryJSON, err := json.Marshal(cacheEntry{RADeg: coords.RADeg, DecDeg: coords.DecDeg})
	if err != nil {
		c.logger.Error("Failed to marshal cache entry", "name", name, "error", err)
		return coords, nil
	}
	if err := c.store.Set(ctx, key, string(entryJSON), c.ttl); err != nil {
		c.logger.Warn("Coordinate cache write failed", "name", name, "error", err)
	}

	return coords, nil
}

func cacheKey(name string) string {
	return coordKeyPrefix + strings.ToLower(strings.TrimSpace(name))
}
