package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jcastell/wellness-backend/internal/logger"
)

// LookupResult classifies a cache read. Unavailable means the cache
// backend errored; callers must treat it exactly like Miss.
type LookupResult int

const (
	Hit LookupResult = iota
	Miss
	Unavailable
)

type Cache interface {
	Lookup(ctx context.Context, key string) (string, LookupResult)
	Store(ctx context.Context, key, value string, ttl time.Duration) error
	Close() error
}

type cache struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewCache(log *logger.Logger, addr string) (Cache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &cache{
		log: log.With("client", "RedisCache"),
		rdb: rdb,
	}, nil
}

func (c *cache) Lookup(ctx context.Context, key string) (string, LookupResult) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", Miss
	}
	if err != nil {
		c.log.Warn("Cache lookup failed", "key", key, "error", err)
		return "", Unavailable
	}
	return val, Hit
}

func (c *cache) Store(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *cache) Close() error {
	return c.rdb.Close()
}

// disabledCache stands in when no Redis is reachable at startup. Every
// lookup reports Unavailable and writes are dropped.
type disabledCache struct{}

func NewDisabledCache() Cache {
	return disabledCache{}
}

func (disabledCache) Lookup(ctx context.Context, key string) (string, LookupResult) {
	return "", Unavailable
}

func (disabledCache) Store(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}

func (disabledCache) Close() error {
	return nil
}
