package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appcatalog "github.com/jasmey/backend/internal/application/catalog"
	"github.com/jasmey/backend/internal/infrastructure/config"
)

const (
	productListKeyPrefix = "jasmey:products:"
	scanBatchSize        = 100
)

// RedisProductCache implements the catalog ProductCache using Redis. Cache
// problems are logged and treated as misses; the catalog never fails because
// Redis is down.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisProductCache creates a Redis-backed product list cache
func NewRedisProductCache(cfg *config.RedisConfig, logger *zap.Logger) (*RedisProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := time.Duration(cfg.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &RedisProductCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// GetList returns a cached listing for the key, or false when absent
func (c *RedisProductCache) GetList(ctx context.Context, key string) (*appcatalog.ProductListResponse, bool) {
	data, err := c.client.Get(ctx, productListKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("product cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var response appcatalog.ProductListResponse
	if err := json.Unmarshal(data, &response); err != nil {
		c.logger.Warn("product cache entry corrupt, dropping", zap.String("key", key), zap.Error(err))
		c.client.Del(ctx, productListKeyPrefix+key)
		return nil, false
	}
	return &response, true
}

// SetList stores a listing under the key
func (c *RedisProductCache) SetList(ctx context.Context, key string, response *appcatalog.ProductListResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		c.logger.Warn("product cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, productListKeyPrefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops all cached listings after a catalog write
func (c *RedisProductCache) Invalidate(ctx context.Context) {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, productListKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			c.logger.Warn("product cache invalidation scan failed", zap.Error(err))
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.logger.Warn("product cache invalidation delete failed", zap.Error(err))
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}

// Close closes the underlying Redis client
func (c *RedisProductCache) Close() error {
	return c.client.Close()
}

// Ensure RedisProductCache implements ProductCache
var _ appcatalog.ProductCache = (*RedisProductCache)(nil)
