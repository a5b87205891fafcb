package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/config"
	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects to Redis and verifies the connection with a ping
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr(), err)
	}
	log.Printf("Redis connected: %s", pong)
	return rdb, nil
}

// RedisCache stores JSON-encoded values with a fixed TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps client; entries expire after ttl
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get decodes the value under key into dest and reports whether it was present
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s for cache: %w", key, err)
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// DeletePrefix removes every key starting with prefix
func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// NoopCache never stores anything; used when Redis is disabled
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (NoopCache) Set(ctx context.Context, key string, value interface{}) error {
	return nil
}

func (NoopCache) DeletePrefix(ctx context.Context, prefix string) error {
	return nil
}
