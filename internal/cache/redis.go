package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tunegraph/backend/internal/logger"
	"go.uber.org/zap"
)

// RedisClient wraps the redis.Client with centralized connection pooling.
// The cache is optional: a nil *RedisClient is safe to call and behaves as
// a permanent miss.
type RedisClient struct {
	client *redis.Client
}

// ErrCacheMiss is returned when a key is absent (or the cache is disabled).
var ErrCacheMiss = redis.Nil

// NewRedisClient creates and initializes a Redis client with connection pooling.
// Requires REDIS_HOST and optionally REDIS_PORT, REDIS_PASSWORD environment variables.
func NewRedisClient(host string, port string, password string) (*RedisClient, error) {
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 5,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.ErrorWithFields("Failed to connect to Redis", err)
		return nil, err
	}

	rc := &RedisClient{client: client}

	logger.Log.Info("Redis client connected",
		zap.String("address", addr),
	)

	return rc, nil
}

// Close closes the Redis connection gracefully
func (rc *RedisClient) Close() error {
	if rc == nil || rc.client == nil {
		return nil
	}
	return rc.client.Close()
}

// Get retrieves a value from Redis
func (rc *RedisClient) Get(ctx context.Context, key string) (string, error) {
	if rc == nil || rc.client == nil {
		return "", ErrCacheMiss
	}
	return rc.client.Get(ctx, key).Result()
}

// Set stores a value in Redis with a TTL
func (rc *RedisClient) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if rc == nil || rc.client == nil {
		return nil
	}
	return rc.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes keys from Redis
func (rc *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if rc == nil || rc.client == nil || len(keys) == 0 {
		return nil
	}
	return rc.client.Del(ctx, keys...).Err()
}

// Health pings Redis
func (rc *RedisClient) Health(ctx context.Context) error {
	if rc == nil || rc.client == nil {
		return fmt.Errorf("redis not configured")
	}
	return rc.client.Ping(ctx).Err()
}
