// Package cache holds the lookup caches used by order import.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "storefront:ref:"

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisReferenceCache stores resolved reference ids in Redis so every instance
// shares them
type RedisReferenceCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisReferenceCache connects to Redis and verifies the connection
func NewRedisReferenceCache(cfg RedisConfig, ttl time.Duration) (*RedisReferenceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisReferenceCacheWithClient(client, "", ttl), nil
}

// NewRedisReferenceCacheWithClient wraps an existing client
func NewRedisReferenceCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisReferenceCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisReferenceCache{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// GetID returns the cached id for key. A miss is (uuid.Nil, false, nil).
func (c *RedisReferenceCache) GetID(ctx context.Context, key string) (uuid.UUID, bool, error) {
	val, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to read reference cache: %w", err)
	}
	id, err := uuid.Parse(val)
	if err != nil {
		// corrupt entry, treat as a miss and let the next SetID overwrite it
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

// SetID caches id under key for the configured TTL
func (c *RedisReferenceCache) SetID(ctx context.Context, key string, id uuid.UUID) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, id.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write reference cache: %w", err)
	}
	return nil
}

// Close releases the Redis connection pool
func (c *RedisReferenceCache) Close() error {
	return c.client.Close()
}

type cacheEntry struct {
	id        uuid.UUID
	expiresAt time.Time
}

// InMemoryReferenceCache is a process-local reference cache
type InMemoryReferenceCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryReferenceCache creates an empty cache. A zero ttl never expires.
func NewInMemoryReferenceCache(ttl time.Duration) *InMemoryReferenceCache {
	return &InMemoryReferenceCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *InMemoryReferenceCache) GetID(_ context.Context, key string) (uuid.UUID, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return uuid.Nil, false, nil
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return uuid.Nil, false, nil
	}
	return entry.id, true, nil
}

func (c *InMemoryReferenceCache) SetID(_ context.Context, key string, id uuid.UUID) error {
	entry := cacheEntry{id: id}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

// Len returns the number of entries, expired ones included
func (c *InMemoryReferenceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
