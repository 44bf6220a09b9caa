package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReferenceCache is the contract both cache implementations satisfy
type ReferenceCache interface {
	GetID(ctx context.Context, key string) (uuid.UUID, bool, error)
	SetID(ctx context.Context, key string, id uuid.UUID) error
}

// ReferenceCacheFactory picks Redis when reachable and in-memory otherwise
type ReferenceCacheFactory struct {
	redisConfig           RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption configures the factory
type FactoryOption func(*ReferenceCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *ReferenceCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to memory
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *ReferenceCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewReferenceCacheFactory creates a factory
func NewReferenceCacheFactory(cfg RedisConfig, ttl time.Duration, opts ...FactoryOption) *ReferenceCacheFactory {
	f := &ReferenceCacheFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a Redis cache, or an in-memory one if Redis is unavailable and fallback is allowed
func (f *ReferenceCacheFactory) Create() (ReferenceCache, error) {
	redisCache, err := NewRedisReferenceCache(f.redisConfig, f.ttl)
	if err == nil {
		f.logger.Info("using Redis reference cache")
		return redisCache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for reference cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory reference cache", zap.Error(err))
	return NewInMemoryReferenceCache(f.ttl), nil
}

var (
	_ ReferenceCache = (*RedisReferenceCache)(nil)
	_ ReferenceCache = (*InMemoryReferenceCache)(nil)
)
