package cache

import (
	"context"
	"time"

	menuapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Caches bundles the engine's caches over one Redis client, or in-memory
// implementations when Redis is disabled or unreachable
type Caches struct {
	Idempotency shared.IdempotencyStore
	DishCosts   menuapp.DishCostCache

	client *redis.Client
}

// New builds the caches. With Redis enabled but unreachable it falls back to
// in-memory caches unless requireRedis is set.
func New(ctx context.Context, cfg config.RedisConfig, costTTL time.Duration, requireRedis bool, logger *zap.Logger) (*Caches, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Enabled {
		client, err := NewRedisClient(ctx, cfg)
		if err == nil {
			logger.Info("using Redis caches", zap.String("addr", cfg.Addr()))
			return &Caches{
				Idempotency: NewRedisIdempotencyStore(client, ""),
				DishCosts:   NewRedisDishCostCache(client, costTTL),
				client:      client,
			}, nil
		}
		if requireRedis {
			return nil, err
		}
		logger.Warn("Redis unavailable, falling back to in-memory caches; "+
			"idempotency keys are not shared between instances",
			zap.Error(err),
		)
	}
	return NewInMemory(costTTL), nil
}

// NewInMemory builds single-instance caches
func NewInMemory(costTTL time.Duration) *Caches {
	return &Caches{
		Idempotency: NewInMemoryIdempotencyStore(0),
		DishCosts:   NewInMemoryDishCostCache(costTTL),
	}
}

// UsesRedis reports whether the caches are Redis-backed
func (c *Caches) UsesRedis() bool {
	return c.client != nil
}

// Close releases the idempotency store and the Redis client
func (c *Caches) Close() error {
	if err := c.Idempotency.Close(); err != nil {
		return err
	}
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Ping checks the Redis connection; in-memory caches are always reachable
func (c *Caches) Ping(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}
