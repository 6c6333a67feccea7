package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	menuapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/menu"
	"github.com/redis/go-redis/v9"
)

const dishCostKeyPrefix = "catering:dish_cost:"

// RedisDishCostCache stores dish cost breakdowns as JSON with a TTL
type RedisDishCostCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisDishCostCache creates a cache on client; ttl <= 0 keeps entries until invalidated
func NewRedisDishCostCache(client redis.Cmdable, ttl time.Duration) *RedisDishCostCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisDishCostCache{client: client, ttl: ttl}
}

// Get returns the cached breakdown for dishID, if any
func (c *RedisDishCostCache) Get(ctx context.Context, dishID uuid.UUID) (*menuapp.DishCostingResponse, bool, error) {
	data, err := c.client.Get(ctx, dishCostKeyPrefix+dishID.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read dish cost cache: %w", err)
	}

	var costing menuapp.DishCostingResponse
	if err := json.Unmarshal(data, &costing); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached dish cost: %w", err)
	}
	return &costing, true, nil
}

// Set stores costing under its dish ID
func (c *RedisDishCostCache) Set(ctx context.Context, costing *menuapp.DishCostingResponse) error {
	data, err := json.Marshal(costing)
	if err != nil {
		return fmt.Errorf("failed to encode dish cost: %w", err)
	}
	if err := c.client.Set(ctx, dishCostKeyPrefix+costing.DishID.String(), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write dish cost cache: %w", err)
	}
	return nil
}

// Invalidate drops the entries for dishIDs
func (c *RedisDishCostCache) Invalidate(ctx context.Context, dishIDs ...uuid.UUID) error {
	if len(dishIDs) == 0 {
		return nil
	}
	keys := make([]string, len(dishIDs))
	for i, id := range dishIDs {
		keys[i] = dishCostKeyPrefix + id.String()
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate dish costs: %w", err)
	}
	return nil
}

type costEntry struct {
	costing   menuapp.DishCostingResponse
	expiresAt time.Time // zero means no expiry
}

// InMemoryDishCostCache is the single-instance DishCostCache
type InMemoryDishCostCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]costEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryDishCostCache creates an in-memory cache; ttl <= 0 keeps entries until invalidated
func NewInMemoryDishCostCache(ttl time.Duration) *InMemoryDishCostCache {
	return &InMemoryDishCostCache{
		entries: make(map[uuid.UUID]costEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a copy of the cached breakdown
func (c *InMemoryDishCostCache) Get(ctx context.Context, dishID uuid.UUID) (*menuapp.DishCostingResponse, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[dishID]
	if !ok || (!e.expiresAt.IsZero() && !c.now().Before(e.expiresAt)) {
		return nil, false, nil
	}
	costing := e.costing
	costing.Lines = append([]menuapp.LineCostResponse(nil), e.costing.Lines...)
	return &costing, true, nil
}

// Set stores a copy of costing
func (c *InMemoryDishCostCache) Set(ctx context.Context, costing *menuapp.DishCostingResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := costEntry{costing: *costing}
	e.costing.Lines = append([]menuapp.LineCostResponse(nil), costing.Lines...)
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.entries[costing.DishID] = e
	return nil
}

// Invalidate drops the entries for dishIDs
func (c *InMemoryDishCostCache) Invalidate(ctx context.Context, dishIDs ...uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range dishIDs {
		delete(c.entries, id)
	}
	return nil
}

var (
	_ menuapp.DishCostCache = (*RedisDishCostCache)(nil)
	_ menuapp.DishCostCache = (*InMemoryDishCostCache)(nil)
)
