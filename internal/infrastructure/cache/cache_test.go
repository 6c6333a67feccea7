package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	menuapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestInMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	store := NewInMemoryIdempotencyStore(time.Hour)
	store.now = clock.now
	defer store.Close()

	isNew, err := store.MarkProcessed(ctx, "stock:req-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = store.MarkProcessed(ctx, "stock:req-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, isNew)

	done, err := store.IsProcessed(ctx, "stock:req-1")
	require.NoError(t, err)
	assert.True(t, done)

	clock.advance(2 * time.Minute)
	done, _ = store.IsProcessed(ctx, "stock:req-1")
	assert.False(t, done)

	store.sweep()
	assert.Equal(t, 0, store.Size())

	isNew, _ = store.MarkProcessed(ctx, "stock:req-1", time.Minute)
	assert.True(t, isNew)
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore(0)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func sampleCosting() *menuapp.DishCostingResponse {
	return &menuapp.DishCostingResponse{
		DishID:           uuid.New(),
		DishName:         "Chicken Biryani",
		Lines:            []menuapp.LineCostResponse{{ItemName: "Basmati Rice"}},
		BatchCost:        decimal.RequireFromString("29.5"),
		ServingsPerBatch: 1,
		CostPerServing:   decimal.RequireFromString("35.4"),
	}
}

func TestInMemoryDishCostCache(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	cache := NewInMemoryDishCostCache(10 * time.Minute)
	cache.now = clock.now

	costing := sampleCosting()
	require.NoError(t, cache.Set(ctx, costing))

	got, ok, err := cache.Get(ctx, costing.DishID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.CostPerServing.Equal(costing.CostPerServing))

	got.Lines[0].ItemName = "mutated"
	again, _, _ := cache.Get(ctx, costing.DishID)
	assert.Equal(t, "Basmati Rice", again.Lines[0].ItemName)

	clock.advance(11 * time.Minute)
	_, ok, _ = cache.Get(ctx, costing.DishID)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, costing))
	require.NoError(t, cache.Invalidate(ctx, costing.DishID, uuid.New()))
	_, ok, _ = cache.Get(ctx, costing.DishID)
	assert.False(t, ok)
}

func TestInMemoryDishCostCache_NoTTL(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryDishCostCache(0)
	costing := sampleCosting()
	require.NoError(t, cache.Set(ctx, costing))

	_, ok, err := cache.Get(ctx, costing.DishID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisStores_PropagateConnectionErrors(t *testing.T) {
	ctx := context.Background()
	client := unreachableClient()
	defer client.Close()

	store := NewRedisIdempotencyStore(client, "")
	_, err := store.MarkProcessed(ctx, "stock:req-1", time.Minute)
	assert.Error(t, err)
	_, err = store.IsProcessed(ctx, "stock:req-1")
	assert.Error(t, err)
	assert.NoError(t, store.Close())

	costs := NewRedisDishCostCache(client, time.Minute)
	_, _, err = costs.Get(ctx, uuid.New())
	assert.Error(t, err)
	assert.Error(t, costs.Set(ctx, sampleCosting()))
	assert.Error(t, costs.Invalidate(ctx, uuid.New()))
	assert.NoError(t, costs.Invalidate(ctx))
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	t.Run("disabled uses memory", func(t *testing.T) {
		c, err := New(ctx, config.RedisConfig{}, time.Minute, false, nil)
		require.NoError(t, err)
		defer c.Close()
		assert.False(t, c.UsesRedis())
		assert.IsType(t, &InMemoryIdempotencyStore{}, c.Idempotency)
		assert.IsType(t, &InMemoryDishCostCache{}, c.DishCosts)
		assert.NoError(t, c.Ping(ctx))
	})

	t.Run("unreachable falls back", func(t *testing.T) {
		c, err := New(ctx, unreachable, time.Minute, false, nil)
		require.NoError(t, err)
		defer c.Close()
		assert.False(t, c.UsesRedis())
	})

	t.Run("unreachable and required fails", func(t *testing.T) {
		_, err := New(ctx, unreachable, time.Minute, true, nil)
		assert.Error(t, err)
	})
}
