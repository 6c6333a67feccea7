package menu

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockDishRepository struct {
	mock.Mock
}

func (m *MockDishRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.Dish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Dish), args.Error(1)
}

func (m *MockDishRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]menu.Dish, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]menu.Dish), args.Error(1)
}

func (m *MockDishRepository) FindAll(ctx context.Context, filter shared.Filter) ([]menu.Dish, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]menu.Dish), args.Error(1)
}

func (m *MockDishRepository) FindActive(ctx context.Context) ([]menu.Dish, error) {
	args := m.Called(ctx)
	return args.Get(0).([]menu.Dish), args.Error(1)
}

func (m *MockDishRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]menu.Dish, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]menu.Dish), args.Error(1)
}

func (m *MockDishRepository) Save(ctx context.Context, dish *menu.Dish) error {
	return m.Called(ctx, dish).Error(0)
}

func (m *MockDishRepository) SaveCostCache(ctx context.Context, dishID uuid.UUID, cache menu.CostCache) error {
	return m.Called(ctx, dishID, cache).Error(0)
}

func (m *MockDishRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// stubItemRepository serves a fixed set of items
type stubItemRepository struct {
	inventory.InventoryItemRepository
	items map[uuid.UUID]inventory.InventoryItem
}

func newStubItemRepository(items ...*inventory.InventoryItem) *stubItemRepository {
	r := &stubItemRepository{items: make(map[uuid.UUID]inventory.InventoryItem)}
	for _, item := range items {
		r.items[item.ID] = *item
	}
	return r
}

func (r *stubItemRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]inventory.InventoryItem, error) {
	out := make([]inventory.InventoryItem, 0, len(ids))
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if item, ok := r.items[id]; ok && !seen[id] {
			out = append(out, item)
			seen[id] = true
		}
	}
	return out, nil
}

// memoryCostCache is a map-backed DishCostCache
type memoryCostCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]DishCostingResponse
	sets    int
}

func newMemoryCostCache() *memoryCostCache {
	return &memoryCostCache{entries: make(map[uuid.UUID]DishCostingResponse)}
}

func (c *memoryCostCache) Get(_ context.Context, dishID uuid.UUID) (*DishCostingResponse, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[dishID]
	if !ok {
		return nil, false, nil
	}
	return &e, true, nil
}

func (c *memoryCostCache) Set(_ context.Context, costing *DishCostingResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[costing.DishID] = *costing
	c.sets++
	return nil
}

func (c *memoryCostCache) Invalidate(_ context.Context, dishIDs ...uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range dishIDs {
		delete(c.entries, id)
	}
	return nil
}
