package planning

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/planning"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// stubDishRepository serves a fixed set of dishes for FindByIDs
type stubDishRepository struct {
	menu.DishRepository
	dishes map[uuid.UUID]menu.Dish
}

func newStubDishRepository(dishes ...*menu.Dish) *stubDishRepository {
	r := &stubDishRepository{dishes: make(map[uuid.UUID]menu.Dish)}
	for _, d := range dishes {
		r.dishes[d.ID] = *d
	}
	return r
}

func (r *stubDishRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]menu.Dish, error) {
	out := make([]menu.Dish, 0, len(ids))
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if d, ok := r.dishes[id]; ok && !seen[id] {
			out = append(out, d)
			seen[id] = true
		}
	}
	return out, nil
}

// stubItemRepository serves a fixed set of items for FindByIDs
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

type MockPlanRecordRepository struct {
	mock.Mock
}

func (m *MockPlanRecordRepository) Create(ctx context.Context, record *planning.PlanRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockPlanRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*planning.PlanRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planning.PlanRecord), args.Error(1)
}

func (m *MockPlanRecordRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]planning.PlanRecord, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]planning.PlanRecord), args.Error(1)
}

func (m *MockPlanRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]planning.PlanRecord, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]planning.PlanRecord), args.Error(1)
}

// memoryArchive keeps uploaded objects in a map
type memoryArchive struct {
	objects     map[string][]byte
	contentType map[string]string
	uploadErr   error
}

func newMemoryArchive() *memoryArchive {
	return &memoryArchive{objects: make(map[string][]byte), contentType: make(map[string]string)}
}

func (a *memoryArchive) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if a.uploadErr != nil {
		return a.uploadErr
	}
	a.objects[key] = data
	a.contentType[key] = contentType
	return nil
}

func (a *memoryArchive) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if _, ok := a.objects[key]; !ok {
		return "", time.Time{}, errors.New("no such key")
	}
	return "https://archive.test/" + key, time.Date(2026, 10, 18, 13, 0, 0, 0, time.UTC).Add(expiresIn), nil
}
