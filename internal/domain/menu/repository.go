package menu

import (
	"context"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
)

// DishRepository defines the interface for dish persistence.
// Ingredient lines are loaded and saved with their dish.
type DishRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Dish, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Dish, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Dish, error)
	FindActive(ctx context.Context) ([]Dish, error)
	// FindByItem finds dishes with at least one line using the inventory item
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]Dish, error)
	Save(ctx context.Context, dish *Dish) error
	// SaveCostCache persists only the cached cost per plate
	SaveCostCache(ctx context.Context, dishID uuid.UUID, cache CostCache) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
