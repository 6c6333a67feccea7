package planning

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
)

// DishServings references a dish by ID with its plate count
type DishServings struct {
	DishID   uuid.UUID
	Servings int
}

// DemandLoader resolves dish references through the repositories and
// aggregates them against a single inventory snapshot.
type DemandLoader struct {
	dishes     menu.DishRepository
	items      inventory.InventoryItemRepository
	aggregator *Aggregator
}

// NewDemandLoader creates a loader. A nil aggregator uses the default conversion table.
func NewDemandLoader(dishes menu.DishRepository, items inventory.InventoryItemRepository, aggregator *Aggregator) *DemandLoader {
	if aggregator == nil {
		aggregator = NewAggregator(nil)
	}
	return &DemandLoader{dishes: dishes, items: items, aggregator: aggregator}
}

// Load returns the demand of refs and their total plate count. Every dish must
// exist; the items of all dishes are read in one query.
func (l *DemandLoader) Load(ctx context.Context, refs []DishServings) (Demand, int, error) {
	if len(refs) == 0 {
		return Demand{}, 0, shared.NewDomainError("INVALID_INPUT", "At least one dish selection is required")
	}

	dishIDs := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		dishIDs = append(dishIDs, ref.DishID)
	}
	dishes, err := l.dishes.FindByIDs(ctx, dishIDs)
	if err != nil {
		return Demand{}, 0, err
	}
	byID := make(map[uuid.UUID]*menu.Dish, len(dishes))
	for i := range dishes {
		byID[dishes[i].ID] = &dishes[i]
	}

	selections := make([]Selection, 0, len(refs))
	var itemIDs []uuid.UUID
	servings := 0
	for _, ref := range refs {
		dish, ok := byID[ref.DishID]
		if !ok {
			return Demand{}, 0, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Dish %s not found", ref.DishID))
		}
		selections = append(selections, Selection{Dish: dish, Servings: ref.Servings})
		itemIDs = append(itemIDs, dish.ItemIDs()...)
		servings += ref.Servings
	}

	var items []inventory.InventoryItem
	if len(itemIDs) > 0 {
		if items, err = l.items.FindByIDs(ctx, itemIDs); err != nil {
			return Demand{}, 0, err
		}
	}

	demand, err := l.aggregator.Aggregate(selections, NewInventorySnapshot(items))
	if err != nil {
		return Demand{}, 0, err
	}
	return demand, servings, nil
}
