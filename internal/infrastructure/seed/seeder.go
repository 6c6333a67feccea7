package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	appinv "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/inventory"
	appmenu "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// ItemService is the part of the stock service the seeder needs
type ItemService interface {
	CreateItem(ctx context.Context, req appinv.CreateItemRequest) (*appinv.InventoryItemResponse, error)
	ListItems(ctx context.Context, filter appinv.InventoryListFilter) ([]appinv.InventoryItemResponse, int64, error)
}

// DishService is the part of the costing service the seeder needs
type DishService interface {
	CreateDish(ctx context.Context, req appmenu.CreateDishRequest) (*appmenu.DishResponse, error)
}

// Result counts what a seed run did
type Result struct {
	ItemsCreated  int
	ItemsExisting int
	DishesCreated int
	DishesSkipped int
}

// Seeder writes a catalog through the application services, so seeded data
// passes the same validation and ledgering as API writes. Re-running a seed
// is safe: existing items are reused and existing dishes are skipped.
type Seeder struct {
	items  ItemService
	dishes DishService
	logger *zap.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(items ItemService, dishes DishService, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{items: items, dishes: dishes, logger: logger}
}

// Run seeds every item, then every dish
func (s *Seeder) Run(ctx context.Context, c *Catalog) (Result, error) {
	var res Result
	ids := make(map[string]uuid.UUID, len(c.Items))

	for _, spec := range c.Items {
		id, created, err := s.seedItem(ctx, spec)
		if err != nil {
			return res, fmt.Errorf("item %q: %w", spec.Name, err)
		}
		if created {
			res.ItemsCreated++
		} else {
			res.ItemsExisting++
		}
		ids[strings.ToLower(strings.TrimSpace(spec.Name))] = id
	}

	for _, spec := range c.Dishes {
		req, err := dishRequest(spec, ids)
		if err != nil {
			return res, fmt.Errorf("dish %q: %w", spec.Name, err)
		}
		dish, err := s.dishes.CreateDish(ctx, req)
		if errors.Is(err, shared.ErrAlreadyExists) {
			s.logger.Info("dish already seeded", zap.String("name", spec.Name))
			res.DishesSkipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("dish %q: %w", spec.Name, err)
		}
		s.logger.Info("dish seeded",
			zap.String("dish_id", dish.ID.String()),
			zap.String("name", dish.Name),
			zap.String("cost_per_plate", dish.EstimatedCostPerPlate.String()),
		)
		res.DishesCreated++
	}
	return res, nil
}

func (s *Seeder) seedItem(ctx context.Context, spec ItemSpec) (uuid.UUID, bool, error) {
	req := appinv.CreateItemRequest{
		Name:         strings.TrimSpace(spec.Name),
		Category:     spec.Category,
		Unit:         spec.Unit,
		TrackingMode: spec.TrackingMode,
	}
	// Validate already rejected malformed amounts.
	req.UnitPrice, _ = optionalDecimal(spec.UnitPrice)
	req.MinThreshold, _ = optionalDecimal(spec.MinThreshold)
	if opening, _ := optionalDecimal(spec.OpeningQuantity); opening.IsPositive() {
		req.OpeningQuantity = &opening
	}

	item, err := s.items.CreateItem(ctx, req)
	if err == nil {
		s.logger.Info("item seeded", zap.String("inventory_item_id", item.ID.String()), zap.String("name", item.Name))
		return item.ID, true, nil
	}
	if !errors.Is(err, shared.ErrAlreadyExists) {
		return uuid.Nil, false, err
	}

	existing, _, err := s.items.ListItems(ctx, appinv.InventoryListFilter{Search: req.Name, IncludeInactive: true, PageSize: 100})
	if err != nil {
		return uuid.Nil, false, err
	}
	for _, e := range existing {
		if strings.EqualFold(e.Name, req.Name) {
			return e.ID, false, nil
		}
	}
	return uuid.Nil, false, fmt.Errorf("item reported as existing but not found by name")
}

func dishRequest(spec DishSpec, ids map[string]uuid.UUID) (appmenu.CreateDishRequest, error) {
	price, _ := optionalDecimal(spec.SellingPricePerPlate)
	req := appmenu.CreateDishRequest{
		Name:                 strings.TrimSpace(spec.Name),
		Category:             spec.Category,
		Description:          spec.Description,
		ServingsPerBatch:     spec.ServingsPerBatch,
		SellingPricePerPlate: price,
		Lines:                make([]appmenu.LineInput, 0, len(spec.Lines)),
	}
	for _, l := range spec.Lines {
		id, ok := ids[strings.ToLower(strings.TrimSpace(l.Item))]
		if !ok {
			return req, fmt.Errorf("unknown item %q", l.Item)
		}
		qty, _ := optionalDecimal(l.Quantity)
		req.Lines = append(req.Lines, appmenu.LineInput{
			InventoryItemID: id,
			Quantity:        qty,
			Unit:            l.Unit,
			Note:            l.Note,
		})
	}
	return req, nil
}
