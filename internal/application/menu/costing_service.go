package menu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DishCostCache keeps computed cost breakdowns between price changes.
// Entries must be invalidated whenever a referenced item's price or the dish changes.
type DishCostCache interface {
	Get(ctx context.Context, dishID uuid.UUID) (*DishCostingResponse, bool, error)
	Set(ctx context.Context, costing *DishCostingResponse) error
	Invalidate(ctx context.Context, dishIDs ...uuid.UUID) error
}

// CostingService manages dishes and computes their unit economics
type CostingService struct {
	dishRepo   menu.DishRepository
	itemRepo   inventory.InventoryItemRepository
	calculator *menu.CostCalculator

	cache   DishCostCache
	metrics *telemetry.EngineMetrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewCostingService creates a new CostingService
func NewCostingService(
	dishRepo menu.DishRepository,
	itemRepo inventory.InventoryItemRepository,
	calculator *menu.CostCalculator,
) *CostingService {
	return &CostingService{
		dishRepo:   dishRepo,
		itemRepo:   itemRepo,
		calculator: calculator,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
}

// SetCostCache sets the cost breakdown cache. Nil disables caching.
func (s *CostingService) SetCostCache(cache DishCostCache) {
	s.cache = cache
}

// SetEngineMetrics sets the metrics collector
func (s *CostingService) SetEngineMetrics(m *telemetry.EngineMetrics) {
	s.metrics = m
}

// SetLogger sets the logger
func (s *CostingService) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// CreateDish creates a dish. Every line must reference a known item in a unit
// that converts to the item's canonical unit; the cost cache is filled on write.
func (s *CostingService) CreateDish(ctx context.Context, req CreateDishRequest) (*DishResponse, error) {
	servings := req.ServingsPerBatch
	if servings == 0 {
		servings = 1
	}
	dish, err := menu.NewDish(req.Name, req.Category, servings, req.SellingPricePerPlate)
	if err != nil {
		return nil, err
	}
	dish.Description = req.Description

	lines, err := toIngredientLines(req.Lines)
	if err != nil {
		return nil, err
	}
	if err := dish.ReplaceLines(lines); err != nil {
		return nil, err
	}

	if _, err := s.refresh(ctx, dish); err != nil {
		return nil, err
	}
	if err := s.dishRepo.Save(ctx, dish); err != nil {
		return nil, err
	}

	s.logger.Info("dish created",
		zap.String("dish_id", dish.ID.String()),
		zap.String("name", dish.Name),
		zap.Int("lines", len(dish.Lines)),
		zap.String("cost_per_plate", dish.EstimatedCostPerPlate.CostPerPlate.String()),
	)

	response := ToDishResponse(dish)
	return &response, nil
}

// UpdateDish changes price, yield, lines or active flag, then recomputes the cost cache
func (s *CostingService) UpdateDish(ctx context.Context, dishID uuid.UUID, req UpdateDishRequest) (*DishResponse, error) {
	dish, err := s.dishRepo.FindByID(ctx, dishID)
	if err != nil {
		return nil, err
	}

	if req.ServingsPerBatch != nil {
		if err := dish.SetServingsPerBatch(*req.ServingsPerBatch); err != nil {
			return nil, err
		}
	}
	if req.SellingPricePerPlate != nil {
		if err := dish.SetSellingPrice(*req.SellingPricePerPlate); err != nil {
			return nil, err
		}
	}
	if req.Lines != nil {
		lines, err := toIngredientLines(*req.Lines)
		if err != nil {
			return nil, err
		}
		if err := dish.ReplaceLines(lines); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			dish.Activate()
		} else {
			dish.Deactivate()
		}
	}

	if _, err := s.refresh(ctx, dish); err != nil {
		return nil, err
	}
	if err := s.dishRepo.Save(ctx, dish); err != nil {
		return nil, err
	}
	s.invalidate(ctx, dish.ID)

	response := ToDishResponse(dish)
	return &response, nil
}

// GetDish retrieves a dish by ID
func (s *CostingService) GetDish(ctx context.Context, dishID uuid.UUID) (*DishResponse, error) {
	dish, err := s.dishRepo.FindByID(ctx, dishID)
	if err != nil {
		return nil, err
	}
	response := ToDishResponse(dish)
	return &response, nil
}

// ListDishes retrieves dishes with filtering and pagination
func (s *CostingService) ListDishes(ctx context.Context, filter DishListFilter) ([]DishResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.ActiveOnly {
		domainFilter.Filters["active"] = true
	}

	dishes, err := s.dishRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.dishRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToDishResponses(dishes), total, nil
}

// CostDish returns the authoritative cost breakdown of a dish from current prices
func (s *CostingService) CostDish(ctx context.Context, dishID uuid.UUID) (*DishCostingResponse, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, dishID)
		if err != nil {
			s.logger.Warn("dish cost cache read failed", zap.String("dish_id", dishID.String()), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	dish, err := s.dishRepo.FindByID(ctx, dishID)
	if err != nil {
		return nil, err
	}
	prices, err := s.loadPrices(ctx, dish.ItemIDs())
	if err != nil {
		return nil, err
	}
	costing, err := s.calculator.Cost(dish, prices)
	if err != nil {
		return nil, err
	}

	response := ToDishCostingResponse(costing, s.now())
	if s.metrics != nil {
		s.metrics.RecordDishesCosted(ctx, 1)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, &response); err != nil {
			s.logger.Warn("dish cost cache write failed", zap.String("dish_id", dishID.String()), zap.Error(err))
		}
	}
	return &response, nil
}

// CostMenu costs every active dish against one price snapshot
func (s *CostingService) CostMenu(ctx context.Context) (*MenuCostingResponse, error) {
	dishes, err := s.dishRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	var itemIDs []uuid.UUID
	for i := range dishes {
		itemIDs = append(itemIDs, dishes[i].ItemIDs()...)
	}
	prices, err := s.loadPrices(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	response := &MenuCostingResponse{
		Dishes:   make([]DishCostingResponse, 0, len(dishes)),
		Failures: []DishCostFailure{},
	}
	for i := range dishes {
		costing, err := s.calculator.Cost(&dishes[i], prices)
		if err != nil {
			response.Failures = append(response.Failures, costFailure(&dishes[i], err))
			continue
		}
		response.Dishes = append(response.Dishes, ToDishCostingResponse(costing, now))
	}

	if s.metrics != nil {
		s.metrics.RecordDishesCosted(ctx, len(response.Dishes))
	}
	if len(response.Failures) > 0 {
		s.logger.Warn("some dishes could not be costed", zap.Int("failures", len(response.Failures)))
	}
	return response, nil
}

// RefreshCostCaches recomputes the stored cost per plate of every dish using
// itemID, or of every active dish when itemID is uuid.Nil. Dishes that fail to
// cost keep an invalidated cache. Returns the number of dishes refreshed.
func (s *CostingService) RefreshCostCaches(ctx context.Context, itemID uuid.UUID) (int, error) {
	var (
		dishes []menu.Dish
		err    error
	)
	if itemID == uuid.Nil {
		dishes, err = s.dishRepo.FindActive(ctx)
	} else {
		dishes, err = s.dishRepo.FindByItem(ctx, itemID)
	}
	if err != nil {
		return 0, err
	}
	if len(dishes) == 0 {
		return 0, nil
	}

	var itemIDs []uuid.UUID
	for i := range dishes {
		itemIDs = append(itemIDs, dishes[i].ItemIDs()...)
	}
	prices, err := s.loadPrices(ctx, itemIDs)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	ids := make([]uuid.UUID, 0, len(dishes))
	for i := range dishes {
		dish := &dishes[i]
		ids = append(ids, dish.ID)
		if _, err := dish.RefreshCostCache(s.calculator, prices); err != nil {
			s.logger.Warn("dish cost cache invalidated",
				zap.String("dish_id", dish.ID.String()),
				zap.String("dish_name", dish.Name),
				zap.Error(err),
			)
		} else {
			refreshed++
		}
		if err := s.dishRepo.SaveCostCache(ctx, dish.ID, dish.EstimatedCostPerPlate); err != nil {
			return refreshed, fmt.Errorf("save cost cache for dish %s: %w", dish.ID, err)
		}
	}
	s.invalidate(ctx, ids...)

	s.logger.Info("dish cost caches refreshed",
		zap.String("inventory_item_id", itemID.String()),
		zap.Int("dishes", len(dishes)),
		zap.Int("refreshed", refreshed),
	)
	return refreshed, nil
}

// SuggestPrice returns the selling price that gives targetMargin percent on the current cost
func (s *CostingService) SuggestPrice(ctx context.Context, dishID uuid.UUID, targetMargin decimal.Decimal) (*SuggestedPriceResponse, error) {
	costing, err := s.CostDish(ctx, dishID)
	if err != nil {
		return nil, err
	}
	price, err := menu.SuggestedPrice(costing.CostPerServing, targetMargin)
	if err != nil {
		return nil, err
	}
	return &SuggestedPriceResponse{
		DishID:              dishID,
		CostPerServing:      costing.CostPerServing,
		TargetMarginPercent: targetMargin,
		SuggestedPrice:      price.Round(2),
		CurrentPrice:        costing.SellingPrice,
		CurrentMargin:       costing.MarginPercent,
	}, nil
}

func (s *CostingService) refresh(ctx context.Context, dish *menu.Dish) (menu.DishCosting, error) {
	prices, err := s.loadPrices(ctx, dish.ItemIDs())
	if err != nil {
		return menu.DishCosting{}, err
	}
	return dish.RefreshCostCache(s.calculator, prices)
}

func (s *CostingService) loadPrices(ctx context.Context, ids []uuid.UUID) (menu.PriceCatalog, error) {
	catalog := make(menu.PriceCatalog, len(ids))
	if len(ids) == 0 {
		return catalog, nil
	}
	items, err := s.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		catalog[item.ID] = menu.ItemPrice{
			ItemID:    item.ID,
			Name:      item.Name,
			Unit:      item.Unit,
			UnitPrice: item.UnitPrice,
		}
	}
	return catalog, nil
}

func (s *CostingService) invalidate(ctx context.Context, ids ...uuid.UUID) {
	if s.cache == nil || len(ids) == 0 {
		return
	}
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		s.logger.Warn("dish cost cache invalidation failed", zap.Int("dishes", len(ids)), zap.Error(err))
	}
}

func toIngredientLines(inputs []LineInput) ([]menu.IngredientLine, error) {
	lines := make([]menu.IngredientLine, 0, len(inputs))
	for _, in := range inputs {
		unit, err := valueobject.ParseUnit(in.Unit)
		if err != nil {
			return nil, err
		}
		line, err := menu.NewIngredientLine(in.InventoryItemID, in.Quantity, unit, in.Note)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func costFailure(dish *menu.Dish, err error) DishCostFailure {
	failure := DishCostFailure{DishID: dish.ID, DishName: dish.Name, Code: "COSTING_FAILED", Message: err.Error()}
	var de *shared.DomainError
	if errors.As(err, &de) {
		failure.Code = de.Code
	}
	return failure
}
