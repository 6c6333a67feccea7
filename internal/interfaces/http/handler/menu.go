package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	menuapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/menu"
	"github.com/shopspring/decimal"
)

// CostingService is the dish and costing application service used by MenuHandler
type CostingService interface {
	CreateDish(ctx context.Context, req menuapp.CreateDishRequest) (*menuapp.DishResponse, error)
	UpdateDish(ctx context.Context, dishID uuid.UUID, req menuapp.UpdateDishRequest) (*menuapp.DishResponse, error)
	GetDish(ctx context.Context, dishID uuid.UUID) (*menuapp.DishResponse, error)
	ListDishes(ctx context.Context, filter menuapp.DishListFilter) ([]menuapp.DishResponse, int64, error)
	CostDish(ctx context.Context, dishID uuid.UUID) (*menuapp.DishCostingResponse, error)
	CostMenu(ctx context.Context) (*menuapp.MenuCostingResponse, error)
	SuggestPrice(ctx context.Context, dishID uuid.UUID, targetMargin decimal.Decimal) (*menuapp.SuggestedPriceResponse, error)
}

// MenuHandler handles dish and costing endpoints
type MenuHandler struct {
	BaseHandler
	costing       CostingService
	defaultMargin decimal.Decimal
}

// NewMenuHandler creates a new MenuHandler. defaultMargin is the target margin
// percent used by the suggested price endpoint when the caller gives none.
func NewMenuHandler(costing CostingService, defaultMargin decimal.Decimal) *MenuHandler {
	return &MenuHandler{costing: costing, defaultMargin: defaultMargin}
}

// ListDishes godoc
// @Summary      List dishes
// @Tags         menu
// @Produce      json
// @Param        search      query string false "Name search"
// @Param        category    query string false "Category"
// @Param        active_only query bool   false "Only active dishes"
// @Router       /menu/dishes [get]
func (h *MenuHandler) ListDishes(c *gin.Context) {
	var filter menuapp.DishListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	dishes, total, err := h.costing.ListDishes(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, dishes, total, page, pageSize)
}

// CreateDish godoc
// @Summary      Create a dish with per-plate ingredient lines
// @Tags         menu
// @Accept       json
// @Produce      json
// @Router       /menu/dishes [post]
func (h *MenuHandler) CreateDish(c *gin.Context) {
	var req menuapp.CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	dish, err := h.costing.CreateDish(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dish)
}

// GetDish godoc
// @Summary      Get a dish
// @Tags         menu
// @Produce      json
// @Param        id path string true "Dish ID"
// @Router       /menu/dishes/{id} [get]
func (h *MenuHandler) GetDish(c *gin.Context) {
	dishID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	dish, err := h.costing.GetDish(c.Request.Context(), dishID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dish)
}

// UpdateDish godoc
// @Summary      Update a dish
// @Description  A lines array replaces every ingredient line of the dish.
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        id path string true "Dish ID"
// @Router       /menu/dishes/{id} [patch]
func (h *MenuHandler) UpdateDish(c *gin.Context) {
	dishID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req menuapp.UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	dish, err := h.costing.UpdateDish(c.Request.Context(), dishID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dish)
}

// CostDish godoc
// @Summary      Cost one plate of a dish at current unit prices
// @Tags         menu
// @Produce      json
// @Param        id path string true "Dish ID"
// @Router       /menu/dishes/{id}/cost [get]
func (h *MenuHandler) CostDish(c *gin.Context) {
	dishID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	costing, err := h.costing.CostDish(c.Request.Context(), dishID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, costing)
}

// SuggestPrice godoc
// @Summary      Suggest a selling price for a target margin
// @Tags         menu
// @Produce      json
// @Param        id            path  string true  "Dish ID"
// @Param        target_margin query number false "Margin percent, 0 <= m < 100"
// @Router       /menu/dishes/{id}/suggested-price [get]
func (h *MenuHandler) SuggestPrice(c *gin.Context) {
	dishID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	margin, ok := h.parseDecimalQuery(c, "target_margin", h.defaultMargin)
	if !ok {
		return
	}

	suggestion, err := h.costing.SuggestPrice(c.Request.Context(), dishID, margin)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suggestion)
}

// CostMenu godoc
// @Summary      Cost every active dish
// @Description  Dishes that cannot be costed are listed under failures.
// @Tags         menu
// @Produce      json
// @Router       /menu/costing [get]
func (h *MenuHandler) CostMenu(c *gin.Context) {
	result, err := h.costing.CostMenu(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
