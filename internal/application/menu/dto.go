package menu

import (
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/menu"
	"github.com/shopspring/decimal"
)

// LineInput is one ingredient line in a dish request, quantified per plate
type LineInput struct {
	InventoryItemID uuid.UUID       `json:"inventory_item_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	Unit            string          `json:"unit" binding:"required"`
	Note            string          `json:"note" binding:"max=200"`
}

// CreateDishRequest creates a dish with its ingredient lines
type CreateDishRequest struct {
	Name                 string          `json:"name" binding:"required,min=1,max=200"`
	Category             string          `json:"category" binding:"max=50"`
	Description          string          `json:"description" binding:"max=1000"`
	ServingsPerBatch     int             `json:"servings_per_batch" binding:"omitempty,min=1"`
	SellingPricePerPlate decimal.Decimal `json:"selling_price_per_plate"`
	Lines                []LineInput     `json:"lines" binding:"dive"`
}

// UpdateDishRequest changes a dish. Nil fields are left unchanged; a non-nil
// Lines replaces the whole ingredient list.
type UpdateDishRequest struct {
	ServingsPerBatch     *int             `json:"servings_per_batch" binding:"omitempty,min=1"`
	SellingPricePerPlate *decimal.Decimal `json:"selling_price_per_plate"`
	Lines                *[]LineInput     `json:"lines" binding:"omitempty,dive"`
	IsActive             *bool            `json:"is_active"`
}

// DishListFilter represents filter options for dish list
type DishListFilter struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LineResponse represents an ingredient line in API responses
type LineResponse struct {
	ID              uuid.UUID       `json:"id"`
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	Note            string          `json:"note,omitempty"`
}

// DishResponse represents a dish in API responses.
// EstimatedCostPerPlate is a cache; use the cost endpoint for the authoritative value.
type DishResponse struct {
	ID                    uuid.UUID       `json:"id"`
	Name                  string          `json:"name"`
	Category              string          `json:"category"`
	Description           string          `json:"description,omitempty"`
	ServingsPerBatch      int             `json:"servings_per_batch"`
	SellingPricePerPlate  decimal.Decimal `json:"selling_price_per_plate"`
	EstimatedCostPerPlate decimal.Decimal `json:"estimated_cost_per_plate"`
	CostComputedAt        *time.Time      `json:"cost_computed_at,omitempty"`
	CostCacheValid        bool            `json:"cost_cache_valid"`
	Lines                 []LineResponse  `json:"lines"`
	IsActive              bool            `json:"is_active"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	Version               int             `json:"version"`
}

// LineCostResponse is the priced form of one ingredient line
type LineCostResponse struct {
	LineID    uuid.UUID       `json:"line_id"`
	ItemID    uuid.UUID       `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Cost      decimal.Decimal `json:"cost"`
}

// DishCostingResponse is the full cost breakdown of a dish
type DishCostingResponse struct {
	DishID             uuid.UUID          `json:"dish_id"`
	DishName           string             `json:"dish_name"`
	Lines              []LineCostResponse `json:"lines"`
	BatchCost          decimal.Decimal    `json:"batch_cost"`
	OverheadMultiplier decimal.Decimal    `json:"overhead_multiplier"`
	ServingsPerBatch   int                `json:"servings_per_batch"`
	CostPerServing     decimal.Decimal    `json:"cost_per_serving"`
	SellingPrice       decimal.Decimal    `json:"selling_price"`
	MarginPercent      decimal.Decimal    `json:"margin_percent"`
	ComputedAt         time.Time          `json:"computed_at"`
}

// DishCostFailure explains why a dish could not be costed
type DishCostFailure struct {
	DishID   uuid.UUID `json:"dish_id"`
	DishName string    `json:"dish_name"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
}

// MenuCostingResponse costs every active dish. Dishes that cannot be costed
// are listed in Failures rather than reported with a zero cost.
type MenuCostingResponse struct {
	Dishes   []DishCostingResponse `json:"dishes"`
	Failures []DishCostFailure     `json:"failures"`
}

// SuggestedPriceResponse is the selling price that achieves a target margin
type SuggestedPriceResponse struct {
	DishID              uuid.UUID       `json:"dish_id"`
	CostPerServing      decimal.Decimal `json:"cost_per_serving"`
	TargetMarginPercent decimal.Decimal `json:"target_margin_percent"`
	SuggestedPrice      decimal.Decimal `json:"suggested_price"`
	CurrentPrice        decimal.Decimal `json:"current_price"`
	CurrentMargin       decimal.Decimal `json:"current_margin_percent"`
}

// ToDishResponse converts a domain Dish to DishResponse
func ToDishResponse(d *menu.Dish) DishResponse {
	lines := make([]LineResponse, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = LineResponse{
			ID:              l.ID,
			InventoryItemID: l.InventoryItemID,
			Quantity:        l.Quantity,
			Unit:            l.Unit.String(),
			Note:            l.Note,
		}
	}
	resp := DishResponse{
		ID:                    d.ID,
		Name:                  d.Name,
		Category:              d.Category,
		Description:           d.Description,
		ServingsPerBatch:      d.ServingsPerBatch,
		SellingPricePerPlate:  d.SellingPricePerPlate,
		EstimatedCostPerPlate: d.EstimatedCostPerPlate.CostPerPlate,
		CostCacheValid:        d.EstimatedCostPerPlate.Valid,
		Lines:                 lines,
		IsActive:              d.IsActive,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
		Version:               d.Version,
	}
	if !d.EstimatedCostPerPlate.ComputedAt.IsZero() {
		at := d.EstimatedCostPerPlate.ComputedAt
		resp.CostComputedAt = &at
	}
	return resp
}

// ToDishResponses converts a slice of domain Dishes to responses
func ToDishResponses(dishes []menu.Dish) []DishResponse {
	responses := make([]DishResponse, len(dishes))
	for i := range dishes {
		responses[i] = ToDishResponse(&dishes[i])
	}
	return responses
}

// ToDishCostingResponse converts a calculator result for the API
func ToDishCostingResponse(c menu.DishCosting, computedAt time.Time) DishCostingResponse {
	lines := make([]LineCostResponse, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = LineCostResponse{
			LineID:    l.LineID,
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			Unit:      l.Unit.String(),
			UnitPrice: l.UnitPrice,
			Cost:      l.Cost,
		}
	}
	return DishCostingResponse{
		DishID:             c.DishID,
		DishName:           c.DishName,
		Lines:              lines,
		BatchCost:          c.BatchCost,
		OverheadMultiplier: c.OverheadMultiplier,
		ServingsPerBatch:   c.ServingsPerBatch,
		CostPerServing:     c.CostPerServing,
		SellingPrice:       c.SellingPrice,
		MarginPercent:      c.MarginPercent,
		ComputedAt:         computedAt,
	}
}
