package menu

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// IngredientLine is one ingredient of a dish, quantified per plate.
// The unit may differ from the item's canonical unit as long as it converts.
type IngredientLine struct {
	ID              uuid.UUID
	InventoryItemID uuid.UUID
	Quantity        decimal.Decimal
	Unit            valueobject.Unit
	Note            string
}

// NewIngredientLine validates and creates an ingredient line
func NewIngredientLine(itemID uuid.UUID, quantity decimal.Decimal, unit valueobject.Unit, note string) (IngredientLine, error) {
	if itemID == uuid.Nil {
		return IngredientLine{}, shared.NewDomainError(shared.CodeUnknownInventoryItem, "Ingredient line must reference an inventory item")
	}
	if !quantity.IsPositive() {
		return IngredientLine{}, shared.NewDomainError(shared.CodeInvalidQuantity,
			fmt.Sprintf("Ingredient quantity must be greater than zero, got %s", quantity))
	}
	if !unit.IsValid() {
		return IngredientLine{}, shared.NewDomainError("INVALID_UNIT", fmt.Sprintf("Unknown unit %q", unit))
	}
	return IngredientLine{
		ID:              uuid.New(),
		InventoryItemID: itemID,
		Quantity:        quantity,
		Unit:            unit,
		Note:            strings.TrimSpace(note),
	}, nil
}

// CostCache is the stored estimate of cost per plate.
// It is never authoritative: CostCalculator output is.
type CostCache struct {
	CostPerPlate decimal.Decimal
	ComputedAt   time.Time
	Valid        bool
}

// Dish is a menu item made from ingredient lines.
// The dish exclusively owns its lines.
type Dish struct {
	shared.BaseAggregateRoot
	Name                  string
	Category              string
	Description           string
	Lines                 []IngredientLine
	ServingsPerBatch      int
	SellingPricePerPlate  decimal.Decimal
	EstimatedCostPerPlate CostCache
	IsActive              bool
}

// NewDish creates an active dish with no ingredient lines
func NewDish(name, category string, servingsPerBatch int, sellingPrice decimal.Decimal) (*Dish, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Dish name cannot be empty")
	}
	if servingsPerBatch < 1 {
		return nil, shared.NewDomainError("INVALID_SERVINGS", "Servings per batch must be at least 1")
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	return &Dish{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		Name:                 name,
		Category:             strings.ToLower(strings.TrimSpace(category)),
		Lines:                make([]IngredientLine, 0),
		ServingsPerBatch:     servingsPerBatch,
		SellingPricePerPlate: sellingPrice,
		IsActive:             true,
	}, nil
}

// AddLine appends an ingredient line
func (d *Dish) AddLine(itemID uuid.UUID, quantity decimal.Decimal, unit valueobject.Unit, note string) (IngredientLine, error) {
	line, err := NewIngredientLine(itemID, quantity, unit, note)
	if err != nil {
		return IngredientLine{}, err
	}
	d.Lines = append(d.Lines, line)
	d.changed()
	return line, nil
}

// RemoveLine removes an ingredient line by ID
func (d *Dish) RemoveLine(lineID uuid.UUID) error {
	for idx, line := range d.Lines {
		if line.ID == lineID {
			d.Lines = append(d.Lines[:idx], d.Lines[idx+1:]...)
			d.changed()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Ingredient line not found")
}

// ReplaceLines swaps the whole ingredient list after validating every line
func (d *Dish) ReplaceLines(lines []IngredientLine) error {
	for _, line := range lines {
		if _, err := NewIngredientLine(line.InventoryItemID, line.Quantity, line.Unit, line.Note); err != nil {
			return err
		}
	}
	d.Lines = append(make([]IngredientLine, 0, len(lines)), lines...)
	for idx := range d.Lines {
		if d.Lines[idx].ID == uuid.Nil {
			d.Lines[idx].ID = uuid.New()
		}
	}
	d.changed()
	return nil
}

// SetSellingPrice updates the selling price per plate
func (d *Dish) SetSellingPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	d.SellingPricePerPlate = price
	d.Touch()
	d.IncrementVersion()
	return nil
}

// SetServingsPerBatch updates the batch yield
func (d *Dish) SetServingsPerBatch(servings int) error {
	if servings < 1 {
		return shared.NewDomainError("INVALID_SERVINGS", "Servings per batch must be at least 1")
	}
	d.ServingsPerBatch = servings
	d.changed()
	return nil
}

// ReferencesItem returns true if any line uses the inventory item
func (d *Dish) ReferencesItem(itemID uuid.UUID) bool {
	for _, line := range d.Lines {
		if line.InventoryItemID == itemID {
			return true
		}
	}
	return false
}

// ItemIDs returns the distinct inventory items the dish uses
func (d *Dish) ItemIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(d.Lines))
	ids := make([]uuid.UUID, 0, len(d.Lines))
	for _, line := range d.Lines {
		if _, ok := seen[line.InventoryItemID]; ok {
			continue
		}
		seen[line.InventoryItemID] = struct{}{}
		ids = append(ids, line.InventoryItemID)
	}
	return ids
}

// InvalidateCostCache marks the cached cost per plate as stale
func (d *Dish) InvalidateCostCache() {
	d.EstimatedCostPerPlate.Valid = false
}

// RefreshCostCache recomputes the cached cost per plate from current prices.
// On error the cache is invalidated and the error returned.
func (d *Dish) RefreshCostCache(calc *CostCalculator, prices PriceLookup) (DishCosting, error) {
	costing, err := calc.Cost(d, prices)
	if err != nil {
		d.InvalidateCostCache()
		return DishCosting{}, err
	}
	d.EstimatedCostPerPlate = CostCache{
		CostPerPlate: costing.CostPerServing,
		ComputedAt:   time.Now(),
		Valid:        true,
	}
	d.Touch()
	return costing, nil
}

// Deactivate removes the dish from menus without deleting it
func (d *Dish) Deactivate() {
	d.IsActive = false
	d.Touch()
	d.IncrementVersion()
}

// Activate puts a deactivated dish back on the menu
func (d *Dish) Activate() {
	if d.IsActive {
		return
	}
	d.IsActive = true
	d.Touch()
	d.IncrementVersion()
}

func (d *Dish) changed() {
	d.InvalidateCostCache()
	d.Touch()
	d.IncrementVersion()
}
