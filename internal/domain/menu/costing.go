package menu

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ItemPrice is what costing needs to know about an inventory item
type ItemPrice struct {
	ItemID    uuid.UUID
	Name      string
	Unit      valueobject.Unit
	UnitPrice decimal.Decimal
}

// PriceLookup resolves an item's canonical unit and price
type PriceLookup interface {
	LookupPrice(itemID uuid.UUID) (ItemPrice, bool)
}

// PriceCatalog is an in-memory PriceLookup built from an inventory snapshot
type PriceCatalog map[uuid.UUID]ItemPrice

// LookupPrice implements PriceLookup
func (c PriceCatalog) LookupPrice(itemID uuid.UUID) (ItemPrice, bool) {
	p, ok := c[itemID]
	return p, ok
}

// LineCost is the cost contribution of one ingredient line
type LineCost struct {
	LineID    uuid.UUID
	ItemID    uuid.UUID
	ItemName  string
	Quantity  decimal.Decimal // in the item's canonical unit
	Unit      valueobject.Unit
	UnitPrice decimal.Decimal
	Cost      decimal.Decimal
}

// DishCosting is the full cost breakdown of a dish
type DishCosting struct {
	DishID             uuid.UUID
	DishName           string
	Lines              []LineCost
	BatchCost          decimal.Decimal
	OverheadMultiplier decimal.Decimal
	ServingsPerBatch   int
	CostPerServing     decimal.Decimal
	SellingPrice       decimal.Decimal
	MarginPercent      decimal.Decimal
}

// CostCalculator computes dish unit economics.
// The overhead multiplier is the single place wastage and fuel allowances are applied.
type CostCalculator struct {
	table    *valueobject.ConversionTable
	overhead decimal.Decimal
}

// NewCostCalculator creates a calculator. A zero multiplier means no overhead (1.0).
func NewCostCalculator(table *valueobject.ConversionTable, overheadMultiplier decimal.Decimal) (*CostCalculator, error) {
	if table == nil {
		table = valueobject.DefaultConversionTable()
	}
	if overheadMultiplier.IsZero() {
		overheadMultiplier = decimal.NewFromInt(1)
	}
	if overheadMultiplier.IsNegative() {
		return nil, shared.NewDomainError("INVALID_OVERHEAD", "Overhead multiplier must be positive")
	}
	return &CostCalculator{table: table, overhead: overheadMultiplier}, nil
}

// OverheadMultiplier returns the configured multiplier
func (c *CostCalculator) OverheadMultiplier() decimal.Decimal {
	return c.overhead
}

// LineCosts prices every ingredient line of the dish.
// An unknown item or an unconvertible unit fails the whole dish.
func (c *CostCalculator) LineCosts(dish *Dish, prices PriceLookup) ([]LineCost, error) {
	lines := make([]LineCost, 0, len(dish.Lines))
	for _, line := range dish.Lines {
		price, ok := prices.LookupPrice(line.InventoryItemID)
		if !ok {
			return nil, shared.NewDomainError(shared.CodeUnknownInventoryItem,
				fmt.Sprintf("dish %q references unknown inventory item %s", dish.Name, line.InventoryItemID))
		}
		qty, err := c.table.Convert(line.Quantity, line.Unit, price.Unit)
		if err != nil {
			return nil, shared.NewDomainError(shared.CodeIncompatibleUnits,
				fmt.Sprintf("dish %q, ingredient %q: %s", dish.Name, price.Name, err.Error()))
		}
		lines = append(lines, LineCost{
			LineID:    line.ID,
			ItemID:    line.InventoryItemID,
			ItemName:  price.Name,
			Quantity:  qty,
			Unit:      price.Unit,
			UnitPrice: price.UnitPrice,
			Cost:      qty.Mul(price.UnitPrice),
		})
	}
	return lines, nil
}

// BatchCost is the sum of line costs, before overhead
func (c *CostCalculator) BatchCost(dish *Dish, prices PriceLookup) (decimal.Decimal, error) {
	lines, err := c.LineCosts(dish, prices)
	if err != nil {
		return decimal.Zero, err
	}
	return sumLines(lines), nil
}

// CostPerServing is batch cost times overhead divided by servings per batch
func (c *CostCalculator) CostPerServing(dish *Dish, prices PriceLookup) (decimal.Decimal, error) {
	batch, err := c.BatchCost(dish, prices)
	if err != nil {
		return decimal.Zero, err
	}
	return c.perServing(batch, dish.ServingsPerBatch), nil
}

// Cost returns the full breakdown including margin against the selling price
func (c *CostCalculator) Cost(dish *Dish, prices PriceLookup) (DishCosting, error) {
	lines, err := c.LineCosts(dish, prices)
	if err != nil {
		return DishCosting{}, err
	}
	batch := sumLines(lines)
	cps := c.perServing(batch, dish.ServingsPerBatch)
	return DishCosting{
		DishID:             dish.ID,
		DishName:           dish.Name,
		Lines:              lines,
		BatchCost:          batch,
		OverheadMultiplier: c.overhead,
		ServingsPerBatch:   dish.ServingsPerBatch,
		CostPerServing:     cps,
		SellingPrice:       dish.SellingPricePerPlate,
		MarginPercent:      Margin(dish.SellingPricePerPlate, cps),
	}, nil
}

func (c *CostCalculator) perServing(batch decimal.Decimal, servings int) decimal.Decimal {
	if servings < 1 {
		servings = 1
	}
	return batch.Mul(c.overhead).Div(decimal.NewFromInt(int64(servings)))
}

func sumLines(lines []LineCost) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Cost)
	}
	return total
}

// Margin returns (sell - cost) / sell as a percentage, 0 when sell is 0
func Margin(sellingPrice, costPerServing decimal.Decimal) decimal.Decimal {
	if sellingPrice.IsZero() {
		return decimal.Zero
	}
	return sellingPrice.Sub(costPerServing).Div(sellingPrice).Mul(hundred)
}

// SuggestedPrice is the selling price that yields targetMarginPercent on costPerServing
func SuggestedPrice(costPerServing, targetMarginPercent decimal.Decimal) (decimal.Decimal, error) {
	if targetMarginPercent.IsNegative() || targetMarginPercent.GreaterThanOrEqual(hundred) {
		return decimal.Zero, shared.NewDomainError("INVALID_MARGIN", "Target margin must be at least 0 and below 100")
	}
	keep := hundred.Sub(targetMarginPercent).Div(hundred)
	return costPerServing.Div(keep), nil
}
