package planning

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Selection is a dish and the number of plates to prepare
type Selection struct {
	Dish     *menu.Dish
	Servings int
}

// InventorySnapshot is the read-only view of inventory for one calculation
type InventorySnapshot struct {
	items map[uuid.UUID]inventory.InventoryItem
}

// NewInventorySnapshot indexes items by ID. Items are copied.
func NewInventorySnapshot(items []inventory.InventoryItem) InventorySnapshot {
	s := InventorySnapshot{items: make(map[uuid.UUID]inventory.InventoryItem, len(items))}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

// Item returns the snapshot copy of an item
func (s InventorySnapshot) Item(id uuid.UUID) (inventory.InventoryItem, bool) {
	item, ok := s.items[id]
	return item, ok
}

// Len returns the number of items in the snapshot
func (s InventorySnapshot) Len() int {
	return len(s.items)
}

// LookupPrice lets a snapshot serve as the costing calculator's price source
func (s InventorySnapshot) LookupPrice(id uuid.UUID) (menu.ItemPrice, bool) {
	item, ok := s.items[id]
	if !ok {
		return menu.ItemPrice{}, false
	}
	return menu.ItemPrice{ItemID: item.ID, Name: item.Name, Unit: item.Unit, UnitPrice: item.UnitPrice}, true
}

// DemandSource records which dish contributed to a demand entry
type DemandSource struct {
	DishID   uuid.UUID
	DishName string
	Servings int
	Quantity decimal.Decimal // in the item's canonical unit
}

// DemandEntry is the total requirement for one inventory item
type DemandEntry struct {
	ItemID       uuid.UUID
	ItemName     string
	Category     string
	Unit         valueobject.Unit
	TrackingMode inventory.TrackingMode
	UnitPrice    decimal.Decimal
	Required     decimal.Decimal
	Available    decimal.Decimal // zero for on-demand items
	Sources      []DemandSource
}

// Shortfall is max(0, required - available), with negative stock treated as none
func (e DemandEntry) Shortfall() decimal.Decimal {
	return decimal.Max(decimal.Zero, e.Required.Sub(decimal.Max(e.Available, decimal.Zero)))
}

// Demand is the result of an aggregation, one entry per item
type Demand struct {
	Entries []DemandEntry
}

// Entry finds the entry for an item
func (d Demand) Entry(itemID uuid.UUID) (DemandEntry, bool) {
	for _, e := range d.Entries {
		if e.ItemID == itemID {
			return e, true
		}
	}
	return DemandEntry{}, false
}

// Aggregator sums ingredient requirements across dish selections
type Aggregator struct {
	table *valueobject.ConversionTable
}

// NewAggregator creates an aggregator using the given conversion table
func NewAggregator(table *valueobject.ConversionTable) *Aggregator {
	if table == nil {
		table = valueobject.DefaultConversionTable()
	}
	return &Aggregator{table: table}
}

// Aggregate scales each dish's per-plate lines by its servings, converts every
// contribution to the item's canonical unit and sums per item. Any unknown
// item, unconvertible unit or non-positive servings fails the whole call.
func (a *Aggregator) Aggregate(selections []Selection, snapshot InventorySnapshot) (Demand, error) {
	entries := make(map[uuid.UUID]*DemandEntry)

	for _, sel := range selections {
		if sel.Dish == nil {
			return Demand{}, shared.NewDomainError("INVALID_INPUT", "Selection has no dish")
		}
		if sel.Servings <= 0 {
			return Demand{}, shared.NewDomainError(shared.CodeInvalidQuantity,
				fmt.Sprintf("servings for dish %q must be greater than zero, got %d", sel.Dish.Name, sel.Servings))
		}
		servings := decimal.NewFromInt(int64(sel.Servings))

		for _, line := range sel.Dish.Lines {
			item, ok := snapshot.Item(line.InventoryItemID)
			if !ok {
				return Demand{}, shared.NewDomainError(shared.CodeUnknownInventoryItem,
					fmt.Sprintf("dish %q references unknown inventory item %s", sel.Dish.Name, line.InventoryItemID))
			}
			perPlate, err := a.table.Convert(line.Quantity, line.Unit, item.Unit)
			if err != nil {
				return Demand{}, shared.NewDomainError(shared.CodeIncompatibleUnits,
					fmt.Sprintf("dish %q, ingredient %q: %s", sel.Dish.Name, item.Name, err.Error()))
			}
			qty := perPlate.Mul(servings)

			entry, ok := entries[item.ID]
			if !ok {
				entry = newEntry(item)
				entries[item.ID] = entry
			}
			entry.Required = entry.Required.Add(qty)
			entry.Sources = append(entry.Sources, DemandSource{
				DishID:   sel.Dish.ID,
				DishName: sel.Dish.Name,
				Servings: sel.Servings,
				Quantity: qty,
			})
		}
	}

	return collect(entries), nil
}

func newEntry(item inventory.InventoryItem) *DemandEntry {
	return &DemandEntry{
		ItemID:       item.ID,
		ItemName:     item.Name,
		Category:     item.Category,
		Unit:         item.Unit,
		TrackingMode: item.TrackingMode,
		UnitPrice:    item.UnitPrice,
		Required:     decimal.Zero,
		Available:    item.AvailableForPlanning(),
	}
}

func collect(entries map[uuid.UUID]*DemandEntry) Demand {
	out := make([]DemandEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].ItemName != out[j].ItemName {
			return out[i].ItemName < out[j].ItemName
		}
		return out[i].ItemID.String() < out[j].ItemID.String()
	})
	return Demand{Entries: out}
}
