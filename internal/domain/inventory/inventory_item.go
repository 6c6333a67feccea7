package inventory

import (
	"fmt"
	"strings"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TrackingMode says whether on-hand quantity is meaningful for planning.
type TrackingMode string

const (
	// TrackingStocked items are kept in the store and can be drawn from
	TrackingStocked TrackingMode = "stocked"
	// TrackingOnDemand items are always bought fresh; planning treats them as zero on hand
	TrackingOnDemand TrackingMode = "on_demand"
)

// IsValid returns true if the tracking mode is known
func (m TrackingMode) IsValid() bool {
	return m == TrackingStocked || m == TrackingOnDemand
}

// InventoryItem is an ingredient or consumable the kitchen buys and stores.
// It is the aggregate root for stock mutations: Quantity only changes through
// ApplyTransaction, and every change yields one ledger transaction.
type InventoryItem struct {
	shared.BaseAggregateRoot
	Name         string
	Category     string
	Unit         valueobject.Unit // canonical unit for Quantity and UnitPrice
	Quantity     decimal.Decimal  // on hand, may be negative after an over-deduction
	MinThreshold decimal.Decimal
	UnitPrice    decimal.Decimal // price per canonical unit
	TrackingMode TrackingMode
	IsActive     bool
}

// NewInventoryItem creates a new active inventory item with zero stock.
// Opening stock is recorded afterwards as a purchase or adjustment so it is ledgered.
func NewInventoryItem(name, category string, unit valueobject.Unit, unitPrice, minThreshold decimal.Decimal, mode TrackingMode) (*InventoryItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", fmt.Sprintf("Unknown unit %q", unit))
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if minThreshold.IsNegative() {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Minimum threshold cannot be negative")
	}
	if mode == "" {
		mode = TrackingStocked
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRACKING_MODE", fmt.Sprintf("Unknown tracking mode %q", mode))
	}
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = "other"
	}

	return &InventoryItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Category:          category,
		Unit:              unit,
		Quantity:          decimal.Zero,
		MinThreshold:      minThreshold,
		UnitPrice:         unitPrice,
		TrackingMode:      mode,
		IsActive:          true,
	}, nil
}

// IsOnDemand returns true if the item is bought fresh for each event
func (i *InventoryItem) IsOnDemand() bool {
	return i.TrackingMode == TrackingOnDemand
}

// AvailableForPlanning is the quantity planning may draw from.
// On-demand items always report zero.
func (i *InventoryItem) AvailableForPlanning() decimal.Decimal {
	if i.IsOnDemand() {
		return decimal.Zero
	}
	return i.Quantity
}

// IsBelowThreshold returns true if a stocked item is under its minimum threshold
func (i *InventoryItem) IsBelowThreshold() bool {
	if i.IsOnDemand() || !i.MinThreshold.IsPositive() {
		return false
	}
	return i.Quantity.LessThan(i.MinThreshold)
}

// HasDeficit returns true if the item is below zero on hand
func (i *InventoryItem) HasDeficit() bool {
	return !i.IsOnDemand() && i.Quantity.IsNegative()
}

// MutationResult is the outcome of ApplyTransaction.
// Warnings hold non-blocking conditions such as a stock deficit.
type MutationResult struct {
	Transaction *InventoryTransaction
	Warnings    []*shared.DomainError
}

// HasDeficit returns true if the mutation left the item below zero
func (r MutationResult) HasDeficit() bool {
	for _, w := range r.Warnings {
		if w.Code == shared.CodeStockDeficit {
			return true
		}
	}
	return false
}

// QuantityScale is the number of decimal places the ledger stores. Converted
// quantities are rounded to it before they touch the balance.
const QuantityScale = 4

// ApplyTransaction converts the input quantity to the canonical unit and moves stock.
// Purchases and increase adjustments add to Quantity; usage, wastage and decrease
// adjustments subtract from it. A decrease below zero is applied, not clamped, and
// reported as a StockDeficit warning.
func (i *InventoryItem) ApplyTransaction(in TransactionInput, table *valueobject.ConversionTable) (MutationResult, error) {
	if err := validateInput(in); err != nil {
		return MutationResult{}, err
	}
	if !in.Unit.IsValid() {
		return MutationResult{}, shared.NewDomainError("INVALID_UNIT", fmt.Sprintf("Unknown unit %q", in.Unit))
	}

	qty, err := table.Convert(in.Quantity, in.Unit, i.Unit)
	if err != nil {
		return MutationResult{}, shared.NewDomainError(shared.CodeIncompatibleUnits,
			fmt.Sprintf("%s: %s", i.Name, err.Error()))
	}
	if !qty.IsPositive() {
		return MutationResult{}, shared.NewDomainError(shared.CodeInvalidQuantity, "Converted quantity must be greater than zero")
	}
	qty = qty.Round(QuantityScale)
	if qty.IsZero() {
		return MutationResult{}, shared.NewDomainError(shared.CodeInvalidQuantity,
			fmt.Sprintf("%s %s is below the smallest recordable amount of %s %s",
				in.Quantity, in.Unit, decimal.New(1, -QuantityScale), i.Unit))
	}

	before := i.Quantity
	tx := newTransaction(i.ID, in, qty, i.Unit, before, before)
	tx.BalanceAfter = before.Add(tx.GetSignedQuantity())

	wasBelow := i.IsBelowThreshold()
	i.Quantity = tx.BalanceAfter
	i.Touch()
	i.IncrementVersion()

	result := MutationResult{Transaction: tx}

	i.AddDomainEvent(NewTransactionRecordedEvent(i, tx))
	if tx.TransactionType == TransactionTypePurchase {
		i.AddDomainEvent(NewPurchaseRecordedEvent(i, tx))
	}
	if tx.IsDecrease() && !i.IsOnDemand() {
		if i.Quantity.IsNegative() {
			result.Warnings = append(result.Warnings, shared.NewDomainError(shared.CodeStockDeficit,
				fmt.Sprintf("%s is at %s %s after %s of %s %s", i.Name, i.Quantity.String(), i.Unit,
					tx.TransactionType, qty.String(), i.Unit)))
			i.AddDomainEvent(NewStockDeficitEvent(i, tx))
		}
		if !wasBelow && i.IsBelowThreshold() {
			i.AddDomainEvent(NewStockBelowThresholdEvent(i))
		}
	}

	return result, nil
}

// UpdateUnitPrice sets the price per canonical unit, emitting a price change event.
func (i *InventoryItem) UpdateUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if price.Equal(i.UnitPrice) {
		return nil
	}
	old := i.UnitPrice
	i.UnitPrice = price
	i.Touch()
	i.IncrementVersion()
	i.AddDomainEvent(NewUnitPriceChangedEvent(i, old, price))
	return nil
}

// SetMinThreshold updates the low-stock alert threshold
func (i *InventoryItem) SetMinThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Minimum threshold cannot be negative")
	}
	i.MinThreshold = threshold
	i.Touch()
	i.IncrementVersion()
	return nil
}

// Deactivate hides the item from new dishes and plans; it is never deleted
func (i *InventoryItem) Deactivate() {
	if !i.IsActive {
		return
	}
	i.IsActive = false
	i.Touch()
	i.IncrementVersion()
}

// Activate re-enables a deactivated item
func (i *InventoryItem) Activate() {
	if i.IsActive {
		return
	}
	i.IsActive = true
	i.Touch()
	i.IncrementVersion()
}
