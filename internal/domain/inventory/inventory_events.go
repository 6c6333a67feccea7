package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInventoryItem = "InventoryItem"

// Event type constants
const (
	EventTypeTransactionRecorded = "InventoryTransactionRecorded"
	EventTypePurchaseRecorded    = "InventoryPurchaseRecorded"
	EventTypeStockDeficit        = "InventoryStockDeficit"
	EventTypeStockBelowThreshold = "InventoryStockBelowThreshold"
	EventTypeUnitPriceChanged    = "InventoryUnitPriceChanged"
)

// TransactionRecordedEvent is raised for every ledger append
type TransactionRecordedEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID        `json:"inventory_item_id"`
	TransactionID   uuid.UUID        `json:"transaction_id"`
	TransactionType TransactionType  `json:"transaction_type"`
	Quantity        decimal.Decimal  `json:"quantity"`
	Unit            valueobject.Unit `json:"unit"`
	BalanceAfter    decimal.Decimal  `json:"balance_after"`
}

// NewTransactionRecordedEvent creates a new TransactionRecordedEvent
func NewTransactionRecordedEvent(item *InventoryItem, tx *InventoryTransaction) *TransactionRecordedEvent {
	return &TransactionRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionRecorded, AggregateTypeInventoryItem, item.ID),
		InventoryItemID: item.ID,
		TransactionID:   tx.ID,
		TransactionType: tx.TransactionType,
		Quantity:        tx.Quantity,
		Unit:            tx.Unit,
		BalanceAfter:    tx.BalanceAfter,
	}
}

// PurchaseRecordedEvent is raised when stock is bought.
// Expense tracking subscribes to it.
type PurchaseRecordedEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID        `json:"inventory_item_id"`
	ItemName        string           `json:"item_name"`
	Category        string           `json:"category"`
	TransactionID   uuid.UUID        `json:"transaction_id"`
	Quantity        decimal.Decimal  `json:"quantity"`
	Unit            valueobject.Unit `json:"unit"`
	Cost            *decimal.Decimal `json:"cost,omitempty"`
	PurchasedAt     time.Time        `json:"purchased_at"`
	Reference       string           `json:"reference,omitempty"`
}

// NewPurchaseRecordedEvent creates a new PurchaseRecordedEvent
func NewPurchaseRecordedEvent(item *InventoryItem, tx *InventoryTransaction) *PurchaseRecordedEvent {
	return &PurchaseRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseRecorded, AggregateTypeInventoryItem, item.ID),
		InventoryItemID: item.ID,
		ItemName:        item.Name,
		Category:        item.Category,
		TransactionID:   tx.ID,
		Quantity:        tx.Quantity,
		Unit:            tx.Unit,
		Cost:            tx.Cost,
		PurchasedAt:     tx.TransactionDate,
		Reference:       tx.Reference,
	}
}

// StockDeficitEvent is raised when a decrease leaves a stocked item below zero
type StockDeficitEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID        `json:"inventory_item_id"`
	ItemName        string           `json:"item_name"`
	TransactionID   uuid.UUID        `json:"transaction_id"`
	Quantity        decimal.Decimal  `json:"quantity"`
	Unit            valueobject.Unit `json:"unit"`
	CateringEventID *uuid.UUID       `json:"catering_event_id,omitempty"`
}

// NewStockDeficitEvent creates a new StockDeficitEvent
func NewStockDeficitEvent(item *InventoryItem, tx *InventoryTransaction) *StockDeficitEvent {
	return &StockDeficitEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDeficit, AggregateTypeInventoryItem, item.ID),
		InventoryItemID: item.ID,
		ItemName:        item.Name,
		TransactionID:   tx.ID,
		Quantity:        item.Quantity,
		Unit:            item.Unit,
		CateringEventID: tx.EventID,
	}
}

// StockBelowThresholdEvent is raised when stock crosses below the minimum threshold
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID        `json:"inventory_item_id"`
	ItemName        string           `json:"item_name"`
	Category        string           `json:"category"`
	Quantity        decimal.Decimal  `json:"quantity"`
	MinThreshold    decimal.Decimal  `json:"min_threshold"`
	Unit            valueobject.Unit `json:"unit"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(item *InventoryItem) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, AggregateTypeInventoryItem, item.ID),
		InventoryItemID: item.ID,
		ItemName:        item.Name,
		Category:        item.Category,
		Quantity:        item.Quantity,
		MinThreshold:    item.MinThreshold,
		Unit:            item.Unit,
	}
}

// Shortage returns how far below the threshold the item is
func (e *StockBelowThresholdEvent) Shortage() decimal.Decimal {
	return e.MinThreshold.Sub(e.Quantity)
}

// UnitPriceChangedEvent is raised when the price per canonical unit changes.
// Cached dish costs that reference the item become stale.
type UnitPriceChangedEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	OldPrice        decimal.Decimal `json:"old_price"`
	NewPrice        decimal.Decimal `json:"new_price"`
}

// NewUnitPriceChangedEvent creates a new UnitPriceChangedEvent
func NewUnitPriceChangedEvent(item *InventoryItem, oldPrice, newPrice decimal.Decimal) *UnitPriceChangedEvent {
	return &UnitPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnitPriceChanged, AggregateTypeInventoryItem, item.ID),
		InventoryItemID: item.ID,
		OldPrice:        oldPrice,
		NewPrice:        newPrice,
	}
}
