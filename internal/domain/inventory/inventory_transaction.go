package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of inventory transaction
type TransactionType string

const (
	// TransactionTypePurchase represents stock bought from a vendor or market
	TransactionTypePurchase TransactionType = "purchase"
	// TransactionTypeUsage represents stock drawn for cooking, usually for an event
	TransactionTypeUsage TransactionType = "usage"
	// TransactionTypeWastage represents spoiled or discarded stock
	TransactionTypeWastage TransactionType = "wastage"
	// TransactionTypeAdjustment represents a manual correction in either direction
	TransactionTypeAdjustment TransactionType = "adjustment"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypePurchase,
		TransactionTypeUsage,
		TransactionTypeWastage,
		TransactionTypeAdjustment:
		return true
	}
	return false
}

// AdjustmentDirection says which way an adjustment moves stock.
// It is empty for every other transaction type.
type AdjustmentDirection string

const (
	AdjustmentIncrease AdjustmentDirection = "increase"
	AdjustmentDecrease AdjustmentDirection = "decrease"
)

// IsValid returns true if the direction is known
func (d AdjustmentDirection) IsValid() bool {
	return d == AdjustmentIncrease || d == AdjustmentDecrease
}

// TransactionMetadata carries the optional facts recorded with a transaction.
type TransactionMetadata struct {
	Date      time.Time        // zero means now
	Cost      *decimal.Decimal // total amount paid, purchases only
	EventID   *uuid.UUID       // catering event the stock was used for
	Reason    string
	Reference string
}

// TransactionInput is the request to mutate stock on one item.
// Quantity is always positive, the type (and Direction for adjustments) gives the sign.
type TransactionInput struct {
	Type      TransactionType
	Quantity  decimal.Decimal
	Unit      valueobject.Unit
	Direction AdjustmentDirection
	Metadata  TransactionMetadata
}

// InventoryTransaction represents an immutable record of a stock movement.
// Once created, transactions cannot be modified - corrections must be made with new transactions.
type InventoryTransaction struct {
	shared.BaseEntity
	InventoryItemID uuid.UUID
	TransactionType TransactionType
	Direction       AdjustmentDirection
	Quantity        decimal.Decimal  // Always positive, in the item's canonical unit
	Unit            valueobject.Unit // The item's canonical unit
	InputQuantity   decimal.Decimal  // Quantity as entered
	InputUnit       valueobject.Unit // Unit as entered
	BalanceBefore   decimal.Decimal
	BalanceAfter    decimal.Decimal
	Cost            *decimal.Decimal
	EventID         *uuid.UUID
	Reason          string
	Reference       string
	TransactionDate time.Time
}

// IsIncrease returns true if the transaction adds stock
func (t *InventoryTransaction) IsIncrease() bool {
	switch t.TransactionType {
	case TransactionTypePurchase:
		return true
	case TransactionTypeAdjustment:
		return t.Direction != AdjustmentDecrease
	}
	return false
}

// IsDecrease returns true if the transaction removes stock
func (t *InventoryTransaction) IsDecrease() bool {
	return !t.IsIncrease()
}

// GetSignedQuantity returns the quantity with sign based on transaction direction
func (t *InventoryTransaction) GetSignedQuantity() decimal.Decimal {
	if t.IsDecrease() {
		return t.Quantity.Neg()
	}
	return t.Quantity
}

// UnitCost returns cost / quantity for purchases that carry a cost
func (t *InventoryTransaction) UnitCost() (decimal.Decimal, bool) {
	if t.Cost == nil || t.Quantity.IsZero() {
		return decimal.Zero, false
	}
	return t.Cost.Div(t.Quantity), true
}

func validateInput(in TransactionInput) error {
	if !in.Type.IsValid() {
		return shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type: "+in.Type.String())
	}
	if !in.Quantity.IsPositive() {
		return shared.NewDomainError(shared.CodeInvalidQuantity, "Transaction quantity must be greater than zero")
	}
	if in.Type == TransactionTypeAdjustment && in.Direction != "" && !in.Direction.IsValid() {
		return shared.NewDomainError("INVALID_DIRECTION", "Adjustment direction must be increase or decrease")
	}
	if in.Metadata.Cost != nil {
		if in.Type != TransactionTypePurchase {
			return shared.NewDomainError("INVALID_COST", "Only purchases carry a cost")
		}
		if in.Metadata.Cost.IsNegative() {
			return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
		}
	}
	return nil
}

func newTransaction(itemID uuid.UUID, in TransactionInput, qty decimal.Decimal, unit valueobject.Unit, before, after decimal.Decimal) *InventoryTransaction {
	date := in.Metadata.Date
	if date.IsZero() {
		date = time.Now()
	}
	direction := AdjustmentDirection("")
	if in.Type == TransactionTypeAdjustment {
		direction = in.Direction
		if direction == "" {
			direction = AdjustmentIncrease
		}
	}
	var cost *decimal.Decimal
	if in.Metadata.Cost != nil {
		c := *in.Metadata.Cost
		cost = &c
	}
	var eventID *uuid.UUID
	if in.Metadata.EventID != nil {
		id := *in.Metadata.EventID
		eventID = &id
	}
	return &InventoryTransaction{
		BaseEntity:      shared.NewOrderedBaseEntity(),
		InventoryItemID: itemID,
		TransactionType: in.Type,
		Direction:       direction,
		Quantity:        qty,
		Unit:            unit,
		InputQuantity:   in.Quantity,
		InputUnit:       in.Unit,
		BalanceBefore:   before,
		BalanceAfter:    after,
		Cost:            cost,
		EventID:         eventID,
		Reason:          in.Metadata.Reason,
		Reference:       in.Metadata.Reference,
		TransactionDate: date,
	}
}
