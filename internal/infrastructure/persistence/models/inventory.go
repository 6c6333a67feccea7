package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for the InventoryItem aggregate root.
type InventoryItemModel struct {
	AggregateModel
	Name         string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Category     string          `gorm:"type:varchar(50);not null;index;default:'other'"`
	Unit         string          `gorm:"type:varchar(20);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinThreshold decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TrackingMode string          `gorm:"type:varchar(20);not null;default:'stocked'"`
	IsActive     bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem entity.
func (m *InventoryItemModel) ToDomain() *inventory.InventoryItem {
	return &inventory.InventoryItem{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Category:          m.Category,
		Unit:              valueobject.Unit(m.Unit),
		Quantity:          m.Quantity,
		MinThreshold:      m.MinThreshold,
		UnitPrice:         m.UnitPrice,
		TrackingMode:      inventory.TrackingMode(m.TrackingMode),
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain InventoryItem entity.
func (m *InventoryItemModel) FromDomain(i *inventory.InventoryItem) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.Name = i.Name
	m.Category = i.Category
	m.Unit = string(i.Unit)
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice
	m.MinThreshold = i.MinThreshold
	m.TrackingMode = string(i.TrackingMode)
	m.IsActive = i.IsActive
}

// InventoryItemModelFromDomain creates a new persistence model from a domain InventoryItem entity.
func InventoryItemModelFromDomain(i *inventory.InventoryItem) *InventoryItemModel {
	m := &InventoryItemModel{}
	m.FromDomain(i)
	return m
}

// InventoryTransactionModel is the persistence model for a ledger row.
// Rows are inserted once and never updated.
type InventoryTransactionModel struct {
	BaseModel
	InventoryItemID uuid.UUID        `gorm:"type:uuid;not null;index:idx_inv_tx_item_date,priority:1"`
	TransactionType string           `gorm:"type:varchar(20);not null;index"`
	Direction       string           `gorm:"type:varchar(10)"`
	Quantity        decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Unit            string           `gorm:"type:varchar(20);not null"`
	InputQuantity   decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	InputUnit       string           `gorm:"type:varchar(20);not null"`
	BalanceBefore   decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	BalanceAfter    decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Cost            *decimal.Decimal `gorm:"type:decimal(18,4)"`
	EventID         *uuid.UUID       `gorm:"type:uuid;index"`
	Reason          string           `gorm:"type:varchar(500)"`
	Reference       string           `gorm:"type:varchar(100)"`
	TransactionDate time.Time        `gorm:"not null;index:idx_inv_tx_item_date,priority:2"`
}

// TableName returns the table name for GORM
func (InventoryTransactionModel) TableName() string {
	return "inventory_transactions"
}

// ToDomain converts the persistence model to a domain InventoryTransaction.
func (m *InventoryTransactionModel) ToDomain() *inventory.InventoryTransaction {
	return &inventory.InventoryTransaction{
		BaseEntity:      m.BaseModel.ToDomain(),
		InventoryItemID: m.InventoryItemID,
		TransactionType: inventory.TransactionType(m.TransactionType),
		Direction:       inventory.AdjustmentDirection(m.Direction),
		Quantity:        m.Quantity,
		Unit:            valueobject.Unit(m.Unit),
		InputQuantity:   m.InputQuantity,
		InputUnit:       valueobject.Unit(m.InputUnit),
		BalanceBefore:   m.BalanceBefore,
		BalanceAfter:    m.BalanceAfter,
		Cost:            m.Cost,
		EventID:         m.EventID,
		Reason:          m.Reason,
		Reference:       m.Reference,
		TransactionDate: m.TransactionDate,
	}
}

// FromDomain populates the persistence model from a domain InventoryTransaction.
func (m *InventoryTransactionModel) FromDomain(t *inventory.InventoryTransaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.InventoryItemID = t.InventoryItemID
	m.TransactionType = string(t.TransactionType)
	m.Direction = string(t.Direction)
	m.Quantity = t.Quantity
	m.Unit = string(t.Unit)
	m.InputQuantity = t.InputQuantity
	m.InputUnit = string(t.InputUnit)
	m.BalanceBefore = t.BalanceBefore
	m.BalanceAfter = t.BalanceAfter
	m.Cost = t.Cost
	m.EventID = t.EventID
	m.Reason = t.Reason
	m.Reference = t.Reference
	m.TransactionDate = t.TransactionDate
}

// InventoryTransactionModelFromDomain creates a new persistence model from a domain InventoryTransaction.
func InventoryTransactionModelFromDomain(t *inventory.InventoryTransaction) *InventoryTransactionModel {
	m := &InventoryTransactionModel{}
	m.FromDomain(t)
	return m
}
