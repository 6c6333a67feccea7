package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for the Expense entity.
// SourceTransactionID is unique so a replayed purchase cannot book twice.
type ExpenseModel struct {
	BaseModel
	Category            string          `gorm:"type:varchar(30);not null;index:idx_expense_category_incurred,priority:1"`
	Source              string          `gorm:"type:varchar(30);not null"`
	SourceTransactionID *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	InventoryItemID     *uuid.UUID      `gorm:"type:uuid;index"`
	Amount              decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description         string          `gorm:"type:varchar(500);not null"`
	Reference           string          `gorm:"type:varchar(100)"`
	IncurredAt          time.Time       `gorm:"not null;index:idx_expense_category_incurred,priority:2"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseEntity:          m.BaseModel.ToDomain(),
		Category:            finance.ExpenseCategory(m.Category),
		Source:              finance.ExpenseSource(m.Source),
		SourceTransactionID: m.SourceTransactionID,
		InventoryItemID:     m.InventoryItemID,
		Amount:              m.Amount,
		Description:         m.Description,
		Reference:           m.Reference,
		IncurredAt:          m.IncurredAt,
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Category = string(e.Category)
	m.Source = string(e.Source)
	m.SourceTransactionID = e.SourceTransactionID
	m.InventoryItemID = e.InventoryItemID
	m.Amount = e.Amount
	m.Description = e.Description
	m.Reference = e.Reference
	m.IncurredAt = e.IncurredAt
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense entity.
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}
