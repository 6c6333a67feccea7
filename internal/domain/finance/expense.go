package finance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseCategory represents the category of an expense
type ExpenseCategory string

const (
	ExpenseCategoryIngredients ExpenseCategory = "ingredients"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// ExpenseSource says where an expense entry came from
type ExpenseSource string

const (
	ExpenseSourceInventoryPurchase ExpenseSource = "inventory_purchase"
	ExpenseSourceManual            ExpenseSource = "manual"
)

// Expense is a money-out entry in the catering books.
// Entries sourced from inventory purchases carry the ledger transaction ID,
// which is unique, so replays of the same purchase are ignored.
type Expense struct {
	shared.BaseEntity
	Category            ExpenseCategory
	Source              ExpenseSource
	SourceTransactionID *uuid.UUID
	InventoryItemID     *uuid.UUID
	Amount              decimal.Decimal
	Description         string
	Reference           string
	IncurredAt          time.Time
}

// NewExpense creates a new expense entry
func NewExpense(category ExpenseCategory, source ExpenseSource, amount decimal.Decimal, description string, incurredAt time.Time) (*Expense, error) {
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount cannot be negative")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if incurredAt.IsZero() {
		incurredAt = time.Now()
	}
	return &Expense{
		BaseEntity:  shared.NewBaseEntity(),
		Category:    category,
		Source:      source,
		Amount:      amount,
		Description: description,
		IncurredAt:  incurredAt,
	}, nil
}

// LinkTransaction ties the expense to the inventory transaction that caused it
func (e *Expense) LinkTransaction(itemID, transactionID uuid.UUID) {
	e.InventoryItemID = &itemID
	e.SourceTransactionID = &transactionID
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	Save(ctx context.Context, expense *Expense) error
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	// FindBySourceTransaction returns shared.ErrNotFound when no expense is linked
	FindBySourceTransaction(ctx context.Context, transactionID uuid.UUID) (*Expense, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Expense, error)
	// SumBetween totals expenses of a category incurred in [from, to)
	SumBetween(ctx context.Context, category ExpenseCategory, from, to time.Time) (decimal.Decimal, error)
}
