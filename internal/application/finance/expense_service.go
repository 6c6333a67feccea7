package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/finance"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID                  uuid.UUID       `json:"id"`
	Category            string          `json:"category"`
	Source              string          `json:"source"`
	SourceTransactionID *uuid.UUID      `json:"source_transaction_id,omitempty"`
	InventoryItemID     *uuid.UUID      `json:"inventory_item_id,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	Description         string          `json:"description"`
	Reference           string          `json:"reference,omitempty"`
	IncurredAt          time.Time       `json:"incurred_at"`
}

// ExpenseListFilter filters the expense list
type ExpenseListFilter struct {
	Category string `form:"category" binding:"omitempty,oneof=ingredients other"`
	Source   string `form:"source" binding:"omitempty,oneof=inventory_purchase manual"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SpendSummaryResponse totals ingredient spend over a period
type SpendSummaryResponse struct {
	Category string          `json:"category"`
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Total    decimal.Decimal `json:"total"`
}

// ExpenseService reads the expense book filled by ExpenseRecorder
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// ListExpenses lists expenses, most recent first
func (s *ExpenseService) ListExpenses(ctx context.Context, filter ExpenseListFilter) ([]ExpenseResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "incurred_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Source != "" {
		domainFilter.Filters["source"] = filter.Source
	}

	expenses, err := s.expenseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = toExpenseResponse(&expenses[i])
	}
	return out, nil
}

// IngredientSpend totals ingredient purchases incurred in [from, to)
func (s *ExpenseService) IngredientSpend(ctx context.Context, from, to time.Time) (*SpendSummaryResponse, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end must be after its start")
	}
	total, err := s.expenseRepo.SumBetween(ctx, finance.ExpenseCategoryIngredients, from, to)
	if err != nil {
		return nil, err
	}
	return &SpendSummaryResponse{
		Category: string(finance.ExpenseCategoryIngredients),
		From:     from,
		To:       to,
		Total:    total,
	}, nil
}

func toExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:                  e.ID,
		Category:            string(e.Category),
		Source:              string(e.Source),
		SourceTransactionID: e.SourceTransactionID,
		InventoryItemID:     e.InventoryItemID,
		Amount:              e.Amount,
		Description:         e.Description,
		Reference:           e.Reference,
		IncurredAt:          e.IncurredAt,
	}
}
