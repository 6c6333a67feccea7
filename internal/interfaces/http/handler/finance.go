package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	financeapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/finance"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/interfaces/http/dto"
)

// ExpenseService is the expense book read service used by FinanceHandler
type ExpenseService interface {
	ListExpenses(ctx context.Context, filter financeapp.ExpenseListFilter) ([]financeapp.ExpenseResponse, error)
	IngredientSpend(ctx context.Context, from, to time.Time) (*financeapp.SpendSummaryResponse, error)
}

// FinanceHandler handles finance-related API endpoints
type FinanceHandler struct {
	BaseHandler
	expenses ExpenseService
	now      func() time.Time
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(expenses ExpenseService) *FinanceHandler {
	return &FinanceHandler{expenses: expenses, now: time.Now}
}

// ListExpenses godoc
// @Summary      List expenses
// @Description  Expenses recorded from inventory purchases, most recent first
// @Tags         finance
// @Produce      json
// @Param        category query string false "ingredients or other"
// @Param        source   query string false "inventory_purchase or manual"
// @Router       /finance/expenses [get]
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	var filter financeapp.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	expenses, err := h.expenses.ListExpenses(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expenses)
}

// IngredientSpend godoc
// @Summary      Total ingredient spend over a period
// @Description  from defaults to the first day of the current month, to to now; the range is [from, to).
// @Tags         finance
// @Produce      json
// @Param        from query string false "RFC 3339 time or YYYY-MM-DD"
// @Param        to   query string false "RFC 3339 time or YYYY-MM-DD"
// @Router       /finance/spend [get]
func (h *FinanceHandler) IngredientSpend(c *gin.Context) {
	now := h.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now

	if raw := c.Query("from"); raw != "" {
		t, err := parseDateTime(raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeValidationFormat, "Invalid from: use RFC 3339 or YYYY-MM-DD")
			return
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDateTime(raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeValidationFormat, "Invalid to: use RFC 3339 or YYYY-MM-DD")
			return
		}
		to = t
	}

	summary, err := h.expenses.IngredientSpend(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
