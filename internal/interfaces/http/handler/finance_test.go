package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	financeapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupFinanceRouter(expenses *mockExpenseService, now time.Time) *gin.Engine {
	h := NewFinanceHandler(expenses)
	h.now = func() time.Time { return now }
	r := newTestEngine()
	r.GET("/finance/expenses", h.ListExpenses)
	r.GET("/finance/spend", h.IngredientSpend)
	return r
}

func TestFinanceHandler_ListExpenses(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	t.Run("filters by source", func(t *testing.T) {
		expenses := new(mockExpenseService)
		expenses.On("ListExpenses", mock.Anything, mock.MatchedBy(func(f financeapp.ExpenseListFilter) bool {
			return f.Source == "inventory_purchase" && f.Category == "ingredients"
		})).Return([]financeapp.ExpenseResponse{{Category: "ingredients", Amount: decimal.NewFromInt(60)}}, nil)

		w := doRequest(t, setupFinanceRouter(expenses, now), http.MethodGet, "/finance/expenses?source=inventory_purchase&category=ingredients", nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeResponse(t, w).Data, 1)
		expenses.AssertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		expenses := new(mockExpenseService)
		w := doRequest(t, setupFinanceRouter(expenses, now), http.MethodGet, "/finance/expenses?category=rent", nil, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFinanceHandler_IngredientSpend(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		query      string
		wantFrom   time.Time
		wantTo     time.Time
		wantStatus int
	}{
		{
			name:       "defaults to month to date",
			wantFrom:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			wantTo:     now,
			wantStatus: http.StatusOK,
		},
		{
			name:       "explicit dates",
			query:      "?from=2026-09-01&to=2026-10-01",
			wantFrom:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			wantTo:     time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			wantStatus: http.StatusOK,
		},
		{name: "bad from", query: "?from=september", wantStatus: http.StatusBadRequest},
		{name: "bad to", query: "?to=soon", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expenses := new(mockExpenseService)
			if tt.wantStatus == http.StatusOK {
				expenses.On("IngredientSpend", mock.Anything,
					mock.MatchedBy(func(from time.Time) bool { return from.Equal(tt.wantFrom) }),
					mock.MatchedBy(func(to time.Time) bool { return to.Equal(tt.wantTo) }),
				).Return(&financeapp.SpendSummaryResponse{Category: "ingredients", Total: decimal.NewFromInt(420)}, nil)
			}

			w := doRequest(t, setupFinanceRouter(expenses, now), http.MethodGet, "/finance/spend"+tt.query, nil, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			expenses.AssertExpectations(t)
		})
	}
}
