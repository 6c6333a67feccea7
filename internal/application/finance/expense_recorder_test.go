package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/finance"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockExpenseRepository is a mock implementation of ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindBySourceTransaction(ctx context.Context, transactionID uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Expense, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SumBetween(ctx context.Context, category finance.ExpenseCategory, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, category, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func purchaseEvent(t *testing.T, cost *decimal.Decimal) *inventory.PurchaseRecordedEvent {
	t.Helper()
	item, err := inventory.NewInventoryItem("Basmati Rice", "dry_goods", valueobject.UnitKilogram, decimal.NewFromInt(90), decimal.Zero, inventory.TrackingStocked)
	require.NoError(t, err)
	result, err := item.ApplyTransaction(inventory.TransactionInput{
		Type:     inventory.TransactionTypePurchase,
		Quantity: decimal.NewFromInt(25),
		Unit:     valueobject.UnitKilogram,
		Metadata: inventory.TransactionMetadata{Cost: cost, Reference: "INV-2291"},
	}, valueobject.DefaultConversionTable())
	require.NoError(t, err)
	return inventory.NewPurchaseRecordedEvent(item, result.Transaction)
}

func TestExpenseRecorder_Handle(t *testing.T) {
	ctx := context.Background()
	cost := decimal.NewFromInt(2300)

	t.Run("records an ingredients expense", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		handler := NewExpenseRecorder(repo, zaptest.NewLogger(t))
		event := purchaseEvent(t, &cost)

		repo.On("FindBySourceTransaction", mock.Anything, event.TransactionID).Return(nil, shared.ErrNotFound).Once()
		repo.On("Save", mock.Anything, mock.MatchedBy(func(e *finance.Expense) bool {
			return e.Amount.Equal(cost) &&
				e.Category == finance.ExpenseCategoryIngredients &&
				e.Source == finance.ExpenseSourceInventoryPurchase &&
				*e.SourceTransactionID == event.TransactionID &&
				*e.InventoryItemID == event.InventoryItemID &&
				e.Reference == "INV-2291" &&
				e.Description == "Purchase of 25 kg Basmati Rice"
		})).Return(nil).Once()

		require.NoError(t, handler.Handle(ctx, event))
		repo.AssertExpectations(t)
	})

	t.Run("purchase without cost is skipped", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		handler := NewExpenseRecorder(repo, zaptest.NewLogger(t))

		require.NoError(t, handler.Handle(ctx, purchaseEvent(t, nil)))
		repo.AssertNotCalled(t, "FindBySourceTransaction", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("replay is ignored", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		handler := NewExpenseRecorder(repo, zaptest.NewLogger(t))
		event := purchaseEvent(t, &cost)
		existing, err := finance.NewExpense(finance.ExpenseCategoryIngredients, finance.ExpenseSourceInventoryPurchase, cost, "earlier", time.Now())
		require.NoError(t, err)

		repo.On("FindBySourceTransaction", mock.Anything, event.TransactionID).Return(existing, nil).Once()

		require.NoError(t, handler.Handle(ctx, event))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("save failure is logged not returned", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		handler := NewExpenseRecorder(repo, zaptest.NewLogger(t))
		event := purchaseEvent(t, &cost)

		repo.On("FindBySourceTransaction", mock.Anything, event.TransactionID).Return(nil, shared.ErrNotFound).Once()
		repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

		assert.NoError(t, handler.Handle(ctx, event))
		repo.AssertExpectations(t)
	})

	t.Run("lookup failure is logged not returned", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		handler := NewExpenseRecorder(repo, nil)
		event := purchaseEvent(t, &cost)

		repo.On("FindBySourceTransaction", mock.Anything, event.TransactionID).Return(nil, errors.New("timeout")).Once()

		assert.NoError(t, handler.Handle(ctx, event))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("wrong event type", func(t *testing.T) {
		handler := NewExpenseRecorder(new(MockExpenseRepository), nil)
		item, err := inventory.NewInventoryItem("Salt", "grocery", valueobject.UnitKilogram, decimal.NewFromInt(20), decimal.Zero, inventory.TrackingStocked)
		require.NoError(t, err)

		assert.Error(t, handler.Handle(ctx, inventory.NewStockBelowThresholdEvent(item)))
		assert.Equal(t, []string{inventory.EventTypePurchaseRecorded}, handler.EventTypes())
	})
}

func TestExpenseService(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	t.Run("ingredient spend", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		svc := NewExpenseService(repo)
		repo.On("SumBetween", mock.Anything, finance.ExpenseCategoryIngredients, from, to).Return(decimal.NewFromInt(48250), nil).Once()

		resp, err := svc.IngredientSpend(ctx, from, to)
		require.NoError(t, err)
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(48250)))
		assert.Equal(t, "ingredients", resp.Category)
	})

	t.Run("inverted period", func(t *testing.T) {
		svc := NewExpenseService(new(MockExpenseRepository))
		_, err := svc.IngredientSpend(ctx, to, from)
		assert.Error(t, err)
	})

	t.Run("list applies defaults and category", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		svc := NewExpenseService(repo)
		expense, err := finance.NewExpense(finance.ExpenseCategoryIngredients, finance.ExpenseSourceManual, decimal.NewFromInt(500), "gas refill", from)
		require.NoError(t, err)
		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == 20 && f.Filters["category"] == "ingredients"
		})).Return([]finance.Expense{*expense}, nil).Once()

		list, err := svc.ListExpenses(ctx, ExpenseListFilter{Category: "ingredients"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "manual", list[0].Source)
	})
}
