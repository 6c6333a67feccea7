package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/finance"
	inventoryapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/inventory"
	menuapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/menu"
	planningapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/planning"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/interfaces/http/dto"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// newTestEngine returns an engine with the request id and idempotency
// middleware the real router installs
func newTestEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.IdempotencyKey())
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func dataMap(t *testing.T, resp dto.Response) map[string]any {
	t.Helper()
	m, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data is %T", resp.Data)
	return m
}

type mockStockService struct{ mock.Mock }

func (m *mockStockService) CreateItem(ctx context.Context, req inventoryapp.CreateItemRequest) (*inventoryapp.InventoryItemResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.InventoryItemResponse), args.Error(1)
}

func (m *mockStockService) GetItem(ctx context.Context, itemID uuid.UUID) (*inventoryapp.InventoryItemResponse, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.InventoryItemResponse), args.Error(1)
}

func (m *mockStockService) ListItems(ctx context.Context, filter inventoryapp.InventoryListFilter) ([]inventoryapp.InventoryItemResponse, int64, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]inventoryapp.InventoryItemResponse)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockStockService) UpdateItem(ctx context.Context, itemID uuid.UUID, req inventoryapp.UpdateItemRequest) (*inventoryapp.InventoryItemResponse, error) {
	args := m.Called(ctx, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.InventoryItemResponse), args.Error(1)
}

func (m *mockStockService) ApplyTransaction(ctx context.Context, req inventoryapp.ApplyTransactionRequest) (*inventoryapp.MutationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.MutationResponse), args.Error(1)
}

func (m *mockStockService) ApplyEventUsage(ctx context.Context, req inventoryapp.EventUsageRequest) (*inventoryapp.EventUsageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.EventUsageResponse), args.Error(1)
}

func (m *mockStockService) ListTransactions(ctx context.Context, itemID uuid.UUID, filter inventoryapp.TransactionListFilter) ([]inventoryapp.TransactionResponse, int64, error) {
	args := m.Called(ctx, itemID, filter)
	txs, _ := args.Get(0).([]inventoryapp.TransactionResponse)
	return txs, args.Get(1).(int64), args.Error(2)
}

func (m *mockStockService) VerifyLedger(ctx context.Context, itemID uuid.UUID, opening decimal.Decimal) (*inventoryapp.LedgerCheckResponse, error) {
	args := m.Called(ctx, itemID, opening)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.LedgerCheckResponse), args.Error(1)
}

type mockCostingService struct{ mock.Mock }

func (m *mockCostingService) CreateDish(ctx context.Context, req menuapp.CreateDishRequest) (*menuapp.DishResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.DishResponse), args.Error(1)
}

func (m *mockCostingService) UpdateDish(ctx context.Context, dishID uuid.UUID, req menuapp.UpdateDishRequest) (*menuapp.DishResponse, error) {
	args := m.Called(ctx, dishID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.DishResponse), args.Error(1)
}

func (m *mockCostingService) GetDish(ctx context.Context, dishID uuid.UUID) (*menuapp.DishResponse, error) {
	args := m.Called(ctx, dishID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.DishResponse), args.Error(1)
}

func (m *mockCostingService) ListDishes(ctx context.Context, filter menuapp.DishListFilter) ([]menuapp.DishResponse, int64, error) {
	args := m.Called(ctx, filter)
	dishes, _ := args.Get(0).([]menuapp.DishResponse)
	return dishes, args.Get(1).(int64), args.Error(2)
}

func (m *mockCostingService) CostDish(ctx context.Context, dishID uuid.UUID) (*menuapp.DishCostingResponse, error) {
	args := m.Called(ctx, dishID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.DishCostingResponse), args.Error(1)
}

func (m *mockCostingService) CostMenu(ctx context.Context) (*menuapp.MenuCostingResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.MenuCostingResponse), args.Error(1)
}

func (m *mockCostingService) SuggestPrice(ctx context.Context, dishID uuid.UUID, targetMargin decimal.Decimal) (*menuapp.SuggestedPriceResponse, error) {
	args := m.Called(ctx, dishID, targetMargin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.SuggestedPriceResponse), args.Error(1)
}

type mockPlanService struct{ mock.Mock }

func (m *mockPlanService) Plan(ctx context.Context, req planningapp.PlanRequest) (*planningapp.PlanResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planningapp.PlanResponse), args.Error(1)
}

func (m *mockPlanService) ArchivePlan(ctx context.Context, req planningapp.PlanRequest) (*planningapp.PlanRecordResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planningapp.PlanRecordResponse), args.Error(1)
}

func (m *mockPlanService) GetPlan(ctx context.Context, planID uuid.UUID) (*planningapp.PlanRecordResponse, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planningapp.PlanRecordResponse), args.Error(1)
}

func (m *mockPlanService) ListPlans(ctx context.Context, filter planningapp.PlanListFilter) ([]planningapp.PlanRecordResponse, error) {
	args := m.Called(ctx, filter)
	records, _ := args.Get(0).([]planningapp.PlanRecordResponse)
	return records, args.Error(1)
}

func (m *mockPlanService) GetPlanDownloadURL(ctx context.Context, planID uuid.UUID) (*planningapp.PlanDownloadResponse, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planningapp.PlanDownloadResponse), args.Error(1)
}

type mockArchiveReader struct{ mock.Mock }

func (m *mockArchiveReader) Download(ctx context.Context, key string) ([]byte, string, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.String(1), args.Error(2)
}

type mockExpenseService struct{ mock.Mock }

func (m *mockExpenseService) ListExpenses(ctx context.Context, filter financeapp.ExpenseListFilter) ([]financeapp.ExpenseResponse, error) {
	args := m.Called(ctx, filter)
	expenses, _ := args.Get(0).([]financeapp.ExpenseResponse)
	return expenses, args.Error(1)
}

func (m *mockExpenseService) IngredientSpend(ctx context.Context, from, to time.Time) (*financeapp.SpendSummaryResponse, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financeapp.SpendSummaryResponse), args.Error(1)
}
