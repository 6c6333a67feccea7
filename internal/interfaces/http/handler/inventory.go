package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/logger"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// StockService is the inventory application service used by InventoryHandler
type StockService interface {
	CreateItem(ctx context.Context, req inventoryapp.CreateItemRequest) (*inventoryapp.InventoryItemResponse, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*inventoryapp.InventoryItemResponse, error)
	ListItems(ctx context.Context, filter inventoryapp.InventoryListFilter) ([]inventoryapp.InventoryItemResponse, int64, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, req inventoryapp.UpdateItemRequest) (*inventoryapp.InventoryItemResponse, error)
	ApplyTransaction(ctx context.Context, req inventoryapp.ApplyTransactionRequest) (*inventoryapp.MutationResponse, error)
	ApplyEventUsage(ctx context.Context, req inventoryapp.EventUsageRequest) (*inventoryapp.EventUsageResponse, error)
	ListTransactions(ctx context.Context, itemID uuid.UUID, filter inventoryapp.TransactionListFilter) ([]inventoryapp.TransactionResponse, int64, error)
	VerifyLedger(ctx context.Context, itemID uuid.UUID, opening decimal.Decimal) (*inventoryapp.LedgerCheckResponse, error)
}

// InventoryHandler handles inventory-related API endpoints
type InventoryHandler struct {
	BaseHandler
	stock StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stock StockService) *InventoryHandler {
	return &InventoryHandler{stock: stock}
}

// ListItems godoc
// @Summary      List inventory items
// @Description  Lists ingredients with optional search, category, tracking mode and below-minimum filters
// @Tags         inventory
// @Produce      json
// @Param        search         query string false "Name search"
// @Param        category       query string false "Category"
// @Param        tracking_mode  query string false "stocked or on_demand"
// @Param        below_minimum  query bool   false "Only items at or below their threshold"
// @Router       /inventory/items [get]
func (h *InventoryHandler) ListItems(c *gin.Context) {
	var filter inventoryapp.InventoryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	items, total, err := h.stock.ListItems(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// CreateItem godoc
// @Summary      Register an ingredient
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Router       /inventory/items [post]
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req inventoryapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.stock.CreateItem(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// GetItem godoc
// @Summary      Get an ingredient
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Item ID"
// @Router       /inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *gin.Context) {
	itemID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.stock.GetItem(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// UpdateItem godoc
// @Summary      Change an ingredient's threshold, price or active flag
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Router       /inventory/items/{id} [patch]
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	itemID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.stock.UpdateItem(c.Request.Context(), itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// ApplyTransaction godoc
// @Summary      Record a purchase, usage, wastage or adjustment
// @Description  The quantity may be given in any unit convertible to the item's unit.
// @Description  A usage that drives stock below zero succeeds and carries a STOCK_DEFICIT warning.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id              path   string true  "Item ID"
// @Param        Idempotency-Key header string false "Retry key"
// @Router       /inventory/items/{id}/transactions [post]
func (h *InventoryHandler) ApplyTransaction(c *gin.Context) {
	itemID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.ApplyTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.ItemID = itemID
	req.IdempotencyKey = middleware.GetIdempotencyKey(c)

	result, err := h.stock.ApplyTransaction(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListTransactions godoc
// @Summary      List an ingredient's ledger
// @Tags         inventory
// @Produce      json
// @Param        id               path  string true  "Item ID"
// @Param        transaction_type query string false "purchase, usage, wastage or adjustment"
// @Param        start_date       query string false "YYYY-MM-DD"
// @Param        end_date         query string false "YYYY-MM-DD"
// @Param        event_id         query string false "Only transactions of this catering event"
// @Router       /inventory/items/{id}/transactions [get]
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	itemID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var filter inventoryapp.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	if filter.EventID, ok = h.parseUUIDQuery(c, "event_id"); !ok {
		return
	}

	txs, total, err := h.stock.ListTransactions(c.Request.Context(), itemID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, txs, total, page, pageSize)
}

// VerifyLedger godoc
// @Summary      Check on-hand stock against the ledger
// @Description  Verifies quantity == opening + sum of signed transaction effects.
// @Tags         inventory
// @Produce      json
// @Param        id      path  string true  "Item ID"
// @Param        opening query number false "Quantity before the first transaction (default 0)"
// @Router       /inventory/items/{id}/ledger-check [get]
func (h *InventoryHandler) VerifyLedger(c *gin.Context) {
	itemID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	opening, ok := h.parseDecimalQuery(c, "opening", decimal.Zero)
	if !ok {
		return
	}

	check, err := h.stock.VerifyLedger(c.Request.Context(), itemID, opening)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

// ApplyEventUsage godoc
// @Summary      Deduct a catering event's ingredient needs
// @Description  Aggregates the dish selections and posts one usage per stocked item, all or nothing.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        event_id        path   string true  "Catering event ID"
// @Param        Idempotency-Key header string false "Retry key"
// @Router       /inventory/events/{event_id}/usage [post]
func (h *InventoryHandler) ApplyEventUsage(c *gin.Context) {
	eventID, ok := h.parseUUIDParam(c, "event_id")
	if !ok {
		return
	}
	var req inventoryapp.EventUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.EventID = eventID
	req.IdempotencyKey = middleware.GetIdempotencyKey(c)

	ctx := c.Request.Context()
	ctx, _ = logger.WithEventID(ctx, logger.FromContext(ctx), eventID.String())

	result, err := h.stock.ApplyEventUsage(ctx, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
