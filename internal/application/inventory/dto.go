package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryItemResponse represents an inventory item in API responses
type InventoryItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Unit           string          `json:"unit"`
	Quantity       decimal.Decimal `json:"quantity"`
	MinThreshold   decimal.Decimal `json:"min_threshold"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	StockValue     decimal.Decimal `json:"stock_value"`
	TrackingMode   string          `json:"tracking_mode"`
	IsActive       bool            `json:"is_active"`
	IsBelowMinimum bool            `json:"is_below_minimum"`
	HasDeficit     bool            `json:"has_deficit"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// InventoryListFilter represents filter options for inventory list
type InventoryListFilter struct {
	Search          string `form:"search"`
	Category        string `form:"category"`
	TrackingMode    string `form:"tracking_mode" binding:"omitempty,oneof=stocked on_demand"`
	BelowMinimum    *bool  `form:"below_minimum"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page" binding:"omitempty,min=1"`
	PageSize        int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy         string `form:"order_by"`
	OrderDir        string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateItemRequest registers a new ingredient.
// OpeningQuantity, when positive, is ledgered as an increase adjustment.
type CreateItemRequest struct {
	Name            string           `json:"name" binding:"required,min=1,max=200"`
	Category        string           `json:"category" binding:"max=50"`
	Unit            string           `json:"unit" binding:"required"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	MinThreshold    decimal.Decimal  `json:"min_threshold"`
	TrackingMode    string           `json:"tracking_mode" binding:"omitempty,oneof=stocked on_demand"`
	OpeningQuantity *decimal.Decimal `json:"opening_quantity"`
}

// UpdateItemRequest changes item settings. Nil fields are left unchanged.
type UpdateItemRequest struct {
	MinThreshold *decimal.Decimal `json:"min_threshold"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	IsActive     *bool            `json:"is_active"`
}

// ApplyTransactionRequest records one stock movement against an item
type ApplyTransactionRequest struct {
	ItemID         uuid.UUID        `json:"-"`
	Type           string           `json:"type" binding:"required,oneof=purchase usage wastage adjustment"`
	Quantity       decimal.Decimal  `json:"quantity" binding:"required"`
	Unit           string           `json:"unit" binding:"required"`
	Direction      string           `json:"direction" binding:"omitempty,oneof=increase decrease"`
	Date           *time.Time       `json:"date"`
	Cost           *decimal.Decimal `json:"cost"`
	EventID        *uuid.UUID       `json:"event_id"`
	Reason         string           `json:"reason" binding:"max=500"`
	Reference      string           `json:"reference" binding:"max=100"`
	IdempotencyKey string           `json:"-"`
}

// SelectionInput is one dish and its plate count
type SelectionInput struct {
	DishID   uuid.UUID `json:"dish_id" binding:"required"`
	Servings int       `json:"servings" binding:"required,min=1"`
}

// EventUsageRequest deducts the aggregated ingredient needs of a catering event
type EventUsageRequest struct {
	EventID         uuid.UUID        `json:"-"`
	Selections      []SelectionInput `json:"selections" binding:"required,min=1,dive"`
	Date            *time.Time       `json:"date"`
	Reason          string           `json:"reason" binding:"max=500"`
	IncludeOnDemand bool             `json:"include_on_demand"`
	IdempotencyKey  string           `json:"-"`
}

// TransactionResponse represents an inventory transaction in API responses
type TransactionResponse struct {
	ID              uuid.UUID        `json:"id"`
	InventoryItemID uuid.UUID        `json:"inventory_item_id"`
	TransactionType string           `json:"transaction_type"`
	Direction       string           `json:"direction,omitempty"`
	Quantity        decimal.Decimal  `json:"quantity"`
	Unit            string           `json:"unit"`
	SignedQuantity  decimal.Decimal  `json:"signed_quantity"`
	InputQuantity   decimal.Decimal  `json:"input_quantity"`
	InputUnit       string           `json:"input_unit"`
	BalanceBefore   decimal.Decimal  `json:"balance_before"`
	BalanceAfter    decimal.Decimal  `json:"balance_after"`
	Cost            *decimal.Decimal `json:"cost,omitempty"`
	EventID         *uuid.UUID       `json:"event_id,omitempty"`
	Reason          string           `json:"reason,omitempty"`
	Reference       string           `json:"reference,omitempty"`
	TransactionDate time.Time        `json:"transaction_date"`
	CreatedAt       time.Time        `json:"created_at"`
}

// WarningResponse is a non-blocking condition reported with a successful mutation
type WarningResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MutationResponse is the result of ApplyTransaction
type MutationResponse struct {
	Item        InventoryItemResponse `json:"item"`
	Transaction TransactionResponse   `json:"transaction"`
	Warnings    []WarningResponse     `json:"warnings"`
}

// SkippedItem is an item the event usage did not deduct
type SkippedItem struct {
	ItemID   uuid.UUID       `json:"item_id"`
	ItemName string          `json:"item_name"`
	Required decimal.Decimal `json:"required"`
	Unit     string          `json:"unit"`
	Reason   string          `json:"reason"`
}

// EventUsageResponse is the result of ApplyEventUsage
type EventUsageResponse struct {
	EventID      uuid.UUID             `json:"event_id"`
	Transactions []TransactionResponse `json:"transactions"`
	Skipped      []SkippedItem         `json:"skipped"`
	Warnings     []WarningResponse     `json:"warnings"`
}

// TransactionListFilter represents filter options for an item's ledger
type TransactionListFilter struct {
	TransactionType string     `form:"transaction_type" binding:"omitempty,oneof=purchase usage wastage adjustment"`
	EventID         *uuid.UUID `form:"-"`
	StartDate       *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate         *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page            int        `form:"page" binding:"omitempty,min=1"`
	PageSize        int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LedgerCheckResponse reports whether on-hand matches the ledger
type LedgerCheckResponse struct {
	ItemID           uuid.UUID       `json:"item_id"`
	OpeningQuantity  decimal.Decimal `json:"opening_quantity"`
	SignedTotal      decimal.Decimal `json:"signed_total"`
	ExpectedQuantity decimal.Decimal `json:"expected_quantity"`
	ActualQuantity   decimal.Decimal `json:"actual_quantity"`
	Transactions     int             `json:"transactions"`
	Consistent       bool            `json:"consistent"`
	Gap              string          `json:"gap,omitempty"`
}

// ToInventoryItemResponse converts a domain InventoryItem to InventoryItemResponse
func ToInventoryItemResponse(item *inventory.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:             item.ID,
		Name:           item.Name,
		Category:       item.Category,
		Unit:           item.Unit.String(),
		Quantity:       item.Quantity,
		MinThreshold:   item.MinThreshold,
		UnitPrice:      item.UnitPrice,
		StockValue:     decimal.Max(item.Quantity, decimal.Zero).Mul(item.UnitPrice),
		TrackingMode:   string(item.TrackingMode),
		IsActive:       item.IsActive,
		IsBelowMinimum: item.IsBelowThreshold(),
		HasDeficit:     item.HasDeficit(),
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
		Version:        item.Version,
	}
}

// ToInventoryItemResponses converts a slice of domain InventoryItems to responses
func ToInventoryItemResponses(items []inventory.InventoryItem) []InventoryItemResponse {
	responses := make([]InventoryItemResponse, len(items))
	for i := range items {
		responses[i] = ToInventoryItemResponse(&items[i])
	}
	return responses
}

// ToTransactionResponse converts a domain InventoryTransaction to TransactionResponse
func ToTransactionResponse(tx *inventory.InventoryTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		InventoryItemID: tx.InventoryItemID,
		TransactionType: tx.TransactionType.String(),
		Direction:       string(tx.Direction),
		Quantity:        tx.Quantity,
		Unit:            tx.Unit.String(),
		SignedQuantity:  tx.GetSignedQuantity(),
		InputQuantity:   tx.InputQuantity,
		InputUnit:       tx.InputUnit.String(),
		BalanceBefore:   tx.BalanceBefore,
		BalanceAfter:    tx.BalanceAfter,
		Cost:            tx.Cost,
		EventID:         tx.EventID,
		Reason:          tx.Reason,
		Reference:       tx.Reference,
		TransactionDate: tx.TransactionDate,
		CreatedAt:       tx.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain InventoryTransactions to responses
func ToTransactionResponses(txs []inventory.InventoryTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ToTransactionResponse(&txs[i])
	}
	return responses
}

// ToWarningResponses converts domain warnings for the response body
func ToWarningResponses(warnings []*shared.DomainError) []WarningResponse {
	responses := make([]WarningResponse, 0, len(warnings))
	for _, w := range warnings {
		responses = append(responses, WarningResponse{Code: w.Code, Message: w.Message})
	}
	return responses
}
