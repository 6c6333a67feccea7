package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
)

// InventoryItemRepository defines the interface for inventory item persistence
type InventoryItemRepository interface {
	// FindByID finds an inventory item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindByIDs finds multiple inventory items by their IDs; missing IDs are skipped
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]InventoryItem, error)

	// FindAll finds items matching the filter (Filters: category, tracking_mode, active)
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)

	// FindBelowThreshold finds stocked items under their minimum threshold
	FindBelowThreshold(ctx context.Context) ([]InventoryItem, error)

	// Save creates or updates an inventory item
	Save(ctx context.Context, item *InventoryItem) error

	// SaveWithLock updates the item only if the stored version still equals
	// expectedVersion, the version the item had when it was loaded
	SaveWithLock(ctx context.Context, item *InventoryItem, expectedVersion int) error

	// Count counts inventory items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// TransactionFilter narrows ledger queries
type TransactionFilter struct {
	shared.Filter
	TransactionType *TransactionType
	EventID         *uuid.UUID
	From            *time.Time
	To              *time.Time
}

// InventoryTransactionRepository is the append-only ledger store.
// There is deliberately no update or delete.
type InventoryTransactionRepository interface {
	// Create appends a single transaction
	Create(ctx context.Context, tx *InventoryTransaction) error

	// CreateBatch appends several transactions
	CreateBatch(ctx context.Context, txs []*InventoryTransaction) error

	// FindByID finds a transaction by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryTransaction, error)

	// FindByItem lists an item's transactions, newest first
	FindByItem(ctx context.Context, itemID uuid.UUID, filter TransactionFilter) ([]InventoryTransaction, error)

	// FindAllByItem lists every transaction of an item in ledger order, oldest first
	FindAllByItem(ctx context.Context, itemID uuid.UUID) ([]InventoryTransaction, error)

	// FindByEvent lists transactions linked to a catering event
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]InventoryTransaction, error)

	// CountByItem counts an item's transactions matching the filter
	CountByItem(ctx context.Context, itemID uuid.UUID, filter TransactionFilter) (int64, error)
}
