package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInventoryTransactionRepository implements InventoryTransactionRepository using GORM.
// The ledger is append-only: there is no update or delete path.
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new GormInventoryTransactionRepository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// Create appends a transaction
func (r *GormInventoryTransactionRepository) Create(ctx context.Context, tx *inventory.InventoryTransaction) error {
	return r.db.WithContext(ctx).Create(models.InventoryTransactionModelFromDomain(tx)).Error
}

// CreateBatch appends several transactions in one insert
func (r *GormInventoryTransactionRepository) CreateBatch(ctx context.Context, txs []*inventory.InventoryTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	rows := make([]*models.InventoryTransactionModel, len(txs))
	for i, tx := range txs {
		rows[i] = models.InventoryTransactionModelFromDomain(tx)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// FindByID finds a transaction by its ID
func (r *GormInventoryTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	var model models.InventoryTransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByItem lists an item's transactions, newest first
func (r *GormInventoryTransactionRepository) FindByItem(ctx context.Context, itemID uuid.UUID, filter inventory.TransactionFilter) ([]inventory.InventoryTransaction, error) {
	var txModels []models.InventoryTransactionModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InventoryTransactionModel{}).Where("inventory_item_id = ?", itemID),
		filter,
	)
	query = applyPaging(query, filter.Filter, InventoryTransactionSortFields, "transaction_date")

	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}
	return toInventoryTransactions(txModels), nil
}

// FindAllByItem lists every transaction of an item in insertion order. Rows
// written within one clock tick fall back to their time-ordered IDs.
func (r *GormInventoryTransactionRepository) FindAllByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	var txModels []models.InventoryTransactionModel
	if err := r.db.WithContext(ctx).
		Where("inventory_item_id = ?", itemID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&txModels).Error; err != nil {
		return nil, err
	}
	return toInventoryTransactions(txModels), nil
}

// FindByEvent lists transactions linked to a catering event
func (r *GormInventoryTransactionRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	var txModels []models.InventoryTransactionModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("transaction_date ASC").
		Find(&txModels).Error; err != nil {
		return nil, err
	}
	return toInventoryTransactions(txModels), nil
}

// CountByItem counts an item's transactions matching the filter
func (r *GormInventoryTransactionRepository) CountByItem(ctx context.Context, itemID uuid.UUID, filter inventory.TransactionFilter) (int64, error) {
	var count int64
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InventoryTransactionModel{}).Where("inventory_item_id = ?", itemID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies the typed ledger filters without pagination
func (r *GormInventoryTransactionRepository) applyFilter(query *gorm.DB, filter inventory.TransactionFilter) *gorm.DB {
	if filter.TransactionType != nil {
		query = query.Where("transaction_type = ?", string(*filter.TransactionType))
	}
	if filter.EventID != nil {
		query = query.Where("event_id = ?", *filter.EventID)
	}
	if filter.From != nil {
		query = query.Where("transaction_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("transaction_date <= ?", *filter.To)
	}
	return query
}

func toInventoryTransactions(txModels []models.InventoryTransactionModel) []inventory.InventoryTransaction {
	txs := make([]inventory.InventoryTransaction, len(txModels))
	for i := range txModels {
		txs[i] = *txModels[i].ToDomain()
	}
	return txs
}

// Ensure GormInventoryTransactionRepository implements InventoryTransactionRepository
var _ inventory.InventoryTransactionRepository = (*GormInventoryTransactionRepository)(nil)
