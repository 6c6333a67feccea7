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

const belowThresholdCondition = "tracking_mode = 'stocked' AND min_threshold > 0 AND quantity < min_threshold"

// GormInventoryItemRepository implements InventoryItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// FindByID finds an inventory item by its ID
func (r *GormInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple inventory items by their IDs
func (r *GormInventoryItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.InventoryItem, error) {
	if len(ids) == 0 {
		return []inventory.InventoryItem{}, nil
	}

	var itemModels []models.InventoryItemModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return toInventoryItems(itemModels), nil
}

// FindAll finds all inventory items matching the filter
func (r *GormInventoryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryItem, error) {
	var itemModels []models.InventoryItemModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InventoryItemModel{}), filter)
	query = applyPaging(query, filter, InventoryItemSortFields, "name")

	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return toInventoryItems(itemModels), nil
}

// FindBelowThreshold finds active stocked items under their minimum threshold
func (r *GormInventoryItemRepository) FindBelowThreshold(ctx context.Context) ([]inventory.InventoryItem, error) {
	var itemModels []models.InventoryItemModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where(belowThresholdCondition).
		Order("name ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return toInventoryItems(itemModels), nil
}

// Save creates or updates an inventory item
func (r *GormInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	if err := r.db.WithContext(ctx).Save(models.InventoryItemModelFromDomain(item)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("ALREADY_EXISTS", "An inventory item named "+item.Name+" already exists")
		}
		return err
	}
	return nil
}

// SaveWithLock saves with optimistic locking. The row is updated only while its
// stored version still equals expectedVersion; otherwise another writer got there first.
func (r *GormInventoryItemRepository) SaveWithLock(ctx context.Context, item *inventory.InventoryItem, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryItemModel{}).
		Where("id = ? AND version = ?", item.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":          item.Name,
			"category":      item.Category,
			"unit":          string(item.Unit),
			"quantity":      item.Quantity,
			"unit_price":    item.UnitPrice,
			"min_threshold": item.MinThreshold,
			"tracking_mode": string(item.TrackingMode),
			"is_active":     item.IsActive,
			"version":       item.Version,
			"updated_at":    item.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeOptimisticLock, "Inventory item "+item.Name+" was modified by another transaction")
	}
	return nil
}

// Count counts inventory items matching the filter
func (r *GormInventoryItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InventoryItemModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies search and filter options without pagination
func (r *GormInventoryItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", searchPattern(filter.Search))
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "tracking_mode":
			query = query.Where("tracking_mode = ?", value)
		case "active":
			query = query.Where("is_active = ?", value)
		case "below_minimum":
			if value == true {
				query = query.Where(belowThresholdCondition)
			}
		}
	}

	return query
}

func toInventoryItems(itemModels []models.InventoryItemModel) []inventory.InventoryItem {
	items := make([]inventory.InventoryItem, len(itemModels))
	for i := range itemModels {
		items[i] = *itemModels[i].ToDomain()
	}
	return items
}

// Ensure GormInventoryItemRepository implements InventoryItemRepository
var _ inventory.InventoryItemRepository = (*GormInventoryItemRepository)(nil)
