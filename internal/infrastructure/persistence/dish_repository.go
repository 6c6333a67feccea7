package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDishRepository implements DishRepository using GORM.
// Lines live in dish_lines and are always loaded and replaced with their dish.
type GormDishRepository struct {
	db *gorm.DB
}

// NewGormDishRepository creates a new GormDishRepository
func NewGormDishRepository(db *gorm.DB) *GormDishRepository {
	return &GormDishRepository{db: db}
}

// FindByID finds a dish with its lines
func (r *GormDishRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.Dish, error) {
	var model models.DishModel
	if err := r.withLines(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds several dishes; unknown IDs are skipped
func (r *GormDishRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]menu.Dish, error) {
	if len(ids) == 0 {
		return []menu.Dish{}, nil
	}
	var dishModels []models.DishModel
	if err := r.withLines(r.db.WithContext(ctx)).Where("id IN ?", ids).Find(&dishModels).Error; err != nil {
		return nil, err
	}
	return toDishes(dishModels), nil
}

// FindAll finds dishes matching the filter
func (r *GormDishRepository) FindAll(ctx context.Context, filter shared.Filter) ([]menu.Dish, error) {
	var dishModels []models.DishModel
	query := r.applyFilter(r.withLines(r.db.WithContext(ctx)).Model(&models.DishModel{}), filter)
	query = applyPaging(query, filter, DishSortFields, "name")

	if err := query.Find(&dishModels).Error; err != nil {
		return nil, err
	}
	return toDishes(dishModels), nil
}

// FindActive returns every active dish ordered by name
func (r *GormDishRepository) FindActive(ctx context.Context) ([]menu.Dish, error) {
	var dishModels []models.DishModel
	if err := r.withLines(r.db.WithContext(ctx)).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&dishModels).Error; err != nil {
		return nil, err
	}
	return toDishes(dishModels), nil
}

// FindByItem finds dishes with at least one line on the inventory item
func (r *GormDishRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]menu.Dish, error) {
	usage := r.db.WithContext(ctx).Model(&models.DishLineModel{}).
		Select("dish_id").
		Where("inventory_item_id = ?", itemID)

	var dishModels []models.DishModel
	if err := r.withLines(r.db.WithContext(ctx)).
		Where("id IN (?)", usage).
		Order("name ASC").
		Find(&dishModels).Error; err != nil {
		return nil, err
	}
	return toDishes(dishModels), nil
}

// Save creates or updates a dish and replaces its lines atomically
func (r *GormDishRepository) Save(ctx context.Context, dish *menu.Dish) error {
	model := models.DishModelFromDomain(dish)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("dish_id = ?", model.ID).Delete(&models.DishLineModel{}).Error; err != nil {
			return err
		}
		if len(model.Lines) == 0 {
			return nil
		}
		return tx.Create(&model.Lines).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainError("ALREADY_EXISTS", "A dish named "+dish.Name+" already exists")
	}
	return err
}

// SaveCostCache persists only the cached cost per plate
func (r *GormDishRepository) SaveCostCache(ctx context.Context, dishID uuid.UUID, cache menu.CostCache) error {
	cost, at := models.CostCacheColumns(cache)
	result := r.db.WithContext(ctx).
		Model(&models.DishModel{}).
		Where("id = ?", dishID).
		UpdateColumns(map[string]interface{}{
			"cached_cost_per_plate": cost,
			"cost_computed_at":      at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts dishes matching the filter
func (r *GormDishRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DishModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDishRepository) withLines(query *gorm.DB) *gorm.DB {
	return query.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *GormDishRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", searchPattern(filter.Search))
	}
	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "active":
			query = query.Where("is_active = ?", value)
		}
	}
	return query
}

func toDishes(dishModels []models.DishModel) []menu.Dish {
	dishes := make([]menu.Dish, len(dishModels))
	for i := range dishModels {
		dishes[i] = *dishModels[i].ToDomain()
	}
	return dishes
}

// Ensure GormDishRepository implements DishRepository
var _ menu.DishRepository = (*GormDishRepository)(nil)
