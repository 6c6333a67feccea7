package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/planning"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPlanRecordRepository implements PlanRecordRepository using GORM
type GormPlanRecordRepository struct {
	db *gorm.DB
}

// NewGormPlanRecordRepository creates a new GormPlanRecordRepository
func NewGormPlanRecordRepository(db *gorm.DB) *GormPlanRecordRepository {
	return &GormPlanRecordRepository{db: db}
}

// Create stores a plan record
func (r *GormPlanRecordRepository) Create(ctx context.Context, record *planning.PlanRecord) error {
	return r.db.WithContext(ctx).Create(models.PlanRecordModelFromDomain(record)).Error
}

// FindByID finds a plan record by its ID
func (r *GormPlanRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*planning.PlanRecord, error) {
	var model models.PlanRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEvent lists the plans archived for a catering event, newest first
func (r *GormPlanRecordRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]planning.PlanRecord, error) {
	var recordModels []models.PlanRecordModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toPlanRecords(recordModels), nil
}

// FindAll lists plan records
func (r *GormPlanRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]planning.PlanRecord, error) {
	var recordModels []models.PlanRecordModel
	query := applyPaging(r.db.WithContext(ctx).Model(&models.PlanRecordModel{}), filter, PlanRecordSortFields, "created_at")
	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toPlanRecords(recordModels), nil
}

func toPlanRecords(recordModels []models.PlanRecordModel) []planning.PlanRecord {
	records := make([]planning.PlanRecord, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records
}

// Ensure GormPlanRecordRepository implements PlanRecordRepository
var _ planning.PlanRecordRepository = (*GormPlanRecordRepository)(nil)
