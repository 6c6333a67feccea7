package planning

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PlanRecord is an archived plan: the JSON snapshot lives in object storage,
// the record keeps what is needed to find and summarize it.
type PlanRecord struct {
	shared.BaseEntity
	Name          string
	EventID       *uuid.UUID
	ObjectKey     string
	TotalServings int
	ItemCount     int
	ToBuyCount    int
	EstimatedCost decimal.Decimal
	PlannedFor    *time.Time
}

// NewPlanRecord creates a record for an archived plan
func NewPlanRecord(name string, eventID *uuid.UUID, objectKey string) (*PlanRecord, error) {
	if objectKey == "" {
		return nil, shared.NewDomainError("INVALID_OBJECT_KEY", "Plan archive key cannot be empty")
	}
	if name == "" {
		name = "plan"
	}
	return &PlanRecord{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          name,
		EventID:       eventID,
		ObjectKey:     objectKey,
		EstimatedCost: decimal.Zero,
	}, nil
}

// PlanRecordRepository persists archived plan records
type PlanRecordRepository interface {
	Create(ctx context.Context, record *PlanRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*PlanRecord, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]PlanRecord, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PlanRecord, error)
}
