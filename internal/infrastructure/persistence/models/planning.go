package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/planning"
	"github.com/shopspring/decimal"
)

// PlanRecordModel is the persistence model for an archived plan.
type PlanRecordModel struct {
	BaseModel
	Name          string          `gorm:"type:varchar(200);not null"`
	EventID       *uuid.UUID      `gorm:"type:uuid;index"`
	ObjectKey     string          `gorm:"type:varchar(500);not null;uniqueIndex"`
	TotalServings int             `gorm:"not null;default:0"`
	ItemCount     int             `gorm:"not null;default:0"`
	ToBuyCount    int             `gorm:"not null;default:0"`
	EstimatedCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PlannedFor    *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (PlanRecordModel) TableName() string {
	return "plan_records"
}

// ToDomain converts the persistence model to a domain PlanRecord.
func (m *PlanRecordModel) ToDomain() *planning.PlanRecord {
	return &planning.PlanRecord{
		BaseEntity:    m.BaseModel.ToDomain(),
		Name:          m.Name,
		EventID:       m.EventID,
		ObjectKey:     m.ObjectKey,
		TotalServings: m.TotalServings,
		ItemCount:     m.ItemCount,
		ToBuyCount:    m.ToBuyCount,
		EstimatedCost: m.EstimatedCost,
		PlannedFor:    m.PlannedFor,
	}
}

// FromDomain populates the persistence model from a domain PlanRecord.
func (m *PlanRecordModel) FromDomain(r *planning.PlanRecord) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Name = r.Name
	m.EventID = r.EventID
	m.ObjectKey = r.ObjectKey
	m.TotalServings = r.TotalServings
	m.ItemCount = r.ItemCount
	m.ToBuyCount = r.ToBuyCount
	m.EstimatedCost = r.EstimatedCost
	m.PlannedFor = r.PlannedFor
}

// PlanRecordModelFromDomain creates a new persistence model from a domain PlanRecord.
func PlanRecordModelFromDomain(r *planning.PlanRecord) *PlanRecordModel {
	m := &PlanRecordModel{}
	m.FromDomain(r)
	return m
}
