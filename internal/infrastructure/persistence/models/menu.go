package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DishModel is the persistence model for the Dish aggregate root.
type DishModel struct {
	AggregateModel
	Name                 string           `gorm:"type:varchar(200);not null;uniqueIndex"`
	Category             string           `gorm:"type:varchar(50);index"`
	Description          string           `gorm:"type:text"`
	ServingsPerBatch     int              `gorm:"not null;default:1"`
	SellingPricePerPlate decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CachedCostPerPlate   *decimal.Decimal `gorm:"type:decimal(18,4)"`
	CostComputedAt       *time.Time
	IsActive             bool            `gorm:"not null;index"`
	Lines                []DishLineModel `gorm:"foreignKey:DishID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (DishModel) TableName() string {
	return "dishes"
}

// ToDomain converts the persistence model to a domain Dish.
// A NULL cached cost maps to an invalid CostCache.
func (m *DishModel) ToDomain() *menu.Dish {
	dish := &menu.Dish{
		BaseAggregateRoot:    m.ToAggregateRoot(),
		Name:                 m.Name,
		Category:             m.Category,
		Description:          m.Description,
		Lines:                make([]menu.IngredientLine, len(m.Lines)),
		ServingsPerBatch:     m.ServingsPerBatch,
		SellingPricePerPlate: m.SellingPricePerPlate,
		IsActive:             m.IsActive,
	}
	for i, line := range m.Lines {
		dish.Lines[i] = line.ToDomain()
	}
	if m.CachedCostPerPlate != nil {
		dish.EstimatedCostPerPlate = menu.CostCache{
			CostPerPlate: *m.CachedCostPerPlate,
			Valid:        true,
		}
		if m.CostComputedAt != nil {
			dish.EstimatedCostPerPlate.ComputedAt = *m.CostComputedAt
		}
	}
	return dish
}

// FromDomain populates the persistence model from a domain Dish.
func (m *DishModel) FromDomain(d *menu.Dish) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Name = d.Name
	m.Category = d.Category
	m.Description = d.Description
	m.ServingsPerBatch = d.ServingsPerBatch
	m.SellingPricePerPlate = d.SellingPricePerPlate
	m.IsActive = d.IsActive
	m.CachedCostPerPlate, m.CostComputedAt = CostCacheColumns(d.EstimatedCostPerPlate)
	m.Lines = make([]DishLineModel, len(d.Lines))
	for i, line := range d.Lines {
		m.Lines[i] = DishLineModelFromDomain(d.ID, i, line)
	}
}

// DishModelFromDomain creates a new persistence model from a domain Dish.
func DishModelFromDomain(d *menu.Dish) *DishModel {
	m := &DishModel{}
	m.FromDomain(d)
	return m
}

// CostCacheColumns maps a CostCache to its nullable columns; an invalid cache is stored as NULL
func CostCacheColumns(c menu.CostCache) (*decimal.Decimal, *time.Time) {
	if !c.Valid {
		return nil, nil
	}
	cost := c.CostPerPlate
	at := c.ComputedAt
	return &cost, &at
}

// DishLineModel is one ingredient line of a dish, quantified per plate.
type DishLineModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	DishID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit            string          `gorm:"type:varchar(20);not null"`
	Note            string          `gorm:"type:varchar(200)"`
	Position        int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (DishLineModel) TableName() string {
	return "dish_lines"
}

// ToDomain converts the persistence model to a domain IngredientLine.
func (m *DishLineModel) ToDomain() menu.IngredientLine {
	return menu.IngredientLine{
		ID:              m.ID,
		InventoryItemID: m.InventoryItemID,
		Quantity:        m.Quantity,
		Unit:            valueobject.Unit(m.Unit),
		Note:            m.Note,
	}
}

// DishLineModelFromDomain creates a line model at the given position of the dish
func DishLineModelFromDomain(dishID uuid.UUID, position int, l menu.IngredientLine) DishLineModel {
	return DishLineModel{
		ID:              l.ID,
		DishID:          dishID,
		InventoryItemID: l.InventoryItemID,
		Quantity:        l.Quantity,
		Unit:            string(l.Unit),
		Note:            l.Note,
		Position:        position,
	}
}
