package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormStockMetricsProvider implements StockMetricsProvider with direct
// aggregate queries on the inventory_items table.
type GormStockMetricsProvider struct {
	db *gorm.DB
}

// NewGormStockMetricsProvider creates a new GormStockMetricsProvider
func NewGormStockMetricsProvider(db *gorm.DB) *GormStockMetricsProvider {
	return &GormStockMetricsProvider{db: db}
}

// CountBelowThreshold counts active stocked items under their minimum threshold
func (p *GormStockMetricsProvider) CountBelowThreshold(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("inventory_items").
		Where("is_active = ? AND tracking_mode = ?", true, "stocked").
		Where("min_threshold > 0 AND quantity < min_threshold").
		Count(&count).Error
	return count, err
}

// CountInDeficit counts active stocked items with negative on-hand quantity
func (p *GormStockMetricsProvider) CountInDeficit(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("inventory_items").
		Where("is_active = ? AND tracking_mode = ?", true, "stocked").
		Where("quantity < 0").
		Count(&count).Error
	return count, err
}
