package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stockRow struct {
	ID           string `gorm:"primaryKey"`
	Quantity     float64
	MinThreshold float64
	TrackingMode string
	IsActive     bool
}

func (stockRow) TableName() string { return "inventory_items" }

func setupStockDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&stockRow{}))
	return db
}

func TestGormStockMetricsProvider(t *testing.T) {
	db := setupStockDB(t)
	rows := []stockRow{
		{ID: "onions", Quantity: 2, MinThreshold: 5, TrackingMode: "stocked", IsActive: true},
		{ID: "rice", Quantity: 50, MinThreshold: 10, TrackingMode: "stocked", IsActive: true},
		{ID: "ghee", Quantity: -1.5, MinThreshold: 2, TrackingMode: "stocked", IsActive: true},
		{ID: "salt", Quantity: 1, MinThreshold: 0, TrackingMode: "stocked", IsActive: true},
		{ID: "mint", Quantity: 0, MinThreshold: 1, TrackingMode: "on_demand", IsActive: true},
		{ID: "saffron", Quantity: -2, MinThreshold: 1, TrackingMode: "stocked", IsActive: false},
	}
	require.NoError(t, db.Create(&rows).Error)

	p := NewGormStockMetricsProvider(db)
	ctx := context.Background()

	low, err := p.CountBelowThreshold(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), low)

	deficit, err := p.CountInDeficit(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deficit)
}

func TestRegisterDBTracing(t *testing.T) {
	t.Run("disabled is a no-op", func(t *testing.T) {
		db := setupStockDB(t)
		assert.NoError(t, RegisterDBTracing(db, DBTracingConfig{Enabled: false}, nil))
	})

	t.Run("enabled registers callbacks and queries still work", func(t *testing.T) {
		db := setupStockDB(t)
		require.NoError(t, RegisterDBTracing(db, DBTracingConfig{Enabled: true, DBSystem: "sqlite"}, nil))

		require.NoError(t, db.Create(&stockRow{ID: "rice", TrackingMode: "stocked", IsActive: true}).Error)
		var count int64
		require.NoError(t, db.Model(&stockRow{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}
