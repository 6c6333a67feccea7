package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Attribute keys used by engine metrics
var (
	AttrTransactionType = attribute.Key("transaction_type")
	AttrCategory        = attribute.Key("category")
)

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = errors.New("engine metrics: meter cannot be nil")

// StockMetricsProvider reports inventory health for periodic gauge collection
type StockMetricsProvider interface {
	CountBelowThreshold(ctx context.Context) (int64, error)
	CountInDeficit(ctx context.Context) (int64, error)
}

// EngineMetricsConfig holds configuration for engine metrics
type EngineMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	StockProvider   StockMetricsProvider
	CollectInterval time.Duration // default 5m
}

// EngineMetrics tracks ledger activity, costing and planning volume, and stock health
type EngineMetrics struct {
	logger   *zap.Logger
	provider StockMetricsProvider
	interval time.Duration

	transactions *Counter
	deficits     *Counter
	eventUsages  *Counter
	dishesCosted *Counter
	plans        *Counter
	planItems    *Histogram

	lowStockItems *Gauge
	deficitItems  *Gauge

	stopCh    chan struct{}
	stopOnce  sync.Once
	startOnce sync.Once
}

// NewEngineMetrics creates the engine instruments
func NewEngineMetrics(cfg EngineMetricsConfig) (*EngineMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := cfg.CollectInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	m := &EngineMetrics{
		logger:   logger,
		provider: cfg.StockProvider,
		interval: interval,
		stopCh:   make(chan struct{}),
	}

	var err error
	if m.transactions, err = NewCounter(cfg.Meter, "catering_inventory_transactions_total",
		"Inventory ledger entries appended", "{transactions}"); err != nil {
		return nil, err
	}
	if m.deficits, err = NewCounter(cfg.Meter, "catering_inventory_deficits_total",
		"Mutations that left an item below zero", "{mutations}"); err != nil {
		return nil, err
	}
	if m.eventUsages, err = NewCounter(cfg.Meter, "catering_event_usage_total",
		"Event usage postings", "{postings}"); err != nil {
		return nil, err
	}
	if m.dishesCosted, err = NewCounter(cfg.Meter, "catering_dishes_costed_total",
		"Dish cost computations", "{dishes}"); err != nil {
		return nil, err
	}
	if m.plans, err = NewCounter(cfg.Meter, "catering_plans_total",
		"Ingredient plans computed", "{plans}"); err != nil {
		return nil, err
	}
	if m.planItems, err = NewHistogram(cfg.Meter, "catering_plan_items",
		"Distinct items per plan or event usage", "{items}", 1, 5, 10, 25, 50, 100, 250); err != nil {
		return nil, err
	}
	if m.lowStockItems, err = NewGauge(cfg.Meter, "catering_inventory_low_stock_items",
		"Active stocked items at or below their minimum threshold", "{items}"); err != nil {
		return nil, err
	}
	if m.deficitItems, err = NewGauge(cfg.Meter, "catering_inventory_deficit_items",
		"Active items with negative on-hand quantity", "{items}"); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordTransaction counts one ledger entry
func (m *EngineMetrics) RecordTransaction(ctx context.Context, txType, category string) {
	m.transactions.Inc(ctx, AttrTransactionType.String(txType), AttrCategory.String(category))
}

// RecordStockDeficit counts a mutation that produced a deficit
func (m *EngineMetrics) RecordStockDeficit(ctx context.Context, category string) {
	m.deficits.Inc(ctx, AttrCategory.String(category))
}

// RecordEventUsage counts an event usage posting touching items distinct items
func (m *EngineMetrics) RecordEventUsage(ctx context.Context, items int) {
	m.eventUsages.Inc(ctx)
	m.planItems.Record(ctx, int64(items), attribute.String("source", "event_usage"))
}

// RecordDishesCosted counts n dish cost computations
func (m *EngineMetrics) RecordDishesCosted(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	m.dishesCosted.Add(ctx, int64(n))
}

// RecordPlan counts a computed plan with its item and to-buy line counts
func (m *EngineMetrics) RecordPlan(ctx context.Context, items, toBuy int) {
	m.plans.Inc(ctx)
	m.planItems.Record(ctx, int64(items), attribute.String("source", "plan"))
	m.planItems.Record(ctx, int64(toBuy), attribute.String("source", "shopping_list"))
}

// StartPeriodicCollection samples the stock gauges every interval until
// ctx is cancelled or Stop is called. Non-blocking; only the first call starts.
func (m *EngineMetrics) StartPeriodicCollection(ctx context.Context) {
	if m.provider == nil {
		m.logger.Debug("No stock metrics provider configured, skipping gauge collection")
		return
	}
	m.startOnce.Do(func() {
		go m.run(ctx)
	})
}

func (m *EngineMetrics) run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Collect(ctx)
	for {
		select {
		case <-m.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Collect(ctx)
		}
	}
}

// Collect samples the stock gauges once
func (m *EngineMetrics) Collect(ctx context.Context) {
	if m.provider == nil {
		return
	}
	if n, err := m.provider.CountBelowThreshold(ctx); err != nil {
		m.logger.Warn("Failed to count low stock items", zap.Error(err))
	} else {
		m.lowStockItems.Record(ctx, n)
	}
	if n, err := m.provider.CountInDeficit(ctx); err != nil {
		m.logger.Warn("Failed to count deficit items", zap.Error(err))
	} else {
		m.deficitItems.Record(ctx, n)
	}
}

// Stop ends periodic collection
func (m *EngineMetrics) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}
