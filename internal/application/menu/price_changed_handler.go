package menu

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// CostCacheRefresher recomputes stored dish costs for dishes using an item
type CostCacheRefresher interface {
	RefreshCostCaches(ctx context.Context, itemID uuid.UUID) (int, error)
}

// UnitPriceChangedHandler keeps dish cost caches in step with ingredient prices.
// It recomputes every dish that uses the repriced item.
type UnitPriceChangedHandler struct {
	refresher CostCacheRefresher
	logger    *zap.Logger
}

// NewUnitPriceChangedHandler creates a new UnitPriceChangedHandler
func NewUnitPriceChangedHandler(refresher CostCacheRefresher, logger *zap.Logger) *UnitPriceChangedHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnitPriceChangedHandler{refresher: refresher, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *UnitPriceChangedHandler) EventTypes() []string {
	return []string{inventory.EventTypeUnitPriceChanged}
}

// Handle processes a UnitPriceChangedEvent
func (h *UnitPriceChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*inventory.UnitPriceChangedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", inventory.EventTypeUnitPriceChanged),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeUnitPriceChanged, event.EventType())
	}

	h.logger.Debug("refreshing dish costs after price change",
		zap.String("inventory_item_id", e.InventoryItemID.String()),
		zap.String("old_price", e.OldPrice.String()),
		zap.String("new_price", e.NewPrice.String()),
	)

	n, err := h.refresher.RefreshCostCaches(ctx, e.InventoryItemID)
	if err != nil {
		h.logger.Error("failed to refresh dish cost caches",
			zap.String("inventory_item_id", e.InventoryItemID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("refresh dish costs for item %s: %w", e.InventoryItemID, err)
	}

	h.logger.Info("dish costs refreshed after price change",
		zap.String("inventory_item_id", e.InventoryItemID.String()),
		zap.Int("dishes", n),
	)
	return nil
}

var _ shared.EventHandler = (*UnitPriceChangedHandler)(nil)
