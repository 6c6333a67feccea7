package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// Alert types sent to kitchen operators
const (
	AlertTypeLowStock   = "low_stock"
	AlertTypeOutOfStock = "out_of_stock"
	AlertTypeDeficit    = "deficit"
)

// StockAlertNotifier sends stock alerts to operators (mail, chat, logs)
type StockAlertNotifier interface {
	SendAlert(ctx context.Context, alert StockAlert) error
}

// StockAlert represents a stock level alert
type StockAlert struct {
	InventoryItemID string `json:"inventory_item_id"`
	ItemName        string `json:"item_name"`
	Category        string `json:"category,omitempty"`
	Quantity        string `json:"quantity"`
	MinThreshold    string `json:"min_threshold,omitempty"`
	Unit            string `json:"unit"`
	EventID         string `json:"event_id,omitempty"`
	AlertType       string `json:"alert_type"`
}

// Subject is a one-line summary suitable for a mail subject
func (a StockAlert) Subject() string {
	switch a.AlertType {
	case AlertTypeDeficit:
		return fmt.Sprintf("Stock deficit: %s at %s %s", a.ItemName, a.Quantity, a.Unit)
	case AlertTypeOutOfStock:
		return fmt.Sprintf("Out of stock: %s", a.ItemName)
	default:
		return fmt.Sprintf("Low stock: %s at %s %s (min %s)", a.ItemName, a.Quantity, a.Unit, a.MinThreshold)
	}
}

// StockAlertHandler turns StockBelowThreshold and StockDeficit events into operator alerts.
// Repeated alerts for the same item and type are suppressed within MinInterval.
type StockAlertHandler struct {
	logger      *zap.Logger
	notifier    StockAlertNotifier
	minInterval time.Duration

	mu       sync.Mutex
	lastSent map[string]time.Time
	now      func() time.Time
}

// NewStockAlertHandler creates a new handler for stock alert events
func NewStockAlertHandler(logger *zap.Logger) *StockAlertHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockAlertHandler{
		logger:   logger,
		lastSent: make(map[string]time.Time),
		now:      time.Now,
	}
}

// WithNotifier sets the notifier for sending alerts
func (h *StockAlertHandler) WithNotifier(notifier StockAlertNotifier) *StockAlertHandler {
	h.notifier = notifier
	return h
}

// WithMinInterval sets the per item throttle window. Zero disables throttling.
func (h *StockAlertHandler) WithMinInterval(d time.Duration) *StockAlertHandler {
	h.minInterval = d
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *StockAlertHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowThreshold, inventory.EventTypeStockDeficit}
}

// Handle processes a StockBelowThresholdEvent or StockDeficitEvent
func (h *StockAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var alert StockAlert

	switch e := event.(type) {
	case *inventory.StockBelowThresholdEvent:
		alert = StockAlert{
			InventoryItemID: e.InventoryItemID.String(),
			ItemName:        e.ItemName,
			Category:        e.Category,
			Quantity:        e.Quantity.String(),
			MinThreshold:    e.MinThreshold.String(),
			Unit:            e.Unit.String(),
			AlertType:       AlertTypeLowStock,
		}
		if !e.Quantity.IsPositive() {
			alert.AlertType = AlertTypeOutOfStock
		}
		h.logger.Warn("stock below threshold detected",
			zap.String("inventory_item_id", alert.InventoryItemID),
			zap.String("item_name", e.ItemName),
			zap.String("quantity", alert.Quantity),
			zap.String("min_threshold", alert.MinThreshold),
			zap.String("shortage", e.Shortage().String()),
		)
	case *inventory.StockDeficitEvent:
		alert = StockAlert{
			InventoryItemID: e.InventoryItemID.String(),
			ItemName:        e.ItemName,
			Quantity:        e.Quantity.String(),
			Unit:            e.Unit.String(),
			AlertType:       AlertTypeDeficit,
		}
		if e.CateringEventID != nil {
			alert.EventID = e.CateringEventID.String()
		}
		h.logger.Warn("stock deficit detected",
			zap.String("inventory_item_id", alert.InventoryItemID),
			zap.String("item_name", e.ItemName),
			zap.String("quantity", alert.Quantity),
			zap.String("event_id", alert.EventID),
		)
	default:
		h.logger.Error("unexpected event type",
			zap.Strings("expected", h.EventTypes()),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	if h.notifier == nil || h.throttled(alert) {
		return nil
	}

	if err := h.notifier.SendAlert(ctx, alert); err != nil {
		// Notification failure must not fail event handling
		h.logger.Error("failed to send stock alert notification",
			zap.String("inventory_item_id", alert.InventoryItemID),
			zap.Error(err),
		)
		return nil
	}
	h.logger.Info("stock alert notification sent",
		zap.String("inventory_item_id", alert.InventoryItemID),
		zap.String("alert_type", alert.AlertType),
	)
	return nil
}

func (h *StockAlertHandler) throttled(alert StockAlert) bool {
	if h.minInterval <= 0 {
		return false
	}
	key := alert.InventoryItemID + "|" + alert.AlertType
	now := h.now()

	h.mu.Lock()
	defer h.mu.Unlock()
	if last, ok := h.lastSent[key]; ok && now.Sub(last) < h.minInterval {
		return true
	}
	h.lastSent[key] = now
	return false
}

var _ shared.EventHandler = (*StockAlertHandler)(nil)

// LoggingStockAlertNotifier is a notifier that only logs alerts.
// It is used when mail is not configured.
type LoggingStockAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingStockAlertNotifier creates a new logging notifier
func NewLoggingStockAlertNotifier(logger *zap.Logger) *LoggingStockAlertNotifier {
	return &LoggingStockAlertNotifier{
		logger: logger,
	}
}

// SendAlert logs the stock alert
func (n *LoggingStockAlertNotifier) SendAlert(_ context.Context, alert StockAlert) error {
	n.logger.Warn("STOCK ALERT",
		zap.String("type", alert.AlertType),
		zap.String("item", alert.ItemName),
		zap.String("quantity", alert.Quantity),
		zap.String("unit", alert.Unit),
		zap.String("min_threshold", alert.MinThreshold),
	)
	return nil
}
