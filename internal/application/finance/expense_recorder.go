package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/finance"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// ExpenseRecorder handles PurchaseRecordedEvent and books the purchase cost
// as an ingredients expense.
//
// The link is one-way: a failure here is logged and never reaches the stock
// mutation that raised the event. Replays of the same purchase are ignored
// because expenses are keyed by the ledger transaction ID.
type ExpenseRecorder struct {
	expenseRepo finance.ExpenseRepository
	logger      *zap.Logger
}

// NewExpenseRecorder creates a new handler for purchase recorded events
func NewExpenseRecorder(expenseRepo finance.ExpenseRepository, logger *zap.Logger) *ExpenseRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseRecorder{
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ExpenseRecorder) EventTypes() []string {
	return []string{inventory.EventTypePurchaseRecorded}
}

// Handle processes a PurchaseRecordedEvent by saving an Expense
func (h *ExpenseRecorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*inventory.PurchaseRecordedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", inventory.EventTypePurchaseRecorded),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypePurchaseRecorded, event.EventType())
	}

	if e.Cost == nil {
		h.logger.Debug("skipping expense - purchase has no cost",
			zap.String("transaction_id", e.TransactionID.String()),
			zap.String("item_name", e.ItemName),
		)
		return nil
	}

	existing, err := h.expenseRepo.FindBySourceTransaction(ctx, e.TransactionID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		h.logger.Error("failed to check existing expense",
			zap.String("transaction_id", e.TransactionID.String()),
			zap.Error(err),
		)
		return nil
	}
	if existing != nil {
		h.logger.Info("expense already recorded for purchase, skipping",
			zap.String("transaction_id", e.TransactionID.String()),
			zap.String("expense_id", existing.ID.String()),
		)
		return nil
	}

	description := fmt.Sprintf("Purchase of %s %s %s", e.Quantity.String(), e.Unit, e.ItemName)
	expense, err := finance.NewExpense(finance.ExpenseCategoryIngredients, finance.ExpenseSourceInventoryPurchase,
		*e.Cost, description, e.PurchasedAt)
	if err != nil {
		h.logger.Error("failed to build expense",
			zap.String("transaction_id", e.TransactionID.String()),
			zap.Error(err),
		)
		return nil
	}
	expense.Reference = e.Reference
	expense.LinkTransaction(e.InventoryItemID, e.TransactionID)

	if err := h.expenseRepo.Save(ctx, expense); err != nil {
		h.logger.Error("failed to save expense",
			zap.String("transaction_id", e.TransactionID.String()),
			zap.String("amount", e.Cost.String()),
			zap.Error(err),
		)
		return nil
	}

	h.logger.Info("expense recorded for purchase",
		zap.String("expense_id", expense.ID.String()),
		zap.String("transaction_id", e.TransactionID.String()),
		zap.String("item_name", e.ItemName),
		zap.String("amount", expense.Amount.String()),
	)
	return nil
}

var _ shared.EventHandler = (*ExpenseRecorder)(nil)
