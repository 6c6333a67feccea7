package cost

import (
	"context"
	"errors"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
)

// LastPurchaseStrategy prices an item at what was paid per unit in the latest purchase
type LastPurchaseStrategy struct {
	strategy.BaseStrategy
}

// NewLastPurchaseStrategy creates a new last purchase strategy
func NewLastPurchaseStrategy() *LastPurchaseStrategy {
	return &LastPurchaseStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			strategy.UnitPriceLastPurchase,
			strategy.StrategyTypeUnitPrice,
			"Unit price of the most recent purchase",
		),
	}
}

// NextUnitPrice returns cost / purchased quantity
func (s *LastPurchaseStrategy) NextUnitPrice(ctx context.Context, pc strategy.PurchaseContext) (decimal.Decimal, error) {
	if !pc.PurchasedQuantity.IsPositive() {
		return decimal.Zero, errors.New("purchased quantity must be positive")
	}
	return pc.PurchaseCost.Div(pc.PurchasedQuantity).Round(4), nil
}

// FixedStrategy never changes the price; it is maintained by hand
type FixedStrategy struct {
	strategy.BaseStrategy
}

// NewFixedStrategy creates a new fixed strategy
func NewFixedStrategy() *FixedStrategy {
	return &FixedStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			strategy.UnitPriceFixed,
			strategy.StrategyTypeUnitPrice,
			"Keep the catalog price regardless of purchases",
		),
	}
}

// NextUnitPrice returns the current price unchanged
func (s *FixedStrategy) NextUnitPrice(ctx context.Context, pc strategy.PurchaseContext) (decimal.Decimal, error) {
	return pc.CurrentUnitPrice, nil
}
