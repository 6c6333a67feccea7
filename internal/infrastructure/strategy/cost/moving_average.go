package cost

import (
	"context"
	"errors"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
)

// MovingAverageStrategy reprices an item with the weighted average of the stock
// already on hand and the purchase just made
type MovingAverageStrategy struct {
	strategy.BaseStrategy
}

// NewMovingAverageStrategy creates a new moving average strategy
func NewMovingAverageStrategy() *MovingAverageStrategy {
	return &MovingAverageStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			strategy.UnitPriceMovingAverage,
			strategy.StrategyTypeUnitPrice,
			"Weighted moving average of on-hand stock and new purchases",
		),
	}
}

// NextUnitPrice returns (onHand x price + cost) / (onHand + purchased).
// Negative or zero stock on hand contributes nothing, so the purchase price wins.
func (s *MovingAverageStrategy) NextUnitPrice(ctx context.Context, pc strategy.PurchaseContext) (decimal.Decimal, error) {
	if !pc.PurchasedQuantity.IsPositive() {
		return decimal.Zero, errors.New("purchased quantity must be positive")
	}
	if pc.PurchaseCost.IsNegative() {
		return decimal.Zero, errors.New("purchase cost cannot be negative")
	}

	onHand := decimal.Max(pc.OnHandBefore, decimal.Zero)
	totalQty := onHand.Add(pc.PurchasedQuantity)
	totalValue := onHand.Mul(pc.CurrentUnitPrice).Add(pc.PurchaseCost)

	return totalValue.Div(totalQty).Round(4), nil
}
