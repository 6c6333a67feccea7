package strategy

import (
	"context"

	"github.com/shopspring/decimal"
)

// Unit price strategy names
const (
	UnitPriceMovingAverage = "moving_average"
	UnitPriceLastPurchase  = "last_purchase"
	UnitPriceFixed         = "fixed"
)

// PurchaseContext describes a purchase for repricing.
// Quantities are in the item's canonical unit; PurchaseCost is the total paid.
type PurchaseContext struct {
	OnHandBefore      decimal.Decimal
	CurrentUnitPrice  decimal.Decimal
	PurchasedQuantity decimal.Decimal
	PurchaseCost      decimal.Decimal
}

// UnitPriceStrategy decides an item's price per canonical unit after a costed purchase
type UnitPriceStrategy interface {
	Strategy
	NextUnitPrice(ctx context.Context, pc PurchaseContext) (decimal.Decimal, error)
}
