package valueobject

import (
	"fmt"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Quantity is an amount paired with its unit.
type Quantity struct {
	Amount decimal.Decimal
	Unit   Unit
}

// NewPositiveQuantity validates that amount > 0 and unit is known.
func NewPositiveQuantity(amount decimal.Decimal, unit Unit) (Quantity, error) {
	if !amount.IsPositive() {
		return Quantity{}, shared.NewDomainError(shared.CodeInvalidQuantity,
			fmt.Sprintf("quantity must be greater than zero, got %s", amount))
	}
	if !unit.IsValid() {
		return Quantity{}, shared.NewDomainError("INVALID_UNIT", fmt.Sprintf("unknown unit %q", unit))
	}
	return Quantity{Amount: amount, Unit: unit}, nil
}

// In converts the quantity into the target unit using the table.
func (q Quantity) In(table *ConversionTable, target Unit) (Quantity, error) {
	amount, err := table.Convert(q.Amount, q.Unit, target)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Amount: amount, Unit: target}, nil
}

// String renders "<amount> <unit>"
func (q Quantity) String() string {
	return fmt.Sprintf("%s %s", q.Amount.String(), q.Unit)
}
