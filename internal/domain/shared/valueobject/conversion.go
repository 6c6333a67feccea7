package valueobject

import (
	"fmt"
	"sort"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ConversionTable holds conversion factors keyed by unit family.
// Each factor states how many family base units one unit is worth
// (for mass: g = 1, kg = 1000). A family without factors, like Count,
// has no convertible pairs: only identity conversions succeed there.
type ConversionTable struct {
	factors map[UnitFamily]map[Unit]decimal.Decimal
}

// NewConversionTable builds a table from per-family factors.
// Returns error if a unit is listed under a family it does not belong to,
// or if a factor is zero or negative.
func NewConversionTable(factors map[UnitFamily]map[Unit]decimal.Decimal) (*ConversionTable, error) {
	t := &ConversionTable{factors: make(map[UnitFamily]map[Unit]decimal.Decimal, len(factors))}
	for family, units := range factors {
		copied := make(map[Unit]decimal.Decimal, len(units))
		for unit, factor := range units {
			if unit.Family() != family {
				return nil, fmt.Errorf("unit %s is not a %s unit", unit, family)
			}
			if !factor.IsPositive() {
				return nil, fmt.Errorf("factor for %s must be positive, got %s", unit, factor)
			}
			copied[unit] = factor
		}
		t.factors[family] = copied
	}
	return t, nil
}

// DefaultConversionTable returns the catering table: g/kg and ml/liters at
// a factor of 1000, with count-like units left non-convertible.
func DefaultConversionTable() *ConversionTable {
	thousand := decimal.NewFromInt(1000)
	t, _ := NewConversionTable(map[UnitFamily]map[Unit]decimal.Decimal{
		FamilyMass: {
			UnitGram:     decimal.NewFromInt(1),
			UnitKilogram: thousand,
		},
		FamilyVolume: {
			UnitMilliliter: decimal.NewFromInt(1),
			UnitLiter:      thousand,
		},
	})
	return t
}

// fallbackTable serves methods called on a nil *ConversionTable.
var fallbackTable = DefaultConversionTable()

// orDefault lets a nil table behave as the default table.
func (t *ConversionTable) orDefault() *ConversionTable {
	if t == nil {
		return fallbackTable
	}
	return t
}

// CanConvert reports whether Convert would succeed for the pair.
func (t *ConversionTable) CanConvert(from, to Unit) bool {
	_, err := t.Factor(from, to)
	return err == nil
}

// Factor returns the multiplier that turns a quantity in from into one in to.
func (t *ConversionTable) Factor(from, to Unit) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	fromFactor, toFactor, err := t.lookup(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return fromFactor.Div(toFactor), nil
}

// Convert expresses qty given in from as a quantity in to.
// Converting a unit to itself is the identity for every unit.
func (t *ConversionTable) Convert(qty decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	if from == to {
		return qty, nil
	}
	fromFactor, toFactor, err := t.lookup(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return qty.Mul(fromFactor).Div(toFactor), nil
}

func (t *ConversionTable) lookup(from, to Unit) (decimal.Decimal, decimal.Decimal, error) {
	if from.Family() != to.Family() || from.Family() == FamilyUnknown {
		return decimal.Zero, decimal.Zero, incompatible(from, to)
	}
	units := t.orDefault().factors[from.Family()]
	fromFactor, okFrom := units[from]
	toFactor, okTo := units[to]
	if !okFrom || !okTo {
		return decimal.Zero, decimal.Zero, incompatible(from, to)
	}
	return fromFactor, toFactor, nil
}

// ConvertibleUnits lists the units reachable from u, u included, sorted by code.
func (t *ConversionTable) ConvertibleUnits(u Unit) []Unit {
	t = t.orDefault()
	units := []Unit{u}
	for other := range t.factors[u.Family()] {
		if other != u && t.CanConvert(u, other) {
			units = append(units, other)
		}
	}
	sort.Slice(units[1:], func(i, j int) bool { return units[i+1] < units[j+1] })
	return units
}

func incompatible(from, to Unit) error {
	return shared.NewDomainError(shared.CodeIncompatibleUnits,
		fmt.Sprintf("cannot convert %s (%s) to %s (%s)", from, from.Family(), to, to.Family()))
}
