package valueobject

import (
	"fmt"
	"strings"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
)

// UnitFamily groups units that measure the same dimension.
type UnitFamily int

const (
	FamilyUnknown UnitFamily = iota
	FamilyMass
	FamilyVolume
	FamilyCount
)

// String returns the family name
func (f UnitFamily) String() string {
	switch f {
	case FamilyMass:
		return "mass"
	case FamilyVolume:
		return "volume"
	case FamilyCount:
		return "count"
	default:
		return "unknown"
	}
}

// Unit is a unit of measurement used by ingredient lines, stock and transactions.
// Values are lower-case codes as stored in the database.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "liters"
	UnitPiece      Unit = "pieces"
	UnitCup        Unit = "cups"
	UnitTablespoon Unit = "tbsp"
	UnitTeaspoon   Unit = "tsp"
)

var unitAliases = map[string]Unit{
	"g":           UnitGram,
	"gm":          UnitGram,
	"gram":        UnitGram,
	"grams":       UnitGram,
	"kg":          UnitKilogram,
	"kgs":         UnitKilogram,
	"kilogram":    UnitKilogram,
	"kilograms":   UnitKilogram,
	"ml":          UnitMilliliter,
	"milliliter":  UnitMilliliter,
	"milliliters": UnitMilliliter,
	"millilitre":  UnitMilliliter,
	"l":           UnitLiter,
	"liter":       UnitLiter,
	"liters":      UnitLiter,
	"litre":       UnitLiter,
	"litres":      UnitLiter,
	"pc":          UnitPiece,
	"pcs":         UnitPiece,
	"piece":       UnitPiece,
	"pieces":      UnitPiece,
	"cup":         UnitCup,
	"cups":        UnitCup,
	"tbsp":        UnitTablespoon,
	"tablespoon":  UnitTablespoon,
	"tablespoons": UnitTablespoon,
	"tsp":         UnitTeaspoon,
	"teaspoon":    UnitTeaspoon,
	"teaspoons":   UnitTeaspoon,
}

// ParseUnit normalizes a unit string, accepting common spellings.
func ParseUnit(s string) (Unit, error) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", shared.NewDomainError("INVALID_UNIT", fmt.Sprintf("Unknown unit %q", s))
	}
	return u, nil
}

// MustParseUnit parses a unit and panics on error.
// Use only for literals known to be valid.
func MustParseUnit(s string) Unit {
	u, err := ParseUnit(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Family returns the dimension the unit measures.
func (u Unit) Family() UnitFamily {
	switch u {
	case UnitGram, UnitKilogram:
		return FamilyMass
	case UnitMilliliter, UnitLiter:
		return FamilyVolume
	case UnitPiece, UnitCup, UnitTablespoon, UnitTeaspoon:
		return FamilyCount
	default:
		return FamilyUnknown
	}
}

// IsValid returns true for the units the engine knows about.
func (u Unit) IsValid() bool {
	return u.Family() != FamilyUnknown
}

// String returns the unit code
func (u Unit) String() string {
	return string(u)
}

// AllUnits returns every known unit in display order.
func AllUnits() []Unit {
	return []Unit{
		UnitGram, UnitKilogram,
		UnitMilliliter, UnitLiter,
		UnitPiece, UnitCup, UnitTablespoon, UnitTeaspoon,
	}
}
