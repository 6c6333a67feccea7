package valueobject

import (
	"errors"
	"testing"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnit_Family(t *testing.T) {
	tests := []struct {
		unit     Unit
		expected UnitFamily
	}{
		{UnitGram, FamilyMass},
		{UnitKilogram, FamilyMass},
		{UnitMilliliter, FamilyVolume},
		{UnitLiter, FamilyVolume},
		{UnitPiece, FamilyCount},
		{UnitCup, FamilyCount},
		{UnitTablespoon, FamilyCount},
		{UnitTeaspoon, FamilyCount},
		{Unit("bushel"), FamilyUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.unit.Family())
		})
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		input    string
		expected Unit
		wantErr  bool
	}{
		{"kg", UnitKilogram, false},
		{" KG ", UnitKilogram, false},
		{"grams", UnitGram, false},
		{"L", UnitLiter, false},
		{"litre", UnitLiter, false},
		{"pcs", UnitPiece, false},
		{"Tablespoon", UnitTablespoon, false},
		{"handful", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUnit(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConversionTable_Convert(t *testing.T) {
	table := DefaultConversionTable()

	tests := []struct {
		name     string
		qty      string
		from     Unit
		to       Unit
		expected string
	}{
		{"kg to g", "1", UnitKilogram, UnitGram, "1000"},
		{"g to kg", "35000", UnitGram, UnitKilogram, "35"},
		{"fractional g to kg", "50", UnitGram, UnitKilogram, "0.05"},
		{"liters to ml", "2.5", UnitLiter, UnitMilliliter, "2500"},
		{"ml to liters", "750", UnitMilliliter, UnitLiter, "0.75"},
		{"identity mass", "3", UnitKilogram, UnitKilogram, "3"},
		{"identity count", "12", UnitPiece, UnitPiece, "12"},
		{"identity tbsp", "2", UnitTablespoon, UnitTablespoon, "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Convert(decimal.RequireFromString(tt.qty), tt.from, tt.to)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got %s", got)
		})
	}
}

func TestConversionTable_Incompatible(t *testing.T) {
	table := DefaultConversionTable()

	pairs := [][2]Unit{
		{UnitKilogram, UnitPiece},
		{UnitGram, UnitMilliliter},
		{UnitLiter, UnitKilogram},
		{UnitCup, UnitTablespoon},
		{UnitTeaspoon, UnitTablespoon},
		{UnitPiece, UnitCup},
		{Unit("bushel"), Unit("peck")},
	}

	for _, p := range pairs {
		t.Run(string(p[0])+"->"+string(p[1]), func(t *testing.T) {
			_, err := table.Convert(decimal.NewFromInt(1), p[0], p[1])
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrIncompatibleUnits))
			assert.False(t, table.CanConvert(p[0], p[1]))
		})
	}
}

func TestConversionTable_RoundTrip(t *testing.T) {
	table := DefaultConversionTable()
	quantities := []string{"0.001", "1", "7.25", "35000", "123456.789"}
	pairs := [][2]Unit{
		{UnitGram, UnitKilogram},
		{UnitKilogram, UnitGram},
		{UnitMilliliter, UnitLiter},
		{UnitLiter, UnitMilliliter},
	}

	for _, p := range pairs {
		for _, q := range quantities {
			qty := decimal.RequireFromString(q)
			there, err := table.Convert(qty, p[0], p[1])
			require.NoError(t, err)
			back, err := table.Convert(there, p[1], p[0])
			require.NoError(t, err)
			assert.True(t, qty.Equal(back), "%s %s -> %s -> %s gave %s", q, p[0], p[1], p[0], back)
		}
	}
}

func TestNewConversionTable_Validation(t *testing.T) {
	_, err := NewConversionTable(map[UnitFamily]map[Unit]decimal.Decimal{
		FamilyMass: {UnitLiter: decimal.NewFromInt(1)},
	})
	assert.Error(t, err)

	_, err = NewConversionTable(map[UnitFamily]map[Unit]decimal.Decimal{
		FamilyMass: {UnitGram: decimal.Zero},
	})
	assert.Error(t, err)
}

func TestNewConversionTable_CustomCountFamily(t *testing.T) {
	// tbsp and tsp become convertible when a table supplies factors for them
	table, err := NewConversionTable(map[UnitFamily]map[Unit]decimal.Decimal{
		FamilyCount: {
			UnitTeaspoon:   decimal.NewFromInt(1),
			UnitTablespoon: decimal.NewFromInt(3),
		},
	})
	require.NoError(t, err)

	got, err := table.Convert(decimal.NewFromInt(2), UnitTablespoon, UnitTeaspoon)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6).Equal(got))

	_, err = table.Convert(decimal.NewFromInt(1), UnitKilogram, UnitGram)
	assert.Error(t, err, "families absent from the table are not convertible")
}

func TestConversionTable_ConvertibleUnits(t *testing.T) {
	table := DefaultConversionTable()
	assert.Equal(t, []Unit{UnitKilogram, UnitGram}, table.ConvertibleUnits(UnitKilogram))
	assert.Equal(t, []Unit{UnitPiece}, table.ConvertibleUnits(UnitPiece))
}

func TestConversionTable_NilUsesDefault(t *testing.T) {
	var table *ConversionTable

	tests := []struct {
		name     string
		qty      string
		from, to Unit
		want     string
		wantErr  bool
	}{
		{name: "grams to kilograms", qty: "250", from: UnitGram, to: UnitKilogram, want: "0.25"},
		{name: "liters to milliliters", qty: "1.5", from: UnitLiter, to: UnitMilliliter, want: "1500"},
		{name: "identity", qty: "12", from: UnitPiece, to: UnitPiece, want: "12"},
		{name: "mass to volume", qty: "1", from: UnitKilogram, to: UnitLiter, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Convert(decimal.RequireFromString(tt.qty), tt.from, tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrIncompatibleUnits)
				assert.False(t, table.CanConvert(tt.from, tt.to))
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), got.String())
			assert.True(t, table.CanConvert(tt.from, tt.to))
		})
	}

	assert.Equal(t, []Unit{UnitGram, UnitKilogram}, table.ConvertibleUnits(UnitGram))
}

func TestNewPositiveQuantity(t *testing.T) {
	_, err := NewPositiveQuantity(decimal.Zero, UnitGram)
	assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))

	_, err = NewPositiveQuantity(decimal.NewFromInt(-2), UnitGram)
	assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))

	_, err = NewPositiveQuantity(decimal.NewFromInt(1), Unit("bushel"))
	assert.Error(t, err)

	q, err := NewPositiveQuantity(decimal.NewFromInt(8), UnitKilogram)
	require.NoError(t, err)
	inGrams, err := q.In(DefaultConversionTable(), UnitGram)
	require.NoError(t, err)
	assert.Equal(t, "8000 g", inGrams.String())
}
