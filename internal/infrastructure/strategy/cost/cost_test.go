package cost

import (
	"context"
	"testing"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewMovingAverageStrategy(t *testing.T) {
	s := NewMovingAverageStrategy()

	assert.Equal(t, "moving_average", s.Name())
	assert.Equal(t, strategy.StrategyTypeUnitPrice, s.Type())
	assert.NotEmpty(t, s.Description())
}

func TestMovingAverageStrategy_NextUnitPrice(t *testing.T) {
	s := NewMovingAverageStrategy()
	ctx := context.Background()

	tests := []struct {
		name     string
		pc       strategy.PurchaseContext
		expected string
		wantErr  bool
	}{
		{
			name:     "empty store takes purchase price",
			pc:       strategy.PurchaseContext{OnHandBefore: dec("0"), CurrentUnitPrice: dec("100"), PurchasedQuantity: dec("10"), PurchaseCost: dec("900")},
			expected: "90",
		},
		{
			name:     "weighted with stock on hand",
			pc:       strategy.PurchaseContext{OnHandBefore: dec("25"), CurrentUnitPrice: dec("120"), PurchasedQuantity: dec("10"), PurchaseCost: dec("1000")},
			expected: "114.2857",
		},
		{
			name:     "negative stock ignored",
			pc:       strategy.PurchaseContext{OnHandBefore: dec("-2"), CurrentUnitPrice: dec("40"), PurchasedQuantity: dec("50"), PurchaseCost: dec("2250")},
			expected: "45",
		},
		{
			name:    "zero quantity",
			pc:      strategy.PurchaseContext{PurchasedQuantity: decimal.Zero, PurchaseCost: dec("10")},
			wantErr: true,
		},
		{
			name:    "negative cost",
			pc:      strategy.PurchaseContext{PurchasedQuantity: dec("1"), PurchaseCost: dec("-10")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.NextUnitPrice(ctx, tt.pc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tt.expected).Equal(got), "got %s", got)
		})
	}
}

func TestLastPurchaseAndFixed(t *testing.T) {
	ctx := context.Background()
	pc := strategy.PurchaseContext{OnHandBefore: dec("25"), CurrentUnitPrice: dec("120"), PurchasedQuantity: dec("8"), PurchaseCost: dec("1000")}

	last, err := NewLastPurchaseStrategy().NextUnitPrice(ctx, pc)
	require.NoError(t, err)
	assert.True(t, dec("125").Equal(last))

	fixed, err := NewFixedStrategy().NextUnitPrice(ctx, pc)
	require.NoError(t, err)
	assert.True(t, dec("120").Equal(fixed))

	_, err = NewLastPurchaseStrategy().NextUnitPrice(ctx, strategy.PurchaseContext{})
	assert.Error(t, err)
}
