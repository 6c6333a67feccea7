package strategy

import (
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/strategy"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/strategy/cost"
)

// NewRegistryWithDefaults creates a registry holding every unit price strategy,
// with moving average as the default
func NewRegistryWithDefaults() (*StrategyRegistry, error) {
	r := NewStrategyRegistry()

	for _, s := range []strategy.UnitPriceStrategy{
		cost.NewMovingAverageStrategy(),
		cost.NewLastPurchaseStrategy(),
		cost.NewFixedStrategy(),
	} {
		if err := r.RegisterUnitPriceStrategy(s); err != nil {
			return nil, err
		}
	}

	if err := r.SetDefaultUnitPriceStrategy(strategy.UnitPriceMovingAverage); err != nil {
		return nil, err
	}
	return r, nil
}
