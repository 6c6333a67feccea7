package strategy

import (
	"errors"
	"testing"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/strategy/cost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryWithDefaults(t *testing.T) {
	r, err := NewRegistryWithDefaults()
	require.NoError(t, err)

	assert.Equal(t, []string{"fixed", "last_purchase", "moving_average"}, r.ListUnitPriceStrategies())

	s, err := r.GetUnitPriceStrategy("")
	require.NoError(t, err)
	assert.Equal(t, "moving_average", s.Name())

	s, err = r.GetUnitPriceStrategy("fixed")
	require.NoError(t, err)
	assert.Equal(t, "fixed", s.Name())

	_, err = r.GetUnitPriceStrategy("fifo")
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestStrategyRegistry_DuplicatesAndDefaults(t *testing.T) {
	r := NewStrategyRegistry()

	_, err := r.GetUnitPriceStrategy("")
	assert.Error(t, err)

	require.NoError(t, r.RegisterUnitPriceStrategy(cost.NewFixedStrategy()))
	err = r.RegisterUnitPriceStrategy(cost.NewFixedStrategy())
	assert.True(t, errors.Is(err, shared.ErrAlreadyExists))

	assert.Error(t, r.SetDefaultUnitPriceStrategy("moving_average"))
	require.NoError(t, r.SetDefaultUnitPriceStrategy("fixed"))
}
