package strategy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/strategy"
)

// StrategyRegistry manages unit price strategy registrations
type StrategyRegistry struct {
	mu                  sync.RWMutex
	unitPriceStrategies map[string]strategy.UnitPriceStrategy
	defaultUnitPrice    string
}

// NewStrategyRegistry creates a new strategy registry
func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{
		unitPriceStrategies: make(map[string]strategy.UnitPriceStrategy),
	}
}

// RegisterUnitPriceStrategy registers a unit price strategy
func (r *StrategyRegistry) RegisterUnitPriceStrategy(s strategy.UnitPriceStrategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, exists := r.unitPriceStrategies[name]; exists {
		return fmt.Errorf("%w: unit price strategy '%s' already registered", shared.ErrAlreadyExists, name)
	}
	r.unitPriceStrategies[name] = s
	return nil
}

// SetDefaultUnitPriceStrategy sets the strategy returned for an empty name
func (r *StrategyRegistry) SetDefaultUnitPriceStrategy(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.unitPriceStrategies[name]; !exists {
		return fmt.Errorf("%w: unit price strategy '%s' not found", shared.ErrNotFound, name)
	}
	r.defaultUnitPrice = name
	return nil
}

// GetUnitPriceStrategy returns a strategy by name, or the default if name is empty
func (r *StrategyRegistry) GetUnitPriceStrategy(name string) (strategy.UnitPriceStrategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.defaultUnitPrice
		if name == "" {
			return nil, fmt.Errorf("%w: no default unit price strategy set", shared.ErrNotFound)
		}
	}

	s, exists := r.unitPriceStrategies[name]
	if !exists {
		return nil, fmt.Errorf("%w: unit price strategy '%s' not found", shared.ErrNotFound, name)
	}
	return s, nil
}

// ListUnitPriceStrategies returns all registered strategy names
func (r *StrategyRegistry) ListUnitPriceStrategies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.unitPriceStrategies))
	for name := range r.unitPriceStrategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
