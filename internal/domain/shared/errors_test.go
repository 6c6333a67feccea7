package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	detailed := NewDomainError(CodeIncompatibleUnits, "cannot convert kg to pieces")

	assert.True(t, errors.Is(detailed, ErrIncompatibleUnits))
	assert.False(t, errors.Is(detailed, ErrInvalidQuantity))

	wrapped := fmt.Errorf("costing dish: %w", detailed)
	assert.True(t, errors.Is(wrapped, ErrIncompatibleUnits))

	var de *DomainError
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, "cannot convert kg to pieces", de.Error())
}

func TestIsWarning(t *testing.T) {
	assert.True(t, IsWarning(NewDomainError(CodeStockDeficit, "onions at -2 kg")))
	assert.False(t, IsWarning(ErrUnknownInventoryItem))
	assert.False(t, IsWarning(nil))
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2, 3}, 45, 2, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 20, DefaultFilter().PageSize)
	assert.Equal(t, 20, Filter{Page: 2, PageSize: 20}.Offset())
	assert.Equal(t, 0, Filter{Page: 0, PageSize: 20}.Offset())
}
