package planning

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Only FindByIDs is served; any other call panics on the nil embedded interface.
type dishesByID struct {
	menu.DishRepository
	dishes []*menu.Dish
	err    error
}

func (r *dishesByID) FindByIDs(_ context.Context, ids []uuid.UUID) ([]menu.Dish, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []menu.Dish
	for _, id := range ids {
		for _, d := range r.dishes {
			if d.ID == id {
				out = append(out, *d)
			}
		}
	}
	return out, nil
}

type itemsByID struct {
	inventory.InventoryItemRepository
	items []*inventory.InventoryItem
	calls int
}

func (r *itemsByID) FindByIDs(_ context.Context, ids []uuid.UUID) ([]inventory.InventoryItem, error) {
	r.calls++
	var out []inventory.InventoryItem
	for _, it := range r.items {
		for _, id := range ids {
			if it.ID == id {
				out = append(out, *it)
				break
			}
		}
	}
	return out, nil
}

func TestDemandLoader_Load(t *testing.T) {
	ctx := context.Background()
	k := newKitchen(t)
	biryani := k.biryani(t)
	curry := k.curry(t)
	bare, err := menu.NewDish("Plain Water", "drinks", 1, dec("5"))
	require.NoError(t, err)

	tests := []struct {
		name         string
		refs         []DishServings
		dishErr      error
		wantServings int
		wantOnion    string
		wantItems    int
		wantItemRead int
		wantCode     string
		wantErr      error
	}{
		{
			name:         "two dishes share one snapshot",
			refs:         []DishServings{{DishID: biryani.ID, Servings: 20}, {DishID: curry.ID, Servings: 10}},
			wantServings: 30,
			wantOnion:    "1.75",
			wantItems:    6,
			wantItemRead: 1,
		},
		{
			name:         "dish without lines skips the item read",
			refs:         []DishServings{{DishID: bare.ID, Servings: 40}},
			wantServings: 40,
		},
		{name: "no selections", wantCode: "INVALID_INPUT"},
		{
			name:     "unknown dish",
			refs:     []DishServings{{DishID: biryani.ID, Servings: 5}, {DishID: uuid.New(), Servings: 5}},
			wantCode: "NOT_FOUND",
		},
		{
			name:     "zero servings",
			refs:     []DishServings{{DishID: curry.ID, Servings: 0}},
			wantCode: shared.CodeInvalidQuantity,
		},
		{
			name:    "dish lookup failure",
			refs:    []DishServings{{DishID: biryani.ID, Servings: 5}},
			dishErr: errors.New("connection reset"),
			wantErr: errors.New("connection reset"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := &itemsByID{items: []*inventory.InventoryItem{k.rice, k.onion, k.tomato, k.oil, k.eggs, k.coriander}}
			dishes := &dishesByID{dishes: []*menu.Dish{biryani, curry, bare}, err: tt.dishErr}
			loader := NewDemandLoader(dishes, items, nil)

			demand, servings, err := loader.Load(ctx, tt.refs)

			if tt.wantCode != "" || tt.wantErr != nil {
				require.Error(t, err)
				if tt.wantCode != "" {
					var de *shared.DomainError
					require.ErrorAs(t, err, &de)
					assert.Equal(t, tt.wantCode, de.Code)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantServings, servings)
			assert.Len(t, demand.Entries, tt.wantItems)
			assert.Equal(t, tt.wantItemRead, items.calls)
			if tt.wantOnion != "" {
				onion, ok := demand.Entry(k.onion.ID)
				require.True(t, ok)
				assert.True(t, dec(tt.wantOnion).Equal(onion.Required), onion.Required.String())
				assert.Len(t, onion.Sources, 2)
			}
		})
	}
}
