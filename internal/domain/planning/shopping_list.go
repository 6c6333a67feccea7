package planning

import (
	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ListLine is one row of a shopping or draw list
type ListLine struct {
	ItemID        uuid.UUID
	ItemName      string
	Quantity      decimal.Decimal
	Unit          valueobject.Unit
	UnitPrice     decimal.Decimal
	EstimatedCost decimal.Decimal
	OnDemand      bool
}

// ListGroup collects the lines of one category
type ListGroup struct {
	Category      string
	Lines         []ListLine
	EstimatedCost decimal.Decimal
}

// CategorizedList is a list grouped by item category, in reconciliation order
type CategorizedList struct {
	Groups         []ListGroup
	EstimatedTotal decimal.Decimal
}

// ItemCount returns the number of lines across all groups
func (l CategorizedList) ItemCount() int {
	n := 0
	for _, g := range l.Groups {
		n += len(g.Lines)
	}
	return n
}

// BuildShoppingList groups the toBuy side of a reconciliation by category
func BuildShoppingList(r Reconciliation) CategorizedList {
	return group(r.ToBuy(), func(l ReconciliationLine) decimal.Decimal { return l.ToBuy })
}

// BuildDrawList groups the toDraw side of a reconciliation by category
func BuildDrawList(r Reconciliation) CategorizedList {
	return group(r.ToDraw(), func(l ReconciliationLine) decimal.Decimal { return l.ToDraw })
}

func group(lines []ReconciliationLine, qty func(ReconciliationLine) decimal.Decimal) CategorizedList {
	out := CategorizedList{EstimatedTotal: decimal.Zero}
	index := make(map[string]int)

	for _, l := range lines {
		q := qty(l)
		cost := q.Mul(l.UnitPrice)
		pos, ok := index[l.Category]
		if !ok {
			pos = len(out.Groups)
			index[l.Category] = pos
			out.Groups = append(out.Groups, ListGroup{Category: l.Category, EstimatedCost: decimal.Zero})
		}
		g := &out.Groups[pos]
		g.Lines = append(g.Lines, ListLine{
			ItemID:        l.ItemID,
			ItemName:      l.ItemName,
			Quantity:      q,
			Unit:          l.Unit,
			UnitPrice:     l.UnitPrice,
			EstimatedCost: cost,
			OnDemand:      l.TrackingMode == inventory.TrackingOnDemand,
		})
		g.EstimatedCost = g.EstimatedCost.Add(cost)
		out.EstimatedTotal = out.EstimatedTotal.Add(cost)
	}
	return out
}
