package planning

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationLine splits an item's demand into what comes from stock and what must be bought.
// ToDraw + ToBuy == Required always holds.
type ReconciliationLine struct {
	DemandEntry
	ToDraw decimal.Decimal
	ToBuy  decimal.Decimal
}

// Reconciliation is the full per-item result; consumers filter it
type Reconciliation struct {
	Lines []ReconciliationLine
}

// Reconcile compares demand with availability.
// toDraw = min(required, available) and toBuy = max(0, required - available),
// with negative on-hand treated as nothing available.
func Reconcile(demand Demand) Reconciliation {
	lines := make([]ReconciliationLine, 0, len(demand.Entries))
	for _, e := range demand.Entries {
		available := decimal.Max(e.Available, decimal.Zero)
		toDraw := decimal.Min(e.Required, available)
		lines = append(lines, ReconciliationLine{
			DemandEntry: e,
			ToDraw:      toDraw,
			ToBuy:       e.Required.Sub(toDraw),
		})
	}
	return Reconciliation{Lines: lines}
}

// ToBuy returns the lines that need purchasing
func (r Reconciliation) ToBuy() []ReconciliationLine {
	return r.filter(func(l ReconciliationLine) bool { return l.ToBuy.IsPositive() })
}

// ToDraw returns the lines that can be pulled from stock
func (r Reconciliation) ToDraw() []ReconciliationLine {
	return r.filter(func(l ReconciliationLine) bool { return l.ToDraw.IsPositive() })
}

// EstimatedPurchaseCost is the sum of toBuy x unit price
func (r Reconciliation) EstimatedPurchaseCost() decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Lines {
		total = total.Add(l.ToBuy.Mul(l.UnitPrice))
	}
	return total
}

// Line finds the reconciliation line for an item
func (r Reconciliation) Line(itemID uuid.UUID) (ReconciliationLine, bool) {
	for _, l := range r.Lines {
		if l.ItemID == itemID {
			return l, true
		}
	}
	return ReconciliationLine{}, false
}

func (r Reconciliation) filter(keep func(ReconciliationLine) bool) []ReconciliationLine {
	out := make([]ReconciliationLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}
