package inventory

import (
	"fmt"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LedgerCheck is the result of replaying an item's transactions
type LedgerCheck struct {
	OpeningQuantity  decimal.Decimal
	SignedTotal      decimal.Decimal
	ExpectedQuantity decimal.Decimal
	ActualQuantity   decimal.Decimal
	Transactions     int
	Consistent       bool
}

// ReplayLedger sums the signed effects of txs on top of opening.
// txs must belong to a single item and be in ledger order.
func ReplayLedger(opening decimal.Decimal, txs []InventoryTransaction) (decimal.Decimal, error) {
	balance := opening
	for idx := range txs {
		tx := &txs[idx]
		if !tx.BalanceBefore.Equal(balance) {
			return balance, shared.NewDomainError("LEDGER_GAP",
				fmt.Sprintf("transaction %s starts at %s, ledger is at %s", tx.ID, tx.BalanceBefore, balance))
		}
		balance = balance.Add(tx.GetSignedQuantity())
	}
	return balance, nil
}

// VerifyLedger checks that item.Quantity equals opening plus every signed effect.
func VerifyLedger(item *InventoryItem, opening decimal.Decimal, txs []InventoryTransaction) LedgerCheck {
	total := decimal.Zero
	for idx := range txs {
		if txs[idx].InventoryItemID == item.ID {
			total = total.Add(txs[idx].GetSignedQuantity())
		}
	}
	expected := opening.Add(total)
	return LedgerCheck{
		OpeningQuantity:  opening,
		SignedTotal:      total,
		ExpectedQuantity: expected,
		ActualQuantity:   item.Quantity,
		Transactions:     len(txs),
		Consistent:       expected.Equal(item.Quantity),
	}
}
