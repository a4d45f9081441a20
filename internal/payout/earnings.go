package payout

import (
	"github.com/shopspring/decimal"

	"github.com/lankamart/payout-engine/internal/domain"
)

// SumTotals adds up the order totals. An order with a missing total
// contributes zero but still counts as an order; the sum never fails.
func SumTotals(orders []*domain.Order) decimal.Decimal {
	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.TotalOrZero())
	}
	return total
}
