package payout

import (
	"time"

	"github.com/lankamart/payout-engine/internal/domain"
	"github.com/lankamart/payout-engine/pkg/utils"
)

// Statuses that count toward a scheduled payout. Cancelled and refunded
// orders are always excluded regardless of date.
var eligibleStatuses = map[string]struct{}{
	domain.OrderStatusReceived: {},
	domain.OrderStatusShipped:  {},
	domain.OrderStatusPending:  {},
}

// DefaultSettledStatuses is the status set of the seller earnings report.
// This is a separate policy from scheduled payout eligibility: the report
// measures historical performance over an admin-chosen range, not what gets
// disbursed on the next payment date.
var DefaultSettledStatuses = []string{
	domain.OrderStatusReceived,
	domain.OrderStatusDelivered,
	domain.OrderStatusShipped,
	domain.OrderStatusConfirmed,
}

// FilterEligible returns the orders that count toward the payout for period.
// An order qualifies when its status is in the payout allow-list, it was paid
// with PayNow (cash-on-delivery settles out of band), and its creation date
// falls inside the period, inclusive on both ends. Orders with a missing
// creation date are skipped, never an error. No ordering guarantee.
func FilterEligible(orders []*domain.Order, period domain.PaymentPeriod) []*domain.Order {
	eligible := make([]*domain.Order, 0, len(orders))
	for _, order := range orders {
		if _, ok := eligibleStatuses[order.NormalizedStatus()]; !ok {
			continue
		}
		if order.NormalizedPaymentMethod() != domain.PaymentMethodPayNow {
			continue
		}
		if !inWindow(order, period.StartDate, period.EndDate) {
			continue
		}
		eligible = append(eligible, order)
	}
	return eligible
}

// FilterSettled is the seller earnings range filter. statuses defaults to
// DefaultSettledStatuses when empty. Payment method is not restricted here:
// the report covers COD orders too.
func FilterSettled(orders []*domain.Order, from, to time.Time, statuses []string) []*domain.Order {
	if len(statuses) == 0 {
		statuses = DefaultSettledStatuses
	}
	allowed := make(map[string]struct{}, len(statuses))
	for _, s := range statuses {
		allowed[s] = struct{}{}
	}

	settled := make([]*domain.Order, 0, len(orders))
	for _, order := range orders {
		if _, ok := allowed[order.NormalizedStatus()]; !ok {
			continue
		}
		if !inWindow(order, from, to) {
			continue
		}
		settled = append(settled, order)
	}
	return settled
}

// inWindow tests the order's creation date against [from, to] as calendar
// days. The order timestamp is normalized to midday and the bounds to the
// start and end of their days, so timezone offsets on any side cannot move a
// same-day order across the boundary.
func inWindow(order *domain.Order, from, to time.Time) bool {
	if !order.CreatedAt.Valid {
		return false
	}
	created := utils.Midday(order.CreatedAt.Time)
	return !created.Before(utils.StartOfDay(from)) && !created.After(utils.EndOfDay(to))
}
