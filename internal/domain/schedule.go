package domain

import (
	"time"
)

// Business constants for the payout cycle.
const (
	// CycleDays is the length of one earning-accrual window. Orders accrued in
	// a window are disbursed CycleDays after the window closes.
	CycleDays = 14
)

// InitialAnchor is the boundary of the very first payout cycle. The anchor
// row is seeded with this value on first use; a previous period exists only
// once the persisted anchor has moved past it.
var InitialAnchor = time.Date(2025, time.June, 7, 0, 0, 0, 0, time.UTC)

// PaymentPeriod is one 14-day accrual window. Bounds are calendar dates,
// inclusive on both ends. PaymentDate is always EndDate + 14 days.
type PaymentPeriod struct {
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	PaymentDate time.Time `json:"payment_date"`
	IsActive    bool      `json:"is_active"`
}

// PaymentSchedule is the derived view of the payout lattice around the
// persisted anchor. It is recomputed on every call and never stored whole.
type PaymentSchedule struct {
	LastPaymentDate time.Time      `json:"last_payment_date"`
	NextPaymentDate time.Time      `json:"next_payment_date"`
	CurrentPeriod   PaymentPeriod  `json:"current_period"`
	PreviousPeriod  *PaymentPeriod `json:"previous_period,omitempty"`
}

type ScheduleResponse struct {
	Schedule *PaymentSchedule `json:"schedule"`
}
