package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// Calendar dates are evaluated in UTC throughout the payout engine so that
// timezone offsets on stored timestamps cannot move an order across a cycle
// boundary.

// StartOfDay returns midnight UTC of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns 23:59:59.999 UTC of t's calendar date.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 999000000, time.UTC)
}

// Midday returns 12:00:00 UTC of t's calendar date. Order timestamps are
// normalized to midday before range checks so a same-calendar-day order can
// never land outside the window.
func Midday(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b, flooring any
// partial day. Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// WholeCycles returns how many complete cycles of cycleDays fit between
// anchor and now. Zero when now is within the first cycle.
func WholeCycles(anchor, now time.Time, cycleDays int) int {
	days := DaysBetween(anchor, now)
	if days < 0 {
		return 0
	}
	return days / cycleDays
}

// DecimalFromString converts string to decimal.Decimal.
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
