package payout

import (
	"time"

	"github.com/lankamart/payout-engine/internal/domain"
	"github.com/lankamart/payout-engine/pkg/utils"
)

// Result is a computed schedule together with the anchor it was derived from.
// When Advanced is true the anchor rolled forward past one or more completed
// cycles and the caller must persist the new value.
type Result struct {
	Schedule domain.PaymentSchedule
	Anchor   time.Time
	Advanced bool
}

// Compute derives the payout schedule from the persisted anchor and the
// current time. Pure function, no I/O: callers own reading and writing the
// anchor.
//
// A stale anchor (now at or past anchor + 14d) is advanced in whole 14-day
// steps only, never to now itself, so the cycle lattice stays intact. The
// computation is deterministic in (now, anchor); concurrent callers that race
// on a stale anchor converge to the same advanced value.
func Compute(now, anchor time.Time) Result {
	anchor = utils.StartOfDay(anchor)
	next := anchor.AddDate(0, 0, domain.CycleDays)

	advanced := false
	if !now.Before(next) {
		cycles := utils.WholeCycles(anchor, now, domain.CycleDays)
		anchor = anchor.AddDate(0, 0, cycles*domain.CycleDays)
		next = anchor.AddDate(0, 0, domain.CycleDays)
		advanced = true
	}

	schedule := domain.PaymentSchedule{
		LastPaymentDate: anchor,
		NextPaymentDate: next,
		CurrentPeriod: domain.PaymentPeriod{
			StartDate:   anchor.AddDate(0, 0, -domain.CycleDays),
			EndDate:     anchor,
			PaymentDate: next,
			IsActive:    true,
		},
	}

	// The first cycle has nothing before it.
	if anchor.After(domain.InitialAnchor) {
		schedule.PreviousPeriod = &domain.PaymentPeriod{
			StartDate:   anchor.AddDate(0, 0, -2*domain.CycleDays),
			EndDate:     anchor.AddDate(0, 0, -domain.CycleDays),
			PaymentDate: anchor,
			IsActive:    false,
		}
	}

	return Result{Schedule: schedule, Anchor: anchor, Advanced: advanced}
}
