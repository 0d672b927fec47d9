package credit

import (
	"sort"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
)

// Select picks the purchase that will pay for a booking. Simulator hours
// spend combo packages before simulator-only ones so the more flexible
// balance does not strand narrower packages; coaching sessions go strictly
// oldest-first. Ties break oldest-first.
//
// It returns nil with no error when the client holds no eligible purchase
// at all; callers treat that case differently from a balance that is merely
// too low, which comes back as an *InsufficientError.
func Select(purchases []*Purchase, category booking.Category, sessions, hourMinutes int) (*Purchase, error) {
	eligible := make([]*Purchase, 0, len(purchases))
	for _, p := range purchases {
		if p.EligibleFor(category) {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	comboFirst := category == booking.CategorySimulator
	sort.SliceStable(eligible, func(i, j int) bool {
		pi, pj := eligible[i], eligible[j]
		if comboFirst && (pi.Kind() == KindCombo) != (pj.Kind() == KindCombo) {
			return pi.Kind() == KindCombo
		}
		return pi.PurchasedAt().Before(pj.PurchasedAt())
	})

	availSessions, availMinutes := 0, 0
	for _, p := range eligible {
		if p.Covers(sessions, hourMinutes) {
			return p, nil
		}
		availSessions += p.SessionsLeft()
		availMinutes += p.HourMinutesLeft()
	}
	return nil, &InsufficientError{
		RequestedSessions: sessions,
		RequestedMinutes:  hourMinutes,
		AvailableSessions: availSessions,
		AvailableMinutes:  availMinutes,
	}
}
