package schedule

import "time"

type Recurrence string

const (
	RecurrenceOneTime Recurrence = "one_time"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceOneTime, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	default:
		return false
	}
}

// Rule describes how a closure or calendar event repeats. Anchor and End are
// UTC calendar dates (midnight). Paused holds dates whose single occurrence
// has been removed.
type Rule struct {
	Recurrence Recurrence
	Anchor     time.Time
	End        *time.Time
	Paused     map[time.Time]struct{}
}

// Occurrences expands the rule into the sorted concrete dates falling inside
// [from, to]. It is a pure function of the rule and the window: calling it
// twice yields identical output. An End earlier than Anchor yields an empty
// sequence.
func (r Rule) Occurrences(from, to time.Time) []time.Time {
	from = midnight(from)
	to = midnight(to)

	limit := to
	if r.End != nil && r.End.Before(limit) {
		limit = midnight(*r.End)
	}

	var out []time.Time
	switch r.Recurrence {
	case RecurrenceOneTime:
		if !r.Anchor.Before(from) && !r.Anchor.After(limit) {
			out = append(out, r.Anchor)
		}
	case RecurrenceWeekly:
		for d := r.Anchor; !d.After(limit); d = d.AddDate(0, 0, 7) {
			if !d.Before(from) {
				out = append(out, d)
			}
		}
	case RecurrenceMonthly:
		day := r.Anchor.Day()
		for i := 0; ; i++ {
			d := addMonthsClamped(r.Anchor, i, day)
			if d.After(limit) {
				break
			}
			if !d.Before(from) {
				out = append(out, d)
			}
		}
	case RecurrenceYearly:
		for d := r.Anchor; !d.After(limit); d = d.AddDate(1, 0, 0) {
			if !d.Before(from) {
				out = append(out, d)
			}
		}
	}

	if len(r.Paused) == 0 {
		return out
	}
	kept := out[:0]
	for _, d := range out {
		if _, skip := r.Paused[d]; !skip {
			kept = append(kept, d)
		}
	}
	return kept
}

// OccursOn reports whether the rule produces an occurrence on the given date.
func (r Rule) OccursOn(date time.Time) bool {
	date = midnight(date)
	occ := r.Occurrences(date, date)
	return len(occ) == 1
}

// addMonthsClamped steps from anchor by n calendar months, preserving the
// original day-of-month and clamping to the last day of shorter months
// (the 31st lands on the 30th or 28th/29th instead of spilling over).
func addMonthsClamped(anchor time.Time, n, day int) time.Time {
	y, m, _ := anchor.UTC().Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
