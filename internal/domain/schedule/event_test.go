//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCalendarEventOverlapsInterval(t *testing.T) {
	d := date(2026, time.March, 20)

	t.Run("one-time event overlaps a straddling interval", func(t *testing.T) {
		ev := schedule.NewCalendarEvent(uuid.New(), "League night",
			schedule.Rule{Recurrence: schedule.RecurrenceOneTime, Anchor: d},
			schedule.Window{Start: 20 * 60, End: 21 * 60}, 12, true)

		assert.True(t, ev.OverlapsInterval(at(d, 20, 30), at(d, 21, 30)))
		assert.True(t, ev.OverlapsInterval(at(d, 19, 30), at(d, 20, 30)))
		assert.False(t, ev.OverlapsInterval(at(d, 21, 0), at(d, 22, 0)), "touching endpoints do not conflict")
		assert.False(t, ev.OverlapsInterval(at(d, 19, 0), at(d, 20, 0)))
	})

	t.Run("cross-midnight occurrence blocks the next calendar day", func(t *testing.T) {
		ev := schedule.NewCalendarEvent(uuid.New(), "Late clinic",
			schedule.Rule{Recurrence: schedule.RecurrenceOneTime, Anchor: d},
			schedule.Window{Start: 23 * 60, End: 60}, 8, true) // 23:00-01:00

		next := d.AddDate(0, 0, 1)
		assert.True(t, ev.OverlapsInterval(at(next, 0, 30), at(next, 1, 0)))
		assert.False(t, ev.OverlapsInterval(at(next, 1, 0), at(next, 2, 0)))
		assert.True(t, ev.OverlapsInterval(at(d, 22, 30), at(d, 23, 30)))
	})

	t.Run("weekly event blocks only matching days", func(t *testing.T) {
		ev := schedule.NewCalendarEvent(uuid.New(), "Weekly league",
			schedule.Rule{Recurrence: schedule.RecurrenceWeekly, Anchor: d},
			schedule.Window{Start: 18 * 60, End: 20 * 60}, 20, true)

		weekLater := d.AddDate(0, 0, 7)
		dayAfter := d.AddDate(0, 0, 1)
		assert.True(t, ev.OverlapsInterval(at(weekLater, 18, 30), at(weekLater, 19, 0)))
		assert.False(t, ev.OverlapsInterval(at(dayAfter, 18, 30), at(dayAfter, 19, 0)))
	})

	t.Run("paused occurrence stops blocking", func(t *testing.T) {
		weekLater := d.AddDate(0, 0, 7)
		ev := schedule.NewCalendarEvent(uuid.New(), "Weekly league",
			schedule.Rule{
				Recurrence: schedule.RecurrenceWeekly,
				Anchor:     d,
				Paused:     map[time.Time]struct{}{weekLater: {}},
			},
			schedule.Window{Start: 18 * 60, End: 20 * 60}, 20, true)

		assert.False(t, ev.OverlapsInterval(at(weekLater, 18, 30), at(weekLater, 19, 0)))
		assert.True(t, ev.OverlapsInterval(at(d, 18, 30), at(d, 19, 0)))
	})

	t.Run("inactive event never overlaps", func(t *testing.T) {
		ev := schedule.NewCalendarEvent(uuid.New(), "Cancelled league",
			schedule.Rule{Recurrence: schedule.RecurrenceOneTime, Anchor: d},
			schedule.Window{Start: 18 * 60, End: 20 * 60}, 20, false)
		assert.False(t, ev.OverlapsInterval(at(d, 18, 30), at(d, 19, 0)))
	})
}

func TestWindowSpan(t *testing.T) {
	d := date(2026, time.March, 20)

	w := schedule.Window{Start: 9 * 60, End: 22 * 60}
	s, e := w.Span(d)
	assert.Equal(t, at(d, 9, 0), s)
	assert.Equal(t, at(d, 22, 0), e)

	cross := schedule.Window{Start: 23 * 60, End: 60}
	s, e = cross.Span(d)
	assert.Equal(t, at(d, 23, 0), s)
	assert.Equal(t, at(d.AddDate(0, 0, 1), 1, 0), e)
	assert.True(t, cross.CrossesMidnight())
}
