//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClosure(t *testing.T, start, end time.Time, window *schedule.Window, rec schedule.Recurrence) *schedule.ClosureRule {
	t.Helper()
	c, err := schedule.NewClosureRule(uuid.New(), "Maintenance", start, end, window, rec, true)
	require.NoError(t, err)
	return c
}

func at(d time.Time, hour, minute int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

func TestClosureRule(t *testing.T) {
	t.Run("rejects reversed date range", func(t *testing.T) {
		_, err := schedule.NewClosureRule(uuid.New(), "x", date(2026, time.March, 10), date(2026, time.March, 9), nil, schedule.RecurrenceOneTime, true)
		assert.ErrorIs(t, err, schedule.ErrClosureDateOrder)
	})

	t.Run("one-time range blocks every date inside it", func(t *testing.T) {
		c := mustClosure(t, date(2026, time.March, 10), date(2026, time.March, 12), nil, schedule.RecurrenceOneTime)
		assert.False(t, c.BlocksDate(date(2026, time.March, 9)))
		assert.True(t, c.BlocksDate(date(2026, time.March, 10)))
		assert.True(t, c.BlocksDate(date(2026, time.March, 12)))
		assert.False(t, c.BlocksDate(date(2026, time.March, 13)))
	})

	t.Run("weekly closure matches weekday of start date", func(t *testing.T) {
		c := mustClosure(t, date(2026, time.March, 6), date(2026, time.March, 6), nil, schedule.RecurrenceWeekly) // Friday
		assert.True(t, c.BlocksDate(date(2026, time.March, 13)))
		assert.True(t, c.BlocksDate(date(2026, time.December, 25)))
		assert.False(t, c.BlocksDate(date(2026, time.March, 12)))
	})

	t.Run("monthly closure matches day of month", func(t *testing.T) {
		c := mustClosure(t, date(2026, time.January, 15), date(2026, time.January, 15), nil, schedule.RecurrenceMonthly)
		assert.True(t, c.BlocksDate(date(2026, time.February, 15)))
		assert.True(t, c.BlocksDate(date(2026, time.November, 15)))
		assert.False(t, c.BlocksDate(date(2026, time.February, 16)))
	})

	t.Run("yearly closure matches month and day", func(t *testing.T) {
		c := mustClosure(t, date(2025, time.December, 25), date(2025, time.December, 25), nil, schedule.RecurrenceYearly)
		assert.True(t, c.BlocksDate(date(2026, time.December, 25)))
		assert.False(t, c.BlocksDate(date(2026, time.December, 26)))
	})

	t.Run("inactive closure blocks nothing", func(t *testing.T) {
		c, err := schedule.NewClosureRule(uuid.New(), "x", date(2026, time.March, 10), date(2026, time.March, 10), nil, schedule.RecurrenceOneTime, false)
		require.NoError(t, err)
		assert.False(t, c.BlocksDate(date(2026, time.March, 10)))
	})

	t.Run("time-ranged closure blocks only its span", func(t *testing.T) {
		w := &schedule.Window{Start: 13 * 60, End: 15 * 60}
		c := mustClosure(t, date(2026, time.March, 10), date(2026, time.March, 10), w, schedule.RecurrenceOneTime)
		d := date(2026, time.March, 10)

		assert.False(t, c.BlocksInstant(at(d, 12, 59)))
		assert.True(t, c.BlocksInstant(at(d, 13, 0)))
		assert.True(t, c.BlocksInstant(at(d, 14, 30)))
		assert.False(t, c.BlocksInstant(at(d, 15, 0)))

		assert.True(t, c.BlocksInterval(at(d, 14, 30), at(d, 16, 0)))
		assert.False(t, c.BlocksInterval(at(d, 15, 0), at(d, 16, 0)))
		assert.False(t, c.BlocksInterval(at(d, 11, 0), at(d, 13, 0)))
	})

	t.Run("full-day closure blocks multi-day interval touching it", func(t *testing.T) {
		c := mustClosure(t, date(2026, time.March, 11), date(2026, time.March, 11), nil, schedule.RecurrenceOneTime)
		assert.True(t, c.BlocksInterval(at(date(2026, time.March, 10), 23, 0), at(date(2026, time.March, 11), 1, 0)))
		assert.False(t, c.BlocksInterval(at(date(2026, time.March, 10), 21, 0), at(date(2026, time.March, 10), 23, 0)))
	})
}
