//go:build unit

package shared

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/schedule"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra/db"
)

type fakeConflictReads struct {
	bookings []BookingSpan
	holds    int64
	closures []*schedule.ClosureRule
	events   []*schedule.CalendarEvent
}

func (f *fakeConflictReads) OverlappingBookings(_ context.Context, _ db.DBTX, _ uuid.UUID, iv booking.Interval, exclude *uuid.UUID) ([]BookingSpan, error) {
	var out []BookingSpan
	for _, span := range f.bookings {
		if exclude != nil && span.BookingID == *exclude {
			continue
		}
		if span.Interval.Overlaps(iv) {
			out = append(out, span)
		}
	}
	return out, nil
}

func (f *fakeConflictReads) CountOverlappingActiveHolds(_ context.Context, _ db.DBTX, _ uuid.UUID, _ booking.Interval, _ time.Time, _ *uuid.UUID) (int64, error) {
	return f.holds, nil
}

func (f *fakeConflictReads) ActiveClosures(_ context.Context, _ db.DBTX) ([]*schedule.ClosureRule, error) {
	return f.closures, nil
}

func (f *fakeConflictReads) ActiveEvents(_ context.Context, _ db.DBTX, _, _ time.Time) ([]*schedule.CalendarEvent, error) {
	return f.events, nil
}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func iv(t *testing.T, start, end time.Time) booking.Interval {
	t.Helper()
	out, err := booking.NewInterval(start, end)
	require.NoError(t, err)
	return out
}

func tod(t *testing.T, hour, min int) schedule.TimeOfDay {
	t.Helper()
	v, err := schedule.NewTimeOfDay(hour, min)
	require.NoError(t, err)
	return v
}

func TestConflictChecker_CleanInterval(t *testing.T) {
	checker := NewConflictChecker(&fakeConflictReads{})
	err := checker.Check(context.Background(), nil, at(9, 0), ConflictCheck{
		ResourceID: uuid.New(),
		Interval:   iv(t, at(10, 0), at(11, 0)),
	})
	assert.NoError(t, err)
}

func TestConflictChecker_BookingConflict(t *testing.T) {
	existing := BookingSpan{BookingID: uuid.New(), Interval: iv(t, at(10, 30), at(11, 30))}
	checker := NewConflictChecker(&fakeConflictReads{bookings: []BookingSpan{existing}})

	resourceID := uuid.New()
	err := checker.Check(context.Background(), nil, at(9, 0), ConflictCheck{
		ResourceID: resourceID,
		Interval:   iv(t, at(10, 0), at(11, 0)),
	})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictSourceBooking, conflict.Source)
	assert.Equal(t, resourceID, conflict.ResourceID)
}

func TestConflictChecker_ExcludesOwnBookingOnReschedule(t *testing.T) {
	own := BookingSpan{BookingID: uuid.New(), Interval: iv(t, at(10, 0), at(11, 0))}
	checker := NewConflictChecker(&fakeConflictReads{bookings: []BookingSpan{own}})

	err := checker.Check(context.Background(), nil, at(9, 0), ConflictCheck{
		ResourceID:       uuid.New(),
		Interval:         iv(t, at(10, 0), at(11, 30)),
		ExcludeBookingID: &own.BookingID,
	})
	assert.NoError(t, err)
}

func TestConflictChecker_HoldConflict(t *testing.T) {
	checker := NewConflictChecker(&fakeConflictReads{holds: 1})
	err := checker.Check(context.Background(), nil, at(9, 0), ConflictCheck{
		ResourceID: uuid.New(),
		Interval:   iv(t, at(10, 0), at(11, 0)),
	})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictSourceHold, conflict.Source)
}

func TestConflictChecker_ClosureBlocks(t *testing.T) {
	rule, err := schedule.NewClosureRule(uuid.New(), "maintenance week",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		nil, schedule.RecurrenceOneTime, true)
	require.NoError(t, err)

	checker := NewConflictChecker(&fakeConflictReads{closures: []*schedule.ClosureRule{rule}})
	checkErr := checker.Check(context.Background(), nil, at(9, 0), ConflictCheck{
		ResourceID: uuid.New(),
		Interval:   iv(t, at(10, 0), at(11, 0)),
	})

	var closed *ClosedError
	require.ErrorAs(t, checkErr, &closed)
	assert.Equal(t, "maintenance week", closed.RuleTitle)
}

func makeEvent(t *testing.T, title string, date time.Time, startH, endH int) *schedule.CalendarEvent {
	t.Helper()
	return schedule.NewCalendarEvent(uuid.New(), title,
		schedule.Rule{Recurrence: schedule.RecurrenceOneTime, Anchor: date},
		schedule.Window{Start: tod(t, startH, 0), End: tod(t, endH, 0)},
		8, true)
}

func TestConflictChecker_EventBlocksAllResources(t *testing.T) {
	ev := makeEvent(t, "league night", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 20, 21)
	checker := NewConflictChecker(&fakeConflictReads{events: []*schedule.CalendarEvent{ev}})

	err := checker.Check(context.Background(), nil, at(9, 0), ConflictCheck{
		ResourceID: uuid.New(),
		Interval:   iv(t, at(20, 30), at(21, 30)),
	})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictSourceEvent, conflict.Source)
	assert.Equal(t, "league night", conflict.EventTitle)
	require.NotNil(t, conflict.EventID)
	assert.Equal(t, ev.ID(), *conflict.EventID)
}

func TestConflictChecker_BookingSeatInOwnEvent(t *testing.T) {
	ev := makeEvent(t, "league night", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 20, 21)
	checker := NewConflictChecker(&fakeConflictReads{events: []*schedule.CalendarEvent{ev}})

	evID := ev.ID()
	err := checker.Check(context.Background(), nil, at(9, 0), ConflictCheck{
		ResourceID: uuid.New(),
		Interval:   iv(t, at(20, 0), at(21, 0)),
		ForEventID: &evID,
	})
	assert.NoError(t, err)
}
