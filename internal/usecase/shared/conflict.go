package shared

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/schedule"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra/db"
)

// ConflictError reports a candidate interval colliding with something that
// counts toward capacity. Source tells the caller what to show: another
// booking, a pending hold, or a facility-wide calendar event.
type ConflictError struct {
	ResourceID uuid.UUID
	Source     string
	EventID    *uuid.UUID
	EventTitle string
}

const (
	ConflictSourceBooking = "booking"
	ConflictSourceHold    = "hold"
	ConflictSourceEvent   = "event"
)

func (e *ConflictError) Error() string {
	if e.Source == ConflictSourceEvent {
		return fmt.Sprintf("interval blocked by event %q", e.EventTitle)
	}
	return fmt.Sprintf("interval conflicts with an existing %s on resource %s", e.Source, e.ResourceID)
}

// ClosedError reports that a closure rule covers the requested time.
type ClosedError struct {
	ResourceID uuid.UUID
	RuleID     uuid.UUID
	RuleTitle  string
}

func (e *ClosedError) Error() string {
	return fmt.Sprintf("facility closed for the requested time (%s)", e.RuleTitle)
}

// BookingSpan is the minimal projection of a capacity-counting booking row.
type BookingSpan struct {
	BookingID uuid.UUID
	Interval  booking.Interval
}

// ConflictReads supplies the blocking sources the detector tests against.
// Hold rows past their deadline must never be returned even if a sweep has
// not rewritten their status yet.
type ConflictReads interface {
	OverlappingBookings(ctx context.Context, tx db.DBTX, resourceID uuid.UUID, iv booking.Interval, excludeBookingID *uuid.UUID) ([]BookingSpan, error)
	CountOverlappingActiveHolds(ctx context.Context, tx db.DBTX, resourceID uuid.UUID, iv booking.Interval, now time.Time, excludeHoldID *uuid.UUID) (int64, error)
	ActiveClosures(ctx context.Context, tx db.DBTX) ([]*schedule.ClosureRule, error)
	ActiveEvents(ctx context.Context, tx db.DBTX, from, to time.Time) ([]*schedule.CalendarEvent, error)
}

// ConflictCheck describes one candidate occupation to validate.
type ConflictCheck struct {
	ResourceID       uuid.UUID
	Interval         booking.Interval
	ExcludeBookingID *uuid.UUID // set when rescheduling, so a booking does not conflict with itself
	ExcludeHoldID    *uuid.UUID // set when promoting a hold into a booking
	ForEventID       *uuid.UUID // set when the candidate books a seat in this event
}

// ConflictChecker applies the half-open overlap rule against every blocking
// source. It is used by the commit path inside a transaction holding the
// resource lock, so a clean result cannot be invalidated by a racing writer.
type ConflictChecker struct {
	reads ConflictReads
}

func NewConflictChecker(reads ConflictReads) *ConflictChecker {
	return &ConflictChecker{reads: reads}
}

func (c *ConflictChecker) Check(ctx context.Context, tx db.DBTX, now time.Time, check ConflictCheck) error {
	if err := c.checkClosures(ctx, tx, check); err != nil {
		return err
	}
	if err := c.checkEvents(ctx, tx, check); err != nil {
		return err
	}

	spans, err := c.reads.OverlappingBookings(ctx, tx, check.ResourceID, check.Interval, check.ExcludeBookingID)
	if err != nil {
		return err
	}
	if len(spans) > 0 {
		return &ConflictError{ResourceID: check.ResourceID, Source: ConflictSourceBooking}
	}

	holds, err := c.reads.CountOverlappingActiveHolds(ctx, tx, check.ResourceID, check.Interval, now, check.ExcludeHoldID)
	if err != nil {
		return err
	}
	if holds > 0 {
		return &ConflictError{ResourceID: check.ResourceID, Source: ConflictSourceHold}
	}
	return nil
}

func (c *ConflictChecker) checkClosures(ctx context.Context, tx db.DBTX, check ConflictCheck) error {
	closures, err := c.reads.ActiveClosures(ctx, tx)
	if err != nil {
		return err
	}
	for _, rule := range closures {
		if rule.BlocksInterval(check.Interval.Start(), check.Interval.End()) {
			return &ClosedError{ResourceID: check.ResourceID, RuleID: rule.ID(), RuleTitle: rule.Title()}
		}
	}
	return nil
}

// checkEvents tests facility-wide calendar events. Events block every
// resource, so this runs regardless of which resource is being booked. The
// window is widened a day in each direction because a cross-midnight
// occurrence anchored on an adjacent date can still reach the candidate
// interval in UTC.
func (c *ConflictChecker) checkEvents(ctx context.Context, tx db.DBTX, check ConflictCheck) error {
	from := check.Interval.Start().AddDate(0, 0, -1)
	to := check.Interval.End().AddDate(0, 0, 1)

	events, err := c.reads.ActiveEvents(ctx, tx, from, to)
	if err != nil {
		return err
	}
	for _, ev := range events {
		if check.ForEventID != nil && ev.ID() == *check.ForEventID {
			continue
		}
		if ev.OverlapsInterval(check.Interval.Start(), check.Interval.End()) {
			id := ev.ID()
			return &ConflictError{
				ResourceID: check.ResourceID,
				Source:     ConflictSourceEvent,
				EventID:    &id,
				EventTitle: ev.Title(),
			}
		}
	}
	return nil
}
