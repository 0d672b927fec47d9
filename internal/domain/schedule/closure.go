package schedule

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClosureDateOrder = errors.New("closure end date cannot be before start date")
	ErrClosureTimeOrder = errors.New("closure end time must be after start time")
)

// ClosureRule blocks the whole facility for a date (or a wall-clock span of
// it), once or on a weekly/yearly cadence. A nil Window means the entire day
// is closed.
type ClosureRule struct {
	id         uuid.UUID
	title      string
	startDate  time.Time
	endDate    time.Time
	window     *Window
	recurrence Recurrence
	active     bool
}

func NewClosureRule(id uuid.UUID, title string, startDate, endDate time.Time, window *Window, recurrence Recurrence, active bool) (*ClosureRule, error) {
	startDate = midnight(startDate)
	endDate = midnight(endDate)
	if endDate.Before(startDate) {
		return nil, ErrClosureDateOrder
	}
	if window != nil && window.End <= window.Start {
		// Closures do not cross midnight; a wraparound span is modeled as
		// two rules by the staff tooling.
		return nil, ErrClosureTimeOrder
	}
	return &ClosureRule{
		id:         id,
		title:      title,
		startDate:  startDate,
		endDate:    endDate,
		window:     window,
		recurrence: recurrence,
		active:     active,
	}, nil
}

func (c *ClosureRule) ID() uuid.UUID   { return c.id }
func (c *ClosureRule) Title() string   { return c.title }
func (c *ClosureRule) IsActive() bool  { return c.active }
func (c *ClosureRule) Window() *Window { return c.window }

// BlocksDate reports whether this rule applies to the given calendar date at
// all, regardless of its time window.
func (c *ClosureRule) BlocksDate(date time.Time) bool {
	if !c.active {
		return false
	}
	date = midnight(date)
	switch c.recurrence {
	case RecurrenceOneTime:
		return !date.Before(c.startDate) && !date.After(c.endDate)
	case RecurrenceWeekly:
		return c.startDate.Weekday() == date.Weekday()
	case RecurrenceMonthly:
		return c.startDate.Day() == date.Day()
	case RecurrenceYearly:
		return c.startDate.Month() == date.Month() && c.startDate.Day() == date.Day()
	default:
		return false
	}
}

// BlocksWholeDay reports whether the date is fully closed by this rule.
func (c *ClosureRule) BlocksWholeDay(date time.Time) bool {
	return c.BlocksDate(date) && c.window == nil
}

// BlocksInstant reports whether a concrete moment falls inside the closure.
func (c *ClosureRule) BlocksInstant(t time.Time) bool {
	if !c.BlocksDate(t) {
		return false
	}
	if c.window == nil {
		return true
	}
	return c.window.Contains(TimeOfDayFrom(t))
}

// BlocksInterval reports whether any part of [start, end) is closed.
func (c *ClosureRule) BlocksInterval(start, end time.Time) bool {
	if !c.active {
		return false
	}
	// Walk every day the interval touches and test the closed span against it.
	for d := midnight(start); d.Before(end); d = d.AddDate(0, 0, 1) {
		if !c.BlocksDate(d) {
			continue
		}
		if c.window == nil {
			return true
		}
		cs, ce := c.window.Span(d)
		if cs.Before(end) && ce.After(start) {
			return true
		}
	}
	return false
}
