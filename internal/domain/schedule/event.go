package schedule

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEvent is a facility-wide blocking event: clinics, leagues,
// private functions. Occurrences are computed from the recurrence rule,
// never stored, except for pause exceptions which remove single dates.
type CalendarEvent struct {
	id       uuid.UUID
	title    string
	rule     Rule
	window   Window
	capacity int
	active   bool
}

func NewCalendarEvent(id uuid.UUID, title string, rule Rule, window Window, capacity int, active bool) *CalendarEvent {
	rule.Anchor = midnight(rule.Anchor)
	if rule.End != nil {
		e := midnight(*rule.End)
		rule.End = &e
	}
	return &CalendarEvent{
		id:       id,
		title:    title,
		rule:     rule,
		window:   window,
		capacity: capacity,
		active:   active,
	}
}

func (e *CalendarEvent) ID() uuid.UUID { return e.id }
func (e *CalendarEvent) Title() string { return e.title }
func (e *CalendarEvent) Rule() Rule    { return e.rule }
func (e *CalendarEvent) Window() Window { return e.window }
func (e *CalendarEvent) Capacity() int { return e.capacity }
func (e *CalendarEvent) IsActive() bool { return e.active }

// Occurrences expands the event into concrete dates inside [from, to].
func (e *CalendarEvent) Occurrences(from, to time.Time) []time.Time {
	if !e.active {
		return nil
	}
	return e.rule.Occurrences(from, to)
}

// OverlapsInterval reports whether any occurrence of the event overlaps
// [start, end) under the half-open rule. Occurrences on the day before the
// interval's dates must be checked too: a cross-midnight occurrence, or a
// late-evening local slot expressed in UTC, can spill onto the next
// calendar day.
func (e *CalendarEvent) OverlapsInterval(start, end time.Time) bool {
	if !e.active {
		return false
	}
	from := midnight(start).AddDate(0, 0, -1)
	to := midnight(end)
	for _, occ := range e.rule.Occurrences(from, to) {
		os, oe := e.window.Span(occ)
		if os.Before(end) && oe.After(start) {
			return true
		}
	}
	return false
}
