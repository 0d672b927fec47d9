package schedule

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(hour*60 + minute), nil
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func TimeOfDayFrom(t time.Time) TimeOfDay {
	u := t.UTC()
	return TimeOfDay(u.Hour()*60 + u.Minute())
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// At anchors the wall-clock time onto the given UTC calendar date.
func (t TimeOfDay) At(date time.Time) time.Time {
	y, m, d := date.UTC().Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// Window is a same-day wall-clock span. An end at or before the start means
// the window crosses midnight into the following day.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (w Window) CrossesMidnight() bool {
	return w.End <= w.Start
}

// Span expands the window into concrete UTC instants on the given date.
// Cross-midnight windows end on the following calendar day but are still
// reported against the requested date.
func (w Window) Span(date time.Time) (time.Time, time.Time) {
	start := w.Start.At(date)
	end := w.End.At(date)
	if w.CrossesMidnight() {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// Contains reports whether the wall-clock time falls inside the window,
// half-open. Cross-midnight windows wrap around.
func (w Window) Contains(t TimeOfDay) bool {
	if w.CrossesMidnight() {
		return t >= w.Start || t < w.End
	}
	return t >= w.Start && t < w.End
}
