package schedule

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrWindowKeyMissing = errors.New("availability window needs a weekday or a date")

// AvailabilityWindow is one configured open span for a resource: either a
// recurring weekly window (Weekday set) or a one-off override for a specific
// date (Date set). For a given resource no two windows share the same
// recurrence key and start time, but multiple non-overlapping windows per
// day are allowed.
type AvailabilityWindow struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	Weekday    *time.Weekday
	Date       *time.Time
	Window     Window
}

func NewWeeklyAvailability(id, resourceID uuid.UUID, weekday time.Weekday, window Window) AvailabilityWindow {
	return AvailabilityWindow{ID: id, ResourceID: resourceID, Weekday: &weekday, Window: window}
}

func NewDateAvailability(id, resourceID uuid.UUID, date time.Time, window Window) AvailabilityWindow {
	d := midnight(date)
	return AvailabilityWindow{ID: id, ResourceID: resourceID, Date: &d, Window: window}
}

// Matches reports whether this window applies to the given calendar date.
func (w AvailabilityWindow) Matches(date time.Time) bool {
	date = midnight(date)
	if w.Date != nil {
		return w.Date.Equal(date)
	}
	if w.Weekday != nil {
		return *w.Weekday == date.Weekday()
	}
	return false
}
