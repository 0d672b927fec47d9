//go:build unit

package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lockWindow = 24 * time.Hour

func newTestBooking(t *testing.T, start time.Time) *Booking {
	t.Helper()
	iv := mustInterval(t, start, start.Add(time.Hour))
	b, err := NewBooking(uuid.New(), CategorySimulator, uuid.New(), nil, iv, 4500, nil, start.Add(-48*time.Hour))
	require.NoError(t, err)
	return b
}

func TestNewBooking_CoachingRequiresCoach(t *testing.T) {
	iv := mustInterval(t, ts(10, 0), ts(11, 0))
	_, err := NewBooking(uuid.New(), CategoryCoaching, uuid.New(), nil, iv, 0, nil, ts(9, 0))
	assert.ErrorIs(t, err, ErrCoachRequired)

	coachID := uuid.New()
	b, err := NewBooking(uuid.New(), CategoryCoaching, uuid.New(), &coachID, iv, 0, nil, ts(9, 0))
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, b.Status())
	assert.Equal(t, coachID, *b.CoachID())
}

func TestBooking_Cancel_OutsideLockWindow(t *testing.T) {
	start := ts(10, 0)
	b := newTestBooking(t, start)

	now := start.Add(-25 * time.Hour)
	require.NoError(t, b.Cancel(now, lockWindow, false))
	assert.Equal(t, StatusCancelled, b.Status())
	assert.False(t, b.IsActive())

	assert.ErrorIs(t, b.Cancel(now, lockWindow, false), ErrAlreadyCancelled)
}

func TestBooking_Cancel_InsideLockWindow(t *testing.T) {
	start := ts(10, 0)
	b := newTestBooking(t, start)
	now := start.Add(-2 * time.Hour)

	assert.ErrorIs(t, b.Cancel(now, lockWindow, false), ErrLockWindow)
	assert.Equal(t, StatusConfirmed, b.Status())

	// Admin override bypasses the lock.
	require.NoError(t, b.Cancel(now, lockWindow, true))
	assert.Equal(t, StatusCancelled, b.Status())
}

func TestBooking_LockApplies_Boundary(t *testing.T) {
	start := ts(10, 0)
	b := newTestBooking(t, start)

	assert.False(t, b.LockApplies(start.Add(-24*time.Hour), lockWindow))
	assert.True(t, b.LockApplies(start.Add(-24*time.Hour+time.Second), lockWindow))
}

func TestBooking_Reschedule(t *testing.T) {
	start := ts(10, 0)
	b := newTestBooking(t, start)
	now := start.Add(-48 * time.Hour)

	newBay := uuid.New()
	newIv := mustInterval(t, ts(14, 0), ts(15, 30))
	require.NoError(t, b.Reschedule(newIv, newBay, nil, now, lockWindow, false))
	assert.Equal(t, newIv, b.Interval())
	assert.Equal(t, newBay, b.BayID())

	require.NoError(t, b.Cancel(now, lockWindow, false))
	assert.ErrorIs(t, b.Reschedule(newIv, newBay, nil, now, lockWindow, false), ErrAlreadyCancelled)
}

func TestBooking_SetStatus(t *testing.T) {
	b := newTestBooking(t, ts(10, 0))
	require.NoError(t, b.SetStatus(StatusNoShow, ts(12, 0)))
	assert.Equal(t, StatusNoShow, b.Status())
	assert.False(t, b.IsActive())

	assert.ErrorIs(t, b.SetStatus(Status("bogus"), ts(12, 0)), ErrInvalidStatus)
}
