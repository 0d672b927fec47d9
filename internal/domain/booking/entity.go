package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrInvalidCategory  = errors.New("invalid booking category")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrLockWindow       = errors.New("booking starts too soon to modify")
	ErrCoachRequired    = errors.New("coaching bookings need a coach")
)

// CreditLink records which prepaid purchase a booking debited, and by how
// much, so cancellation can restore exactly what was consumed.
type CreditLink struct {
	PurchaseID  uuid.UUID
	Sessions    int
	HourMinutes int
}

// Booking is a confirmed, time-boxed occupation of one bay (and, for
// coaching, one coach) by one client. Immutable once created except for
// status transitions and conflict-checked reschedules.
type Booking struct {
	id         uuid.UUID
	clientID   uuid.UUID
	category   Category
	bayID      uuid.UUID
	coachID    *uuid.UUID
	interval   Interval
	status     Status
	priceCents int64
	credit     *CreditLink
	createdAt  time.Time
	updatedAt  time.Time
}

func NewBooking(clientID uuid.UUID, category Category, bayID uuid.UUID, coachID *uuid.UUID, interval Interval, priceCents int64, credit *CreditLink, now time.Time) (*Booking, error) {
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if category == CategoryCoaching && coachID == nil {
		return nil, ErrCoachRequired
	}
	return &Booking{
		id:         uuid.New(),
		clientID:   clientID,
		category:   category,
		bayID:      bayID,
		coachID:    coachID,
		interval:   interval,
		status:     StatusConfirmed,
		priceCents: priceCents,
		credit:     credit,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func Reconstruct(
	id, clientID uuid.UUID,
	category Category,
	bayID uuid.UUID,
	coachID *uuid.UUID,
	interval Interval,
	status Status,
	priceCents int64,
	credit *CreditLink,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		clientID:   clientID,
		category:   category,
		bayID:      bayID,
		coachID:    coachID,
		interval:   interval,
		status:     status,
		priceCents: priceCents,
		credit:     credit,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID       { return b.id }
func (b *Booking) ClientID() uuid.UUID { return b.clientID }
func (b *Booking) Category() Category  { return b.category }
func (b *Booking) BayID() uuid.UUID    { return b.bayID }
func (b *Booking) CoachID() *uuid.UUID { return b.coachID }
func (b *Booking) Interval() Interval  { return b.interval }
func (b *Booking) Status() Status      { return b.status }
func (b *Booking) PriceCents() int64   { return b.priceCents }
func (b *Booking) Credit() *CreditLink { return b.credit }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

func (b *Booking) IsActive() bool {
	return b.status.CountsTowardCapacity()
}

// LockApplies reports whether the booking starts inside the online
// modification lock window.
func (b *Booking) LockApplies(now time.Time, lockWindow time.Duration) bool {
	return b.interval.Start().Sub(now) < lockWindow
}

// Cancel transitions the booking to cancelled. Bookings inside the lock
// window can only be cancelled with an admin override.
func (b *Booking) Cancel(now time.Time, lockWindow time.Duration, adminOverride bool) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if b.LockApplies(now, lockWindow) && !adminOverride {
		return ErrLockWindow
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

// Reschedule moves the booking to a new interval and resource assignment.
// The caller must have conflict-checked the new interval with this
// booking's own row excluded.
func (b *Booking) Reschedule(interval Interval, bayID uuid.UUID, coachID *uuid.UUID, now time.Time, lockWindow time.Duration, adminOverride bool) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if b.LockApplies(now, lockWindow) && !adminOverride {
		return ErrLockWindow
	}
	if b.category == CategoryCoaching && coachID == nil {
		return ErrCoachRequired
	}
	b.interval = interval
	b.bayID = bayID
	b.coachID = coachID
	b.updatedAt = now
	return nil
}

// SetStatus applies a staff status transition (completed, no_show, ...).
func (b *Booking) SetStatus(status Status, now time.Time) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	b.status = status
	b.updatedAt = now
	return nil
}
