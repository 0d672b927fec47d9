// Package hold implements the temporary reservation that bridges slot
// selection and payment. A hold pins resources for a TTL; completing it is
// the payment webhook's job, and anything past its deadline is dead even if
// the background sweeper has not flagged it yet.
package hold

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
)

type Status string

const (
	StatusReserved  Status = "reserved"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string { return string(s) }

var (
	ErrNotOpen          = errors.New("hold is not open")
	ErrExpired          = errors.New("hold has expired")
	ErrAlreadyCompleted = errors.New("hold already completed with a different payment reference")
)

// TemporaryHold pins a bay (and optionally a coach or an event occurrence)
// for one client while payment is in flight.
type TemporaryHold struct {
	id         uuid.UUID
	token      uuid.UUID
	clientID   uuid.UUID
	category   booking.Category
	bayID      uuid.UUID
	coachID    *uuid.UUID
	eventID    *uuid.UUID
	interval   booking.Interval
	priceCents int64
	status     Status
	paymentRef *string
	createdAt  time.Time
	expiresAt  time.Time
	processedAt *time.Time
}

func NewHold(clientID uuid.UUID, category booking.Category, bayID uuid.UUID, coachID, eventID *uuid.UUID, interval booking.Interval, priceCents int64, ttl time.Duration, now time.Time) *TemporaryHold {
	return &TemporaryHold{
		id:         uuid.New(),
		token:      uuid.New(),
		clientID:   clientID,
		category:   category,
		bayID:      bayID,
		coachID:    coachID,
		eventID:    eventID,
		interval:   interval,
		priceCents: priceCents,
		status:     StatusReserved,
		createdAt:  now,
		expiresAt:  now.Add(ttl),
	}
}

func Reconstruct(
	id, token, clientID uuid.UUID,
	category booking.Category,
	bayID uuid.UUID,
	coachID, eventID *uuid.UUID,
	interval booking.Interval,
	priceCents int64,
	status Status,
	paymentRef *string,
	createdAt, expiresAt time.Time,
	processedAt *time.Time,
) *TemporaryHold {
	return &TemporaryHold{
		id:          id,
		token:       token,
		clientID:    clientID,
		category:    category,
		bayID:       bayID,
		coachID:     coachID,
		eventID:     eventID,
		interval:    interval,
		priceCents:  priceCents,
		status:      status,
		paymentRef:  paymentRef,
		createdAt:   createdAt,
		expiresAt:   expiresAt,
		processedAt: processedAt,
	}
}

func (h *TemporaryHold) ID() uuid.UUID              { return h.id }
func (h *TemporaryHold) Token() uuid.UUID           { return h.token }
func (h *TemporaryHold) ClientID() uuid.UUID        { return h.clientID }
func (h *TemporaryHold) Category() booking.Category { return h.category }
func (h *TemporaryHold) BayID() uuid.UUID           { return h.bayID }
func (h *TemporaryHold) CoachID() *uuid.UUID        { return h.coachID }
func (h *TemporaryHold) EventID() *uuid.UUID        { return h.eventID }
func (h *TemporaryHold) Interval() booking.Interval { return h.interval }
func (h *TemporaryHold) PriceCents() int64          { return h.priceCents }
func (h *TemporaryHold) Status() Status             { return h.status }
func (h *TemporaryHold) PaymentRef() *string        { return h.paymentRef }
func (h *TemporaryHold) CreatedAt() time.Time       { return h.createdAt }
func (h *TemporaryHold) ExpiresAt() time.Time       { return h.expiresAt }
func (h *TemporaryHold) ProcessedAt() *time.Time    { return h.processedAt }

// IsActive reports whether the hold still pins its resources. The deadline
// is authoritative: a reserved hold past its deadline does not count even
// before the sweeper marks it expired.
func (h *TemporaryHold) IsActive(now time.Time) bool {
	return h.status == StatusReserved && now.Before(h.expiresAt)
}

// Complete marks the hold paid. Replaying the same payment reference is a
// no-op so webhook retries stay idempotent. A reserved hold past its
// deadline is expired in place and the completion refused.
func (h *TemporaryHold) Complete(now time.Time, paymentRef string) error {
	switch h.status {
	case StatusCompleted:
		if h.paymentRef != nil && *h.paymentRef == paymentRef {
			return nil
		}
		return ErrAlreadyCompleted
	case StatusReserved:
		if !now.Before(h.expiresAt) {
			h.status = StatusExpired
			h.processedAt = &now
			return ErrExpired
		}
		h.status = StatusCompleted
		h.paymentRef = &paymentRef
		h.processedAt = &now
		return nil
	default:
		return ErrNotOpen
	}
}

// Cancel releases a reserved hold before payment.
func (h *TemporaryHold) Cancel(now time.Time) error {
	if h.status != StatusReserved {
		return ErrNotOpen
	}
	h.status = StatusCancelled
	h.processedAt = &now
	return nil
}

// Expire marks a reserved hold whose deadline has passed. Holds still
// inside their TTL are left alone.
func (h *TemporaryHold) Expire(now time.Time) error {
	if h.status != StatusReserved {
		return ErrNotOpen
	}
	if now.Before(h.expiresAt) {
		return ErrNotOpen
	}
	h.status = StatusExpired
	h.processedAt = &now
	return nil
}
