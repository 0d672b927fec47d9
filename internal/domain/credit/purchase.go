// Package credit models prepaid packages and the policy that picks which
// package pays for a booking. Balances here mirror the database rows; the
// authoritative decrement happens server-side with a guarded UPDATE so two
// concurrent commits cannot spend the same credit twice.
package credit

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
)

// PackageType distinguishes who owns a purchase. Organization pools are
// consumed through staff workflows, never by online self-service bookings.
type PackageType string

const (
	TypeNormal       PackageType = "normal"
	TypeGift         PackageType = "gift"
	TypeOrganization PackageType = "organization"
)

// Kind says what a package can pay for. Combo packages carry both coaching
// sessions and simulator hours.
type Kind string

const (
	KindCoaching  Kind = "coaching"
	KindSimulator Kind = "simulator"
	KindCombo     Kind = "combo"
)

var (
	ErrNotEligible        = errors.New("purchase cannot pay for this booking")
	ErrNothingToConsume   = errors.New("consume amount must be positive")
	ErrBalanceExceeded    = errors.New("purchase balance exceeded")
	ErrRestoreExceedsUsed = errors.New("restore exceeds consumed amount")
)

// InsufficientError reports that the client's eligible balance cannot cover
// a booking, carrying both sides so the API can say how short they are.
type InsufficientError struct {
	RequestedSessions int
	RequestedMinutes  int
	AvailableSessions int
	AvailableMinutes  int
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("insufficient credit: requested %d sessions / %d minutes, available %d sessions / %d minutes",
		e.RequestedSessions, e.RequestedMinutes, e.AvailableSessions, e.AvailableMinutes)
}

// Purchase is one prepaid package bought by (or gifted to) a client.
// Simulator time is tracked in whole minutes.
type Purchase struct {
	id               uuid.UUID
	clientID         uuid.UUID
	pkgType          PackageType
	kind             Kind
	sessionsTotal    int
	sessionsLeft     int
	hourMinutesTotal int
	hourMinutesLeft  int
	giftPending      bool
	active           bool
	purchasedAt      time.Time
}

func NewPurchase(clientID uuid.UUID, pkgType PackageType, kind Kind, sessions, hourMinutes int, giftPending bool, purchasedAt time.Time) *Purchase {
	return &Purchase{
		id:               uuid.New(),
		clientID:         clientID,
		pkgType:          pkgType,
		kind:             kind,
		sessionsTotal:    sessions,
		sessionsLeft:     sessions,
		hourMinutesTotal: hourMinutes,
		hourMinutesLeft:  hourMinutes,
		giftPending:      giftPending,
		active:           true,
		purchasedAt:      purchasedAt,
	}
}

func Reconstruct(
	id, clientID uuid.UUID,
	pkgType PackageType,
	kind Kind,
	sessionsTotal, sessionsLeft, hourMinutesTotal, hourMinutesLeft int,
	giftPending, active bool,
	purchasedAt time.Time,
) *Purchase {
	return &Purchase{
		id:               id,
		clientID:         clientID,
		pkgType:          pkgType,
		kind:             kind,
		sessionsTotal:    sessionsTotal,
		sessionsLeft:     sessionsLeft,
		hourMinutesTotal: hourMinutesTotal,
		hourMinutesLeft:  hourMinutesLeft,
		giftPending:      giftPending,
		active:           active,
		purchasedAt:      purchasedAt,
	}
}

func (p *Purchase) ID() uuid.UUID            { return p.id }
func (p *Purchase) ClientID() uuid.UUID      { return p.clientID }
func (p *Purchase) Type() PackageType        { return p.pkgType }
func (p *Purchase) Kind() Kind               { return p.kind }
func (p *Purchase) SessionsTotal() int       { return p.sessionsTotal }
func (p *Purchase) SessionsLeft() int        { return p.sessionsLeft }
func (p *Purchase) HourMinutesTotal() int    { return p.hourMinutesTotal }
func (p *Purchase) HourMinutesLeft() int     { return p.hourMinutesLeft }
func (p *Purchase) GiftPending() bool        { return p.giftPending }
func (p *Purchase) Active() bool             { return p.active }
func (p *Purchase) PurchasedAt() time.Time   { return p.purchasedAt }

// AcceptGift clears the pending flag once the recipient claims the package.
func (p *Purchase) AcceptGift() {
	p.giftPending = false
}

// EligibleFor reports whether this purchase may pay for a booking of the
// given category. Unclaimed gifts and organization pools never qualify for
// self-service consumption.
func (p *Purchase) EligibleFor(category booking.Category) bool {
	if !p.active || p.giftPending || p.pkgType == TypeOrganization {
		return false
	}
	switch category {
	case booking.CategoryCoaching:
		return p.kind == KindCoaching || p.kind == KindCombo
	case booking.CategorySimulator:
		return p.kind == KindSimulator || p.kind == KindCombo
	default:
		return false
	}
}

// Covers reports whether the remaining balance can pay the requested amount.
func (p *Purchase) Covers(sessions, hourMinutes int) bool {
	return p.sessionsLeft >= sessions && p.hourMinutesLeft >= hourMinutes
}

// Consume debits the balance in memory. The persistence layer re-checks the
// same guard atomically.
func (p *Purchase) Consume(sessions, hourMinutes int) error {
	if sessions <= 0 && hourMinutes <= 0 {
		return ErrNothingToConsume
	}
	if !p.Covers(sessions, hourMinutes) {
		return ErrBalanceExceeded
	}
	p.sessionsLeft -= sessions
	p.hourMinutesLeft -= hourMinutes
	return nil
}

// Restore returns credit consumed by a cancelled booking. It never pushes a
// balance above what was originally purchased.
func (p *Purchase) Restore(sessions, hourMinutes int) error {
	if p.sessionsLeft+sessions > p.sessionsTotal || p.hourMinutesLeft+hourMinutes > p.hourMinutesTotal {
		return ErrRestoreExceedsUsed
	}
	p.sessionsLeft += sessions
	p.hourMinutesLeft += hourMinutes
	return nil
}
