package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/credit"
	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/hold"
	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/resource"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra/db"
)

type ResourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	// LockForCommit takes row locks on the given resources in a stable
	// order. Every commit-path mutation for a resource must go through
	// this lock, which is what makes the later conflict re-check
	// authoritative.
	LockForCommit(ctx context.Context, tx db.DBTX, resourceIDs []uuid.UUID) error
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking, holdID *uuid.UUID) (uuid.UUID, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	FindIDByHoldID(ctx context.Context, tx db.DBTX, holdID uuid.UUID) (*uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, b *booking.Booking) error
}

type HoldRepository interface {
	Create(ctx context.Context, tx db.DBTX, h *hold.TemporaryHold) error
	FindByTokenForUpdate(ctx context.Context, tx db.DBTX, token uuid.UUID) (*hold.TemporaryHold, error)
	Update(ctx context.Context, tx db.DBTX, h *hold.TemporaryHold) error
	// ExpireOverdue rewrites stale reserved rows for bookkeeping. The read
	// paths never rely on it having run.
	ExpireOverdue(ctx context.Context, tx db.DBTX, now time.Time) (int64, error)
}

type CreditRepository interface {
	FindEligibleForUpdate(ctx context.Context, tx db.DBTX, clientID uuid.UUID) ([]*credit.Purchase, error)
	// Consume decrements the balance with a server-side guard; it fails
	// with KindBalanceExceeded instead of clamping when the remaining
	// amount is too low.
	Consume(ctx context.Context, tx db.DBTX, purchaseID uuid.UUID, sessions, hourMinutes int) error
	Restore(ctx context.Context, tx db.DBTX, purchaseID uuid.UUID, sessions, hourMinutes int) error
}

// EventPublisher fans booking lifecycle events out to interested consumers
// (notifications, reporting). Publishing happens after commit; a delivery
// failure is logged, never surfaced to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

const (
	TopicHoldCreated      = "hold.created"
	TopicBookingConfirmed = "booking.confirmed"
	TopicBookingCancelled = "booking.cancelled"
)
