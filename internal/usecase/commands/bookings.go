package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/credit"
	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/resource"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra/db"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/clock"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/config"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/errs"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/shared"
)

type CreateBookingParams struct {
	ClientID  uuid.UUID
	Category  booking.Category
	BayID     uuid.UUID
	CoachID   *uuid.UUID
	Start     time.Time
	End       time.Time
	UseCredit bool
}

type RescheduleParams struct {
	BookingID uuid.UUID
	Start     time.Time
	End       time.Time
	BayID     *uuid.UUID
	CoachID   *uuid.UUID
}

type BookingCommands interface {
	Create(ctx context.Context, p CreateBookingParams) (*queries.BookingView, error)
	Cancel(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, bookingID uuid.UUID, forceOverride bool) error
	Reschedule(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, p RescheduleParams) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookings  BookingRepository
	resources ResourceRepository
	credits   CreditRepository
	checker   *shared.ConflictChecker
	views     queries.BookingQueries
	publisher EventPublisher
	pool      *pgxpool.Pool
	clk       clock.Clock
	cfg       config.BookingConfig
}

func NewBookingCommands(
	bookings BookingRepository,
	resources ResourceRepository,
	credits CreditRepository,
	checker *shared.ConflictChecker,
	views queries.BookingQueries,
	publisher EventPublisher,
	pool *pgxpool.Pool,
	clk clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		bookings:  bookings,
		resources: resources,
		credits:   credits,
		checker:   checker,
		views:     views,
		publisher: publisher,
		pool:      pool,
		clk:       clk,
		cfg:       cfg,
	}
}

// Create runs the commit protocol for a direct (staff or credit-funded)
// booking: lock the resources, re-check conflicts under the lock, consume
// credit, insert the row. Any failure rolls the whole attempt back.
func (c *bookingCommandsImpl) Create(ctx context.Context, p CreateBookingParams) (*queries.BookingView, error) {
	iv, err := booking.NewInterval(p.Start, p.End)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInterval)
	}

	bay, err := lookupActiveBay(ctx, c.resources, p.BayID)
	if err != nil {
		return nil, err
	}
	if err := c.validateCoach(ctx, p.Category, p.CoachID); err != nil {
		return nil, err
	}

	now := c.clk.Now()
	bookingID, err := shared.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (uuid.UUID, error) {
		if err := c.resources.LockForCommit(ctx, tx, lockSet(p.BayID, p.CoachID)); err != nil {
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := c.checkBoth(ctx, tx, now, p.BayID, p.CoachID, iv, nil, nil); err != nil {
			return uuid.Nil, err
		}

		priceCents := bay.PriceCents(iv.DurationMinutes())
		var link *booking.CreditLink
		if p.UseCredit {
			link, err = c.consumeCredit(ctx, tx, p.ClientID, p.Category, iv)
			if err != nil {
				return uuid.Nil, err
			}
			priceCents = 0
		}

		entity, err := booking.NewBooking(p.ClientID, p.Category, p.BayID, p.CoachID, iv, priceCents, link, now)
		if err != nil {
			return uuid.Nil, errs.Wrap(err, "invalid booking")
		}
		id, err := c.bookings.Create(ctx, tx, entity, nil)
		if err != nil {
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return id, nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, TopicBookingConfirmed, bookingEventPayload{
		BookingID: bookingID,
		ClientID:  p.ClientID,
		Category:  p.Category.String(),
		BayID:     p.BayID,
		Start:     iv.Start(),
		End:       iv.End(),
	})
	return c.views.GetByIDSystem(ctx, bookingID)
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, bookingID uuid.UUID, forceOverride bool) error {
	now := c.clk.Now()
	entity, err := shared.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (*booking.Booking, error) {
		b, err := c.bookings.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, errs.ErrBookingNotFound)
			}
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !actorIsStaff && b.ClientID() != actorID {
			return nil, errs.ErrBookingNotFound
		}

		if err := b.Cancel(now, c.cfg.CancelLockWindow, forceOverride && actorIsStaff); err != nil {
			return nil, mapBookingErr(err)
		}

		if link := b.Credit(); link != nil {
			if err := c.credits.Restore(ctx, tx, link.PurchaseID, link.Sessions, link.HourMinutes); err != nil {
				return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		if err := c.bookings.Update(ctx, tx, b); err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return b, nil
	})
	if err != nil {
		return err
	}

	c.publish(ctx, TopicBookingCancelled, bookingEventPayload{
		BookingID: entity.ID(),
		ClientID:  entity.ClientID(),
		Category:  entity.Category().String(),
		BayID:     entity.BayID(),
		Start:     entity.Interval().Start(),
		End:       entity.Interval().End(),
	})
	return nil
}

// Reschedule repeats the commit protocol for the new interval with the
// booking's own row excluded from its conflict check.
func (c *bookingCommandsImpl) Reschedule(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, p RescheduleParams) (*queries.BookingView, error) {
	iv, err := booking.NewInterval(p.Start, p.End)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInterval)
	}

	now := c.clk.Now()
	_, err = shared.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		var zero struct{}

		b, err := c.bookings.FindByIDForUpdate(ctx, tx, p.BookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return zero, errs.Mark(err, errs.ErrBookingNotFound)
			}
			return zero, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !actorIsStaff && b.ClientID() != actorID {
			return zero, errs.ErrBookingNotFound
		}

		bayID := b.BayID()
		if p.BayID != nil {
			bayID = *p.BayID
			if _, err := lookupActiveBay(ctx, c.resources, bayID); err != nil {
				return zero, err
			}
		}
		coachID := b.CoachID()
		if p.CoachID != nil {
			coachID = p.CoachID
		}

		if err := c.resources.LockForCommit(ctx, tx, lockSet(bayID, coachID)); err != nil {
			return zero, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		excludeID := b.ID()
		if err := c.checkBoth(ctx, tx, now, bayID, coachID, iv, &excludeID, nil); err != nil {
			return zero, err
		}

		if err := b.Reschedule(iv, bayID, coachID, now, c.cfg.CancelLockWindow, actorIsStaff); err != nil {
			return zero, mapBookingErr(err)
		}
		if err := c.bookings.Update(ctx, tx, b); err != nil {
			return zero, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return zero, nil
	})
	if err != nil {
		return nil, err
	}
	return c.views.GetByIDSystem(ctx, p.BookingID)
}

func lookupActiveBay(ctx context.Context, resources ResourceRepository, id uuid.UUID) (*resource.Resource, error) {
	bay, err := resources.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if bay.Kind() != resource.KindBay {
		return nil, errs.ErrResourceNotFound
	}
	if !bay.IsActive() {
		return nil, errs.ErrResourceInactive
	}
	return bay, nil
}

func (c *bookingCommandsImpl) validateCoach(ctx context.Context, category booking.Category, coachID *uuid.UUID) error {
	if category != booking.CategoryCoaching {
		return nil
	}
	if coachID == nil {
		return errs.ErrResourceNotFound
	}
	coach, err := c.resources.FindByID(ctx, *coachID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrResourceNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if coach.Kind() != resource.KindCoach || !coach.IsActive() {
		return errs.ErrResourceInactive
	}
	return nil
}

// checkBoth validates bay and coach occupancy for one candidate interval.
func (c *bookingCommandsImpl) checkBoth(ctx context.Context, tx db.DBTX, now time.Time, bayID uuid.UUID, coachID *uuid.UUID, iv booking.Interval, excludeBookingID, excludeHoldID *uuid.UUID) error {
	check := shared.ConflictCheck{
		ResourceID:       bayID,
		Interval:         iv,
		ExcludeBookingID: excludeBookingID,
		ExcludeHoldID:    excludeHoldID,
	}
	if err := c.checker.Check(ctx, tx, now, check); err != nil {
		return err
	}
	if coachID != nil {
		check.ResourceID = *coachID
		if err := c.checker.Check(ctx, tx, now, check); err != nil {
			return err
		}
	}
	return nil
}

// consumeCredit picks a purchase under the transaction's row locks and
// debits it with the guarded decrement, converting each failure shape into
// its own domain error.
func (c *bookingCommandsImpl) consumeCredit(ctx context.Context, tx db.DBTX, clientID uuid.UUID, category booking.Category, iv booking.Interval) (*booking.CreditLink, error) {
	purchases, err := c.credits.FindEligibleForUpdate(ctx, tx, clientID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	sessions, hourMinutes := creditAmounts(category, iv)
	selected, err := credit.Select(purchases, category, sessions, hourMinutes)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInsufficientCredit)
	}
	if selected == nil {
		return nil, errs.ErrPurchaseNotEligible
	}

	if err := c.credits.Consume(ctx, tx, selected.ID(), sessions, hourMinutes); err != nil {
		if infra.IsKind(err, infra.KindBalanceExceeded) {
			return nil, errs.Mark(err, errs.ErrInsufficientCredit)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &booking.CreditLink{PurchaseID: selected.ID(), Sessions: sessions, HourMinutes: hourMinutes}, nil
}

// creditAmounts maps a booking to what it costs in ledger units: coaching
// spends one session, simulator time spends its duration in minutes.
func creditAmounts(category booking.Category, iv booking.Interval) (int, int) {
	if category == booking.CategoryCoaching {
		return 1, 0
	}
	return 0, iv.DurationMinutes()
}

func lockSet(bayID uuid.UUID, coachID *uuid.UUID) []uuid.UUID {
	ids := []uuid.UUID{bayID}
	if coachID != nil {
		ids = append(ids, *coachID)
	}
	return ids
}

func mapBookingErr(err error) error {
	switch {
	case errors.Is(err, booking.ErrLockWindow):
		return errs.Mark(err, errs.ErrBookingLocked)
	case errors.Is(err, booking.ErrAlreadyCancelled):
		return errs.Mark(err, errs.ErrBookingCancelled)
	default:
		return errs.Wrap(err, "booking transition failed")
	}
}

type bookingEventPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
	ClientID  uuid.UUID `json:"client_id"`
	Category  string    `json:"category"`
	BayID     uuid.UUID `json:"bay_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

func (c *bookingCommandsImpl) publish(ctx context.Context, topic string, payload any) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(ctx, topic, payload); err != nil {
		slog.Warn("failed to publish booking event", "topic", topic, "error", err)
	}
}
