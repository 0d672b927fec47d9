package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/hold"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra/db"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/clock"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/config"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/errs"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/shared"
)

type CreateHoldParams struct {
	ClientID uuid.UUID
	Category booking.Category
	BayID    uuid.UUID
	CoachID  *uuid.UUID
	EventID  *uuid.UUID
	Start    time.Time
	End      time.Time
}

type HoldResult struct {
	Token      uuid.UUID
	PriceCents int64
	ExpiresAt  time.Time
}

type ConfirmResult struct {
	BookingID uuid.UUID
	Replayed  bool
}

type HoldCommands interface {
	Create(ctx context.Context, p CreateHoldParams) (*HoldResult, error)
	// ConfirmPayment promotes a paid hold into a confirmed booking. It is
	// idempotent: redelivering the same payment reference returns the
	// original booking without side effects.
	ConfirmPayment(ctx context.Context, token uuid.UUID, paymentRef string) (*ConfirmResult, error)
	Cancel(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, token uuid.UUID) error
	SweepExpired(ctx context.Context) (int64, error)
}

type holdCommandsImpl struct {
	holds     HoldRepository
	bookings  BookingRepository
	resources ResourceRepository
	checker   *shared.ConflictChecker
	publisher EventPublisher
	pool      *pgxpool.Pool
	clk       clock.Clock
	cfg       config.BookingConfig
}

func NewHoldCommands(
	holds HoldRepository,
	bookings BookingRepository,
	resources ResourceRepository,
	checker *shared.ConflictChecker,
	publisher EventPublisher,
	pool *pgxpool.Pool,
	clk clock.Clock,
	cfg config.BookingConfig,
) HoldCommands {
	return &holdCommandsImpl{
		holds:     holds,
		bookings:  bookings,
		resources: resources,
		checker:   checker,
		publisher: publisher,
		pool:      pool,
		clk:       clk,
		cfg:       cfg,
	}
}

func (c *holdCommandsImpl) Create(ctx context.Context, p CreateHoldParams) (*HoldResult, error) {
	iv, err := booking.NewInterval(p.Start, p.End)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInterval)
	}

	bay, err := lookupActiveBay(ctx, c.resources, p.BayID)
	if err != nil {
		return nil, err
	}

	now := c.clk.Now()
	ttl := c.cfg.SimulatorHoldTTL
	if p.EventID != nil {
		ttl = c.cfg.EventHoldTTL
	}

	result, err := shared.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (*HoldResult, error) {
		if err := c.resources.LockForCommit(ctx, tx, lockSet(p.BayID, p.CoachID)); err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		check := shared.ConflictCheck{ResourceID: p.BayID, Interval: iv, ForEventID: p.EventID}
		if err := c.checker.Check(ctx, tx, now, check); err != nil {
			return nil, err
		}
		if p.CoachID != nil {
			check.ResourceID = *p.CoachID
			if err := c.checker.Check(ctx, tx, now, check); err != nil {
				return nil, err
			}
		}

		h := hold.NewHold(p.ClientID, p.Category, p.BayID, p.CoachID, p.EventID, iv,
			bay.PriceCents(iv.DurationMinutes()), ttl, now)
		if err := c.holds.Create(ctx, tx, h); err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return &HoldResult{Token: h.Token(), PriceCents: h.PriceCents(), ExpiresAt: h.ExpiresAt()}, nil
	})
	if err != nil {
		return nil, err
	}

	c.publishEvent(ctx, TopicHoldCreated, holdEventPayload{
		Token:     result.Token,
		ClientID:  p.ClientID,
		Category:  p.Category.String(),
		BayID:     p.BayID,
		Start:     iv.Start(),
		End:       iv.End(),
		ExpiresAt: result.ExpiresAt,
	})
	return result, nil
}

// confirmOutcome lets expiry bookkeeping commit even though the caller gets
// an error: the transaction succeeds, the error is decided afterwards.
type confirmOutcome struct {
	bookingID uuid.UUID
	replayed  bool
	expired   bool
	payload   *bookingEventPayload
}

func (c *holdCommandsImpl) ConfirmPayment(ctx context.Context, token uuid.UUID, paymentRef string) (*ConfirmResult, error) {
	now := c.clk.Now()

	outcome, err := shared.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (*confirmOutcome, error) {
		h, err := c.holds.FindByTokenForUpdate(ctx, tx, token)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, errs.ErrHoldNotFound)
			}
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		wasCompleted := h.Status() == hold.StatusCompleted

		if err := h.Complete(now, paymentRef); err != nil {
			switch {
			case errors.Is(err, hold.ErrExpired):
				// Persist the lazy expiry; the commit carries it even
				// though the caller sees an error.
				if updateErr := c.holds.Update(ctx, tx, h); updateErr != nil {
					return nil, errs.Mark(updateErr, errs.ErrDatabaseOperationFailed)
				}
				return &confirmOutcome{expired: true}, nil
			case errors.Is(err, hold.ErrAlreadyCompleted):
				return nil, errs.Mark(err, errs.ErrHoldNotOpen)
			default:
				return nil, errs.Mark(err, errs.ErrHoldNotOpen)
			}
		}

		if wasCompleted {
			bookingID, err := c.bookings.FindIDByHoldID(ctx, tx, h.ID())
			if err != nil {
				return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if bookingID == nil {
				return nil, errs.New("completed hold has no booking")
			}
			return &confirmOutcome{bookingID: *bookingID, replayed: true}, nil
		}

		if err := c.resources.LockForCommit(ctx, tx, lockSet(h.BayID(), h.CoachID())); err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		holdID := h.ID()
		check := shared.ConflictCheck{
			ResourceID:    h.BayID(),
			Interval:      h.Interval(),
			ExcludeHoldID: &holdID,
			ForEventID:    h.EventID(),
		}
		if err := c.checker.Check(ctx, tx, now, check); err != nil {
			return nil, err
		}
		if coachID := h.CoachID(); coachID != nil {
			check.ResourceID = *coachID
			if err := c.checker.Check(ctx, tx, now, check); err != nil {
				return nil, err
			}
		}

		entity, err := booking.NewBooking(h.ClientID(), h.Category(), h.BayID(), h.CoachID(), h.Interval(), h.PriceCents(), nil, now)
		if err != nil {
			return nil, errs.Wrap(err, "invalid booking from hold")
		}
		bookingID, err := c.bookings.Create(ctx, tx, entity, &holdID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := c.holds.Update(ctx, tx, h); err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		return &confirmOutcome{
			bookingID: bookingID,
			payload: &bookingEventPayload{
				BookingID: bookingID,
				ClientID:  h.ClientID(),
				Category:  h.Category().String(),
				BayID:     h.BayID(),
				Start:     h.Interval().Start(),
				End:       h.Interval().End(),
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	if outcome.expired {
		return nil, errs.ErrHoldExpired
	}

	if outcome.payload != nil {
		c.publishEvent(ctx, TopicBookingConfirmed, *outcome.payload)
	}
	return &ConfirmResult{BookingID: outcome.bookingID, Replayed: outcome.replayed}, nil
}

func (c *holdCommandsImpl) Cancel(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, token uuid.UUID) error {
	now := c.clk.Now()
	_, err := shared.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		var zero struct{}

		h, err := c.holds.FindByTokenForUpdate(ctx, tx, token)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return zero, errs.Mark(err, errs.ErrHoldNotFound)
			}
			return zero, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !actorIsStaff && h.ClientID() != actorID {
			return zero, errs.ErrHoldNotFound
		}

		if err := h.Cancel(now); err != nil {
			return zero, errs.Mark(err, errs.ErrHoldNotOpen)
		}
		if err := c.holds.Update(ctx, tx, h); err != nil {
			return zero, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return zero, nil
	})
	return err
}

// SweepExpired rewrites overdue reserved holds to expired. Pure
// bookkeeping: conflict checks already ignore overdue holds.
func (c *holdCommandsImpl) SweepExpired(ctx context.Context) (int64, error) {
	now := c.clk.Now()
	return shared.RunInTx(ctx, c.pool, func(tx db.DBTX) (int64, error) {
		n, err := c.holds.ExpireOverdue(ctx, tx, now)
		if err != nil {
			return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return n, nil
	})
}

type holdEventPayload struct {
	Token     uuid.UUID `json:"token"`
	ClientID  uuid.UUID `json:"client_id"`
	Category  string    `json:"category"`
	BayID     uuid.UUID `json:"bay_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (c *holdCommandsImpl) publishEvent(ctx context.Context, topic string, payload any) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(ctx, topic, payload); err != nil {
		slog.Warn("failed to publish hold event", "topic", topic, "error", err)
	}
}
