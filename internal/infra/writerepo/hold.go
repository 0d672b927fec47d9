package writerepo

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/hold"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra/db"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/psql"
)

type HoldRepository struct{}

func NewHoldRepository() *HoldRepository {
	return &HoldRepository{}
}

func (r *HoldRepository) Create(ctx context.Context, tx db.DBTX, h *hold.TemporaryHold) error {
	query, args, err := psql.Insert("temporary_holds").
		Columns(
			"id", "token", "client_id", "category", "bay_id", "coach_id", "event_id",
			"start_at", "end_at", "price_cents", "status", "payment_ref",
			"created_at", "expires_at", "processed_at",
		).
		Values(
			h.ID(), h.Token(), h.ClientID(), h.Category().String(), h.BayID(), h.CoachID(), h.EventID(),
			h.Interval().Start(), h.Interval().End(), h.PriceCents(), h.Status().String(), h.PaymentRef(),
			h.CreatedAt(), h.ExpiresAt(), h.ProcessedAt(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build hold insert", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return wrapPgErr("failed to create hold", err)
	}
	return nil
}

func (r *HoldRepository) FindByTokenForUpdate(ctx context.Context, tx db.DBTX, token uuid.UUID) (*hold.TemporaryHold, error) {
	query, args, err := psql.Select(
		"id", "token", "client_id", "category", "bay_id", "coach_id", "event_id",
		"start_at", "end_at", "price_cents", "status", "payment_ref",
		"created_at", "expires_at", "processed_at",
	).
		From("temporary_holds").
		Where(squirrel.Eq{"token": token}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build hold lock query", err)
	}

	var (
		id          uuid.UUID
		tok         uuid.UUID
		clientID    uuid.UUID
		category    string
		bayID       uuid.UUID
		coachID     *uuid.UUID
		eventID     *uuid.UUID
		start       time.Time
		end         time.Time
		priceCents  int64
		status      string
		paymentRef  *string
		createdAt   time.Time
		expiresAt   time.Time
		processedAt *time.Time
	)
	err = tx.QueryRow(ctx, query, args...).Scan(
		&id, &tok, &clientID, &category, &bayID, &coachID, &eventID,
		&start, &end, &priceCents, &status, &paymentRef,
		&createdAt, &expiresAt, &processedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("hold not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock hold row", err)
	}

	iv, err := booking.NewInterval(start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid interval in hold row", err)
	}
	return hold.Reconstruct(
		id, tok, clientID, booking.Category(category), bayID, coachID, eventID,
		iv, priceCents, hold.Status(status), paymentRef,
		createdAt, expiresAt, processedAt,
	), nil
}

func (r *HoldRepository) Update(ctx context.Context, tx db.DBTX, h *hold.TemporaryHold) error {
	query, args, err := psql.Update("temporary_holds").
		Set("status", h.Status().String()).
		Set("payment_ref", h.PaymentRef()).
		Set("processed_at", h.ProcessedAt()).
		Where(squirrel.Eq{"id": h.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build hold update", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return wrapPgErr("failed to update hold", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("hold not found for update", nil, infra.KindNotFound)
	}
	return nil
}

// ExpireOverdue rewrites overdue reserved rows in bulk for bookkeeping.
func (r *HoldRepository) ExpireOverdue(ctx context.Context, tx db.DBTX, now time.Time) (int64, error) {
	query, args, err := psql.Update("temporary_holds").
		Set("status", hold.StatusExpired.String()).
		Set("processed_at", now).
		Where(squirrel.Eq{"status": hold.StatusReserved.String()}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build hold sweep", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sweep expired holds", err)
	}
	return tag.RowsAffected(), nil
}
