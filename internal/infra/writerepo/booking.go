package writerepo

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra/db"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/psql"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking, holdID *uuid.UUID) (uuid.UUID, error) {
	var (
		purchaseID  *uuid.UUID
		sessions    int
		hourMinutes int
	)
	if link := b.Credit(); link != nil {
		id := link.PurchaseID
		purchaseID = &id
		sessions = link.Sessions
		hourMinutes = link.HourMinutes
	}

	query, args, err := psql.Insert("bookings").
		Columns(
			"id", "client_id", "category", "bay_id", "coach_id",
			"start_at", "end_at", "status", "price_cents",
			"purchase_id", "credit_sessions", "credit_hour_minutes",
			"hold_id", "created_at", "updated_at",
		).
		Values(
			b.ID(), b.ClientID(), b.Category().String(), b.BayID(), b.CoachID(),
			b.Interval().Start(), b.Interval().End(), b.Status().String(), b.PriceCents(),
			purchaseID, sessions, hourMinutes,
			holdID, b.CreatedAt(), b.UpdatedAt(),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build booking insert", err)
	}

	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, wrapPgErr("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	query, args, err := psql.Select(
		"id", "client_id", "category", "bay_id", "coach_id",
		"start_at", "end_at", "status", "price_cents",
		"purchase_id", "credit_sessions", "credit_hour_minutes",
		"created_at", "updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking lock query", err)
	}

	var (
		bid         uuid.UUID
		clientID    uuid.UUID
		category    string
		bayID       uuid.UUID
		coachID     *uuid.UUID
		start       time.Time
		end         time.Time
		status      string
		priceCents  int64
		purchaseID  *uuid.UUID
		sessions    int
		hourMinutes int
		createdAt   time.Time
		updatedAt   time.Time
	)
	err = tx.QueryRow(ctx, query, args...).Scan(
		&bid, &clientID, &category, &bayID, &coachID,
		&start, &end, &status, &priceCents,
		&purchaseID, &sessions, &hourMinutes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking row", err)
	}

	iv, err := booking.NewInterval(start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid interval in booking row", err)
	}
	var link *booking.CreditLink
	if purchaseID != nil {
		link = &booking.CreditLink{PurchaseID: *purchaseID, Sessions: sessions, HourMinutes: hourMinutes}
	}
	return booking.Reconstruct(
		bid, clientID, booking.Category(category), bayID, coachID,
		iv, booking.Status(status), priceCents, link, createdAt, updatedAt,
	), nil
}

func (r *BookingRepository) FindIDByHoldID(ctx context.Context, tx db.DBTX, holdID uuid.UUID) (*uuid.UUID, error) {
	query, args, err := psql.Select("id").
		From("bookings").
		Where(squirrel.Eq{"hold_id": holdID}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking-by-hold query", err)
	}

	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find booking by hold", err)
	}
	return &id, nil
}

func (r *BookingRepository) Update(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	query, args, err := psql.Update("bookings").
		Set("bay_id", b.BayID()).
		Set("coach_id", b.CoachID()).
		Set("start_at", b.Interval().Start()).
		Set("end_at", b.Interval().End()).
		Set("status", b.Status().String()).
		Set("updated_at", b.UpdatedAt()).
		Where(squirrel.Eq{"id": b.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking update", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return wrapPgErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found for update", nil, infra.KindNotFound)
	}
	return nil
}

func wrapPgErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case "23503":
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
